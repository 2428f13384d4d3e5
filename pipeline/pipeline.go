/*
 * MIT License
 *
 * Copyright (c) 2024 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

// Package pipeline implements the per-target processor: connect, dispatch to
// a protocol handler, render, fingerprint, enrich. One ProcessTarget call
// handles exactly one target and never touches any other target's state.
package pipeline

import (
	"context"
	"net"
	"time"

	"github.com/sabouaram/bannergrab/enrich"
	"github.com/sabouaram/bannergrab/fingerprint"
	"github.com/sabouaram/bannergrab/handlers"
	"github.com/sabouaram/bannergrab/logging"
	"github.com/sabouaram/bannergrab/model"
	"github.com/sabouaram/bannergrab/reader"
)

// Processor runs the per-target algorithm. It holds no per-target state; a
// single Processor is shared by every goroutine the scheduler spawns.
type Processor struct{}

func New() *Processor {
	return &Processor{}
}

// ProcessTarget never returns an error: every failure mode is absorbed into
// the returned ScanOutcome so the scheduler and sink never need to special
// case a processing error versus a protocol error.
func (p *Processor) ProcessTarget(ctx context.Context, target model.Target, cfg *model.Config) model.ScanOutcome {
	start := time.Now()
	deadline := start.Add(cfg.OverallTimeout)

	if udp := handlers.MatchUDP(cfg.Mode, target.OriginalPort); udp != nil {
		return p.processUDP(target, cfg, udp)
	}
	return p.processTCP(ctx, target, cfg, deadline)
}

func (p *Processor) processUDP(target model.Target, cfg *model.Config, client handlers.UdpClient) model.ScanOutcome {
	rr, err := client.Execute(target, cfg)
	if err != nil {
		return errorOutcome(target, "client:"+client.Name(), err.Error(), model.TcpMeta{})
	}

	status := model.Open
	if rr.Reason == model.Timeout {
		status = model.StatusTimeout
	}
	return renderOutcome(target, status, model.TcpMeta{}, rr)
}

func (p *Processor) processTCP(ctx context.Context, target model.Target, cfg *model.Config, deadline time.Time) model.ScanOutcome {
	connectTimeout := cfg.EffectiveConnectTimeout(target.OriginalPort)
	if remaining := time.Until(deadline); remaining < connectTimeout {
		connectTimeout = remaining
	}

	connStart := time.Now()
	dialer := net.Dialer{Timeout: connectTimeout}
	conn, err := dialer.DialContext(ctx, "tcp", dialAddr(target))
	if err != nil {
		if isTimeoutErr(err) {
			return model.ScanOutcome{
				Target:    target.View(),
				Status:    model.StatusTimeout,
				Tcp:       model.TcpMeta{Error: strPtr("connect timeout")},
				Banner:    reader.Render(model.ReadResult{Reason: model.Timeout}),
				Timestamp: time.Now().UTC(),
			}
		}
		return errorOutcome(target, "connect", err.Error(), model.TcpMeta{Error: strPtr(err.Error())})
	}
	defer conn.Close()

	connectMs := time.Since(connStart).Milliseconds()
	tcpMeta := model.TcpMeta{ConnectMs: &connectMs}

	rr, stage, err := dispatch(conn, target, cfg, deadline)
	if err != nil {
		return errorOutcome(target, stage, err.Error(), tcpMeta)
	}

	status := model.Open
	if rr.Reason == model.Timeout && len(rr.Bytes) == 0 {
		status = model.StatusTimeout
	}

	outcome := renderOutcome(target, status, tcpMeta, rr)
	if protocol := protocolName(target, cfg); protocol != "" && time.Until(deadline) > 0 {
		fp := enrich.Run(ctx, target, protocol, rr.Bytes, cfg.ProbeWeakCreds, deadline)
		for k, v := range fp.Fields {
			outcome.Fingerprint.Fields[k] = v
		}
	}
	return outcome
}

// dispatch selects and runs the TCP handler, Prober, or bare read for target,
// returning the stage name to attribute to any error.
func dispatch(conn net.Conn, target model.Target, cfg *model.Config, deadline time.Time) (model.ReadResult, string, error) {
	if h := handlers.MatchTCP(cfg.Mode, target.OriginalPort); h != nil {
		rr, err := h.Execute(conn, target, cfg, deadline)
		return rr, "client:" + h.Name(), err
	}

	if prober := handlers.FallbackProber(cfg.Mode, target.OriginalPort); prober != nil {
		rr, err := handlers.DefaultExecute(prober, conn, target, cfg, deadline)
		return rr, "probe", err
	}

	idle := cfg.ReadTimeout
	if remaining := time.Until(deadline); remaining < idle {
		idle = remaining
	}
	rr, err := reader.New(cfg.MaxBytes).Read(conn, idle, nil)
	return rr, "banner-read", err
}

// protocolName names the handler that actually ran, used to select C4b
// enrichment; it returns "" when only a bare read happened (nothing in
// enrich.Run is grounded on an unclaimed port).
func protocolName(target model.Target, cfg *model.Config) string {
	if h := handlers.MatchTCP(cfg.Mode, target.OriginalPort); h != nil {
		return h.Name()
	}
	return ""
}

func errorOutcome(target model.Target, stage, message string, tcp model.TcpMeta) model.ScanOutcome {
	logging.Debug("target processing failed", logging.Fields{
		"target": target.String(),
		"stage":  stage,
		"error":  message,
	})
	return model.ScanOutcome{
		Target:      target.View(),
		Status:      model.Error,
		Tcp:         tcp,
		Banner:      reader.Render(model.ReadResult{}),
		Diagnostics: &model.Diagnostics{Stage: stage, Message: message},
		Timestamp:   time.Now().UTC(),
	}
}

func renderOutcome(target model.Target, status model.Status, tcp model.TcpMeta, rr model.ReadResult) model.ScanOutcome {
	return model.ScanOutcome{
		Target:      target.View(),
		Status:      status,
		Tcp:         tcp,
		Banner:      reader.Render(rr),
		Fingerprint: fingerprint.Of(rr),
		TLS:         rr.TLS,
		Timestamp:   time.Now().UTC(),
	}
}

// dialAddr prefers the target's already-resolved address (set by the
// ingestion stage) and falls back to letting the dialer resolve the host
// itself, e.g. in tests that build a Target by hand.
func dialAddr(target model.Target) string {
	if target.Resolved != nil {
		return target.Resolved.String()
	}
	return target.String()
}

func isTimeoutErr(err error) bool {
	ne, ok := err.(net.Error)
	return ok && ne.Timeout()
}

func strPtr(s string) *string { return &s }
