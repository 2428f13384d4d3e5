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

// Package output implements the bounded MPSC channel (C7) between the
// scheduler's goroutines and a single blocking writer that owns stdout.
package output

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"

	"github.com/sabouaram/bannergrab/console"
	"github.com/sabouaram/bannergrab/logging"
	"github.com/sabouaram/bannergrab/model"
)

// queueCapacity matches the reference engine's default bounded channel size.
const queueCapacity = 1024

// Writer is the dedicated blocking consumer of scan outcomes. Emit may block
// once the queue fills, which is the channel's only backpressure mechanism.
type Writer struct {
	cfg  *model.Config
	ch   chan model.ScanOutcome
	done chan struct{}
}

// New builds a Writer that owns stdout, matching the reference engine's
// buffered-stdout writer goroutine.
func New(cfg *model.Config) *Writer {
	return NewWithOutput(cfg, os.Stdout)
}

// NewWithOutput builds a Writer over an arbitrary io.Writer, letting tests
// and alternate front-ends (e.g. writing to a file) supply their own sink.
func NewWithOutput(cfg *model.Config, out io.Writer) *Writer {
	configureColors()

	w := &Writer{
		cfg:  cfg,
		ch:   make(chan model.ScanOutcome, queueCapacity),
		done: make(chan struct{}),
	}
	go w.run(out)
	return w
}

// Emit enqueues outcome for the writer goroutine. It blocks if the queue is
// full, exactly the backpressure the scheduler's suspension points expect.
func (w *Writer) Emit(outcome model.ScanOutcome) {
	w.ch <- outcome
}

// Shutdown closes the send half and blocks until the writer goroutine has
// flushed and exited. Safe to call exactly once.
func (w *Writer) Shutdown() {
	close(w.ch)
	<-w.done
}

func (w *Writer) run(out io.Writer) {
	defer close(w.done)

	bw := bufio.NewWriter(out)
	defer bw.Flush()

	for outcome := range w.ch {
		if err := w.writeOutcome(bw, outcome); err != nil {
			logging.Warn("failed to write scan outcome", logging.Fields{"error": err.Error()})
			continue
		}
		if err := bw.Flush(); err != nil {
			logging.Warn("failed to flush output writer", logging.Fields{"error": err.Error()})
		}
	}
}

func (w *Writer) writeOutcome(bw *bufio.Writer, outcome model.ScanOutcome) error {
	if w.cfg.Output == model.Pretty {
		return writePretty(bw, outcome)
	}
	return writeJSONL(bw, outcome)
}

// jsonlRecord mirrors the standardized wire record: the four trailing fields
// are omitted entirely when nil/empty rather than serialized as null/[]/{}.
type jsonlRecord struct {
	IP        string      `json:"ip"`
	Timestamp string      `json:"timestamp"`
	Port      uint16      `json:"port"`
	Proto     string      `json:"proto"`
	Ttl       *uint8      `json:"ttl"`
	Data      interface{} `json:"data"`

	Webdriver    *string     `json:"webdriver,omitempty"`
	Technologies []string    `json:"technologies,omitempty"`
	TlsInfo      *model.TLSInfo `json:"tls_info,omitempty"`
	Diagnostics  *model.Diagnostics `json:"diagnostics,omitempty"`
}

func writeJSONL(bw *bufio.Writer, outcome model.ScanOutcome) error {
	proto := "unknown"
	if outcome.Fingerprint != nil && outcome.Fingerprint.Protocol != "" {
		proto = outcome.Fingerprint.Protocol
	}

	record := jsonlRecord{
		IP:           outcome.Target.Addr,
		Timestamp:    outcome.Timestamp.UTC().Format("2006-01-02T15:04:05Z"),
		Port:         outcome.Target.Port,
		Proto:        proto,
		Ttl:          outcome.Ttl,
		Data:         protocolData(proto, outcome),
		Webdriver:    outcome.Webdriver,
		Technologies: outcome.Technologies,
		TlsInfo:      outcome.TLS,
		Diagnostics:  outcome.Diagnostics,
	}

	line, err := json.Marshal(record)
	if err != nil {
		return err
	}
	_, err = bw.Write(append(line, '\n'))
	return err
}

func writePretty(bw *bufio.Writer, outcome model.ScanOutcome) error {
	if _, err := statusColor(outcome.Status).BuffPrintf(bw, "%s %d -> %s\n", outcome.Target.Host, outcome.Target.Port, outcome.Status.String()); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(bw, "  banner: %s\n", outcome.Banner.Printable); err != nil {
		return err
	}
	if outcome.Webdriver != nil {
		if _, err := fmt.Fprintf(bw, "  webdriver: %s\n", *outcome.Webdriver); err != nil {
			return err
		}
	}
	if outcome.Diagnostics != nil {
		if _, err := fmt.Fprintf(bw, "  diagnostics: [%s] %s\n", outcome.Diagnostics.Stage, outcome.Diagnostics.Message); err != nil {
			return err
		}
	}
	return nil
}

// colorOpen/colorTimeout/colorError group the teacher's console.ColorType
// registry under one status-keyed accessor.
// Start well past console.ColorPrint/ColorPrompt so this package's status
// colors never collide with another consumer's registrations in the shared
// color map.
const (
	colorOpen console.ColorType = iota + 10
	colorTimeout
	colorError
)

func configureColors() {
	console.SetColor(colorOpen, int(color.FgGreen), int(color.Bold))
	console.SetColor(colorTimeout, int(color.FgYellow))
	console.SetColor(colorError, int(color.FgRed))
}

func statusColor(status model.Status) console.ColorType {
	switch status {
	case model.Open:
		return colorOpen
	case model.StatusTimeout:
		return colorTimeout
	default:
		return colorError
	}
}
