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

// Package handlers hosts the protocol state machines that drive servers into
// revealing version/capability metadata. Every handler is a stateless,
// process-lifetime singleton selected by (mode, protocol, port); no handler
// keeps per-target state — that lives in the ClientSession the pipeline
// builds around it.
package handlers

import (
	"net"
	"time"

	"github.com/sabouaram/bannergrab/model"
)

// TcpClient drives a multi-step dialogue over an already-connected TCP
// socket and returns the merged capture.
type TcpClient interface {
	Name() string
	Matches(port uint16) bool
	Execute(conn net.Conn, target model.Target, cfg *model.Config, deadline time.Time) (model.ReadResult, error)
}

// UdpClient sends one or more datagrams and waits for a reply; it owns its
// own socket because UDP has no connect-time handshake to share.
type UdpClient interface {
	Name() string
	Matches(port uint16) bool
	Execute(target model.Target, cfg *model.Config) (model.ReadResult, error)
}

// Prober is the simpler capability set used for bare probes: write fixed
// bytes (if any), read once. DefaultExecute implements exactly that default.
type Prober interface {
	Name() string
	ProbeBytes() []byte
	ExpectedDelimiter() []byte
	Matches(port uint16) bool
}

// DefaultExecute is the Prober's default dialogue: write ProbeBytes if
// non-empty, then read once with the handler's expected delimiter.
func DefaultExecute(p Prober, conn net.Conn, _ model.Target, cfg *model.Config, deadline time.Time) (model.ReadResult, error) {
	sess := newSession(cfg, deadline)

	if b := p.ProbeBytes(); len(b) > 0 {
		if err := sess.Send(conn, b); err != nil {
			return model.ReadResult{}, err
		}
	}

	if _, err := sess.Read(conn, p.ExpectedDelimiter()); err != nil {
		return model.ReadResult{}, err
	}

	return sess.Finish(), nil
}
