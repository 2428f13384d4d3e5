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

package handlers

import (
	"net"
	"time"

	"github.com/sabouaram/bannergrab/model"
)

// udpRoundTrip owns its own socket (UDP has no connect-time handshake to
// share with the pipeline) and performs exactly one send + one receive,
// bounded by the session's read timeout.
func udpRoundTrip(target model.Target, cfg *model.Config, payload []byte) (model.ReadResult, error) {
	conn, err := net.DialTimeout("udp", target.String(), cfg.ConnectTimeout)
	if err != nil {
		return model.ReadResult{Reason: model.ConnectionClosed}, err
	}
	defer conn.Close()

	if len(payload) > 0 {
		if _, err := conn.Write(payload); err != nil {
			return model.ReadResult{Reason: model.ConnectionClosed}, err
		}
	}

	_ = conn.SetReadDeadline(time.Now().Add(cfg.ReadTimeout))

	buf := make([]byte, cfg.MaxBytes)
	n, err := conn.Read(buf)
	if err != nil {
		if ne, ok := err.(net.Error); ok && ne.Timeout() {
			return model.ReadResult{Reason: model.Timeout}, nil
		}
		return model.ReadResult{Reason: model.ConnectionClosed}, nil
	}

	// UDP datagrams are self-delimiting: one recv is one complete message,
	// so a successful read is reported the same way a matched delimiter
	// would be for a stream protocol.
	truncated := n == cfg.MaxBytes
	reason := model.Delimiter
	if truncated {
		reason = model.SizeLimit
	}
	return model.ReadResult{Bytes: buf[:n], Reason: reason, Truncated: truncated}, nil
}
