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
	"bytes"
	"crypto/tls"
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/sabouaram/bannergrab/model"
)

type httpClient struct{}

func (h *httpClient) Name() string { return "http" }
func (h *httpClient) Matches(p uint16) bool {
	switch p {
	case 80, 443, 8080, 8443:
		return true
	}
	return false
}

// httpContentLength extracts the value of a Content-Length header from a
// raw HTTP/1.x response, or -1 if absent or malformed.
func httpContentLength(b []byte) int {
	lower := bytes.ToLower(b)
	idx := bytes.Index(lower, []byte("content-length:"))
	if idx < 0 {
		return -1
	}
	rest := b[idx+len("content-length:"):]
	end := bytes.IndexAny(rest, "\r\n")
	if end < 0 {
		end = len(rest)
	}
	n, err := strconv.Atoi(string(bytes.TrimSpace(rest[:end])))
	if err != nil {
		return -1
	}
	return n
}

func httpHeaderBodySplit(b []byte) int {
	if idx := bytes.Index(b, []byte("\r\n\r\n")); idx >= 0 {
		return idx + 4
	}
	return -1
}

func (h *httpClient) Execute(conn net.Conn, target model.Target, cfg *model.Config, deadline time.Time) (model.ReadResult, error) {
	if tlsPort(target.OriginalPort) {
		tlsConn, info, err := tlsHandshakeCapture(conn, deadline)
		if err != nil {
			return model.ReadResult{Reason: model.ConnectionClosed}, nil
		}
		rr, err := httpExchange(tlsConn, target, cfg, deadline)
		rr.TLS = info
		return rr, err
	}
	return httpExchange(conn, target, cfg, deadline)
}

func httpExchange(conn net.Conn, target model.Target, cfg *model.Config, deadline time.Time) (model.ReadResult, error) {
	sess := newSession(cfg, deadline)

	req := fmt.Sprintf("GET / HTTP/1.0\r\nHost: %s\r\n\r\n", target.OriginalHost)
	if err := sess.Send(conn, []byte(req)); err != nil {
		return sess.Finish(), err
	}

	if done, err := sess.Read(conn, nil); err != nil || done {
		return sess.Finish(), err
	}

	head := sess.LastBytes()
	bodyStart := httpHeaderBodySplit(head)
	if bodyStart < 0 {
		return sess.Finish(), nil
	}

	contentLength := httpContentLength(head)
	have := len(head) - bodyStart
	if contentLength > have && contentLength-have < cfg.MaxBytes-len(head) {
		if _, err := sess.Read(conn, nil); err != nil {
			return sess.Finish(), err
		}
	}

	return sess.Finish(), nil
}

func tlsPort(port uint16) bool {
	return port == 443 || port == 8443
}
