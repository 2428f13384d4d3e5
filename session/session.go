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

// Package session implements the multi-step read/send aggregator shared by
// every protocol dialogue: one wall-clock deadline and one max_bytes budget
// spread across as many reads and writes as the handler needs.
package session

import (
	"net"
	"time"

	"github.com/sabouaram/bannergrab/model"
	"github.com/sabouaram/bannergrab/reader"
)

// ClientSession is single-use: build it with New, drive it with Read/Send,
// and call Finish exactly once to collapse the accumulated parts.
type ClientSession struct {
	reader      *reader.BannerReader
	parts       []model.ReadResult
	maxBytes    int
	truncated   bool
	deadline    time.Time
	idleTimeout time.Duration
}

func New(maxBytes int, idleTimeout time.Duration, deadline time.Time) *ClientSession {
	return &ClientSession{
		reader:      reader.New(maxBytes),
		parts:       make([]model.ReadResult, 0, 4),
		maxBytes:    maxBytes,
		deadline:    deadline,
		idleTimeout: idleTimeout,
	}
}

// remaining returns min(time-to-deadline, idleTimeout), or false if the
// deadline has already passed.
func (s *ClientSession) remaining() (time.Duration, bool) {
	left := time.Until(s.deadline)
	if left <= 0 {
		return 0, false
	}
	if left > s.idleTimeout {
		left = s.idleTimeout
	}
	return left, true
}

// Read performs one bounded read. It returns true when the caller should
// stop the dialogue because the overall deadline has been exhausted.
func (s *ClientSession) Read(conn net.Conn, extraDelimiter []byte) (bool, error) {
	slice, ok := s.remaining()
	if !ok {
		s.pushTimeout()
		return true, nil
	}

	rr, err := s.reader.Read(conn, slice, extraDelimiter)
	if err != nil {
		return true, err
	}

	s.truncated = s.truncated || rr.Truncated
	s.parts = append(s.parts, rr)

	_, stillOk := s.remaining()
	return !stillOk, nil
}

// Send writes bytes synchronously, honoring nothing but the connection's own
// write semantics; protocol dialogues never need a send-side deadline slice.
func (s *ClientSession) Send(conn net.Conn, b []byte) error {
	_, err := conn.Write(b)
	return err
}

// AppendMetadata injects bytes captured out-of-band (e.g. an enrichment
// probe's rendered summary) into the part list with reason NotStarted.
func (s *ClientSession) AppendMetadata(b []byte) {
	s.parts = append(s.parts, model.ReadResult{Bytes: b, Reason: model.NotStarted})
}

// LastBytes returns the bytes captured by the most recent Read/AppendMetadata
// call, letting a multi-step dialogue branch on an intermediate reply
// without waiting for Finish.
func (s *ClientSession) LastBytes() []byte {
	if len(s.parts) == 0 {
		return nil
	}
	return s.parts[len(s.parts)-1].Bytes
}

func (s *ClientSession) pushTimeout() {
	s.parts = append(s.parts, model.ReadResult{Bytes: nil, Reason: model.Timeout})
}

// Finish merges every part into one buffer capped at maxBytes. The reason of
// the last part wins; truncated is set if the session was ever truncated
// mid-stream, if any individual part was truncated, or if the merge itself
// had to drop trailing bytes to respect maxBytes.
func (s *ClientSession) Finish() model.ReadResult {
	merged := make([]byte, 0, s.maxBytes)
	reason := model.NotStarted
	truncated := s.truncated

	for _, p := range s.parts {
		reason = p.Reason

		room := s.maxBytes - len(merged)
		if room <= 0 {
			if len(p.Bytes) > 0 {
				truncated = true
			}
			continue
		}

		if len(p.Bytes) > room {
			merged = append(merged, p.Bytes[:room]...)
			truncated = true
		} else {
			merged = append(merged, p.Bytes...)
		}
	}

	if len(merged) >= s.maxBytes {
		truncated = true
	}

	return model.ReadResult{
		Bytes:     merged,
		Reason:    reason,
		Truncated: truncated,
	}
}
