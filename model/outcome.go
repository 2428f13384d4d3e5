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

package model

import "time"

// Status is the terminal classification of a ScanOutcome.
type Status uint8

const (
	Open Status = iota
	StatusTimeout
	Error
)

func (s Status) String() string {
	switch s {
	case Open:
		return "open"
	case StatusTimeout:
		return "timeout"
	default:
		return "error"
	}
}

// TcpMeta records the outcome of the TCP connect step.
type TcpMeta struct {
	ConnectMs *int64
	Error     *string
}

// Diagnostics pinpoints where a failing outcome was produced.
type Diagnostics struct {
	Stage   string `json:"stage"`
	Message string `json:"message"`
}

// Fingerprint is a rule-based guess at the protocol behind a banner.
type Fingerprint struct {
	Protocol string
	Score    float64
	Fields   map[string]string
}

// ScanOutcome is the single terminal record produced for every input target.
type ScanOutcome struct {
	Target      View
	Status      Status
	Tcp         TcpMeta
	Banner      Banner
	Fingerprint *Fingerprint
	TLS         *TLSInfo
	Diagnostics *Diagnostics
	Timestamp   time.Time

	// Ttl is reserved for a future raw-socket TTL reader; no component
	// currently populates it, matching the reference engine which carries
	// the field but never assigns it either.
	Ttl *uint8

	// Webdriver and Technologies are reserved for a headless-rendering
	// collaborator out of scope for this engine; always nil so the sink
	// omits them from JSONL output.
	Webdriver    *string
	Technologies []string
}
