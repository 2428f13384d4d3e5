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

// ReadStopReason is the cause that ended a banner read.
type ReadStopReason uint8

const (
	NotStarted ReadStopReason = iota
	ConnectionClosed
	Delimiter
	SizeLimit
	Timeout
)

func (r ReadStopReason) String() string {
	switch r {
	case ConnectionClosed:
		return "connection_closed"
	case Delimiter:
		return "delimiter"
	case SizeLimit:
		return "size_limit"
	case Timeout:
		return "timeout"
	default:
		return "not_started"
	}
}

// ReadResult is the output of a single reader (or session) invocation.
type ReadResult struct {
	Bytes     []byte
	Reason    ReadStopReason
	Truncated bool
	TLS       *TLSInfo
}

// Banner is the display-ready rendering of a ReadResult.
type Banner struct {
	RawHex    string
	Printable string
	Truncated bool
	Reason    ReadStopReason
}

// TLSInfo captures handshake metadata for protocols that negotiate TLS.
type TLSInfo struct {
	Version         string `json:"version,omitempty"`
	CipherSuite     string `json:"cipher_suite,omitempty"`
	CertSubject     string `json:"cert_subject,omitempty"`
	CertIssuer      string `json:"cert_issuer,omitempty"`
	CertNotBefore   string `json:"cert_not_before,omitempty"`
	CertNotAfter    string `json:"cert_not_after,omitempty"`
}
