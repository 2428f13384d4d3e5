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

// defaultHTTPProber is the last-resort probe for a port no registered
// TcpClient claimed: a bare HTTP/1.0 GET, since a surprising number of
// unidentified listeners turn out to be HTTP.
type defaultHTTPProber struct{}

func (d *defaultHTTPProber) Name() string { return "http-fallback" }

func (d *defaultHTTPProber) ProbeBytes() []byte {
	return []byte("GET / HTTP/1.0\r\n\r\n")
}

func (d *defaultHTTPProber) ExpectedDelimiter() []byte {
	return []byte("\r\n\r\n")
}

func (d *defaultHTTPProber) Matches(uint16) bool { return true }
