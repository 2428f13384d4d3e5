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

// Package reader implements the bounded banner capture primitive shared by
// every protocol handler: read until EOF, a delimiter, the size cap, or an
// idle timeout, whichever comes first.
package reader

import (
	"bytes"
	"net"
	"time"

	"github.com/sabouaram/bannergrab/model"
)

// BannerReader captures at most MaxBytes from a net.Conn per Read call.
type BannerReader struct {
	MaxBytes int
}

func New(maxBytes int) *BannerReader {
	return &BannerReader{MaxBytes: maxBytes}
}

// Read consumes bytes from conn until a stop condition is reached. idle is
// the per-read idle timeout (the caller, typically a ClientSession, computes
// it as min(remaining_deadline, read_timeout)). extraDelimiter, when
// non-empty, is tried in addition to the built-in \r\n\r\n / \r\n / \n set.
func (r *BannerReader) Read(conn net.Conn, idle time.Duration, extraDelimiter []byte) (model.ReadResult, error) {
	buf := make([]byte, r.MaxBytes)
	total := 0
	reason := model.ConnectionClosed

	for total < r.MaxBytes {
		if idle > 0 {
			_ = conn.SetReadDeadline(time.Now().Add(idle))
		}

		n, err := conn.Read(buf[total:])
		if n > 0 {
			total += n

			if pos, found := findDelimiter(buf[:total], extraDelimiter); found {
				total = pos
				reason = model.Delimiter
				break
			}
		}

		if err != nil {
			if ne, ok := err.(net.Error); ok && ne.Timeout() {
				reason = model.Timeout
				break
			}
			// Any other read error, including io.EOF, ends the capture with
			// whatever was already buffered.
			reason = model.ConnectionClosed
			break
		}

		if n == 0 {
			reason = model.ConnectionClosed
			break
		}

		if total >= r.MaxBytes {
			reason = model.SizeLimit
			break
		}
	}

	if total >= r.MaxBytes {
		reason = model.SizeLimit
	}

	out := make([]byte, total)
	copy(out, buf[:total])

	return model.ReadResult{
		Bytes:     out,
		Reason:    reason,
		Truncated: total >= r.MaxBytes,
	}, nil
}

// findDelimiter searches buf for the first occurrence of \r\n\r\n, \r\n, \n
// (in that priority order) and then, if supplied, extraDelimiter. It returns
// the offset one past the end of the match.
func findDelimiter(buf []byte, extra []byte) (int, bool) {
	if idx := bytes.Index(buf, []byte("\r\n\r\n")); idx >= 0 {
		return idx + 4, true
	}
	if idx := bytes.Index(buf, []byte("\r\n")); idx >= 0 {
		return idx + 2, true
	}
	if idx := bytes.Index(buf, []byte("\n")); idx >= 0 {
		return idx + 1, true
	}
	if len(extra) > 0 {
		if idx := bytes.Index(buf, extra); idx >= 0 {
			return idx + len(extra), true
		}
	}
	return 0, false
}

// Render produces the display form of a ReadResult: a lowercase space
// separated hex dump and an ASCII-printable projection where [0x20,0x7e] and
// \r\n survive and every other byte becomes '.'.
func Render(rr model.ReadResult) model.Banner {
	return model.Banner{
		RawHex:    hexDump(rr.Bytes),
		Printable: printable(rr.Bytes),
		Truncated: rr.Truncated,
		Reason:    rr.Reason,
	}
}

func printable(b []byte) string {
	out := make([]byte, len(b))
	for i, c := range b {
		if (c >= 0x20 && c <= 0x7e) || c == '\n' || c == '\r' {
			out[i] = c
		} else {
			out[i] = '.'
		}
	}
	return string(out)
}
