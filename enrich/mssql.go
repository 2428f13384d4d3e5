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

package enrich

import (
	"encoding/binary"
	"fmt"
	"strings"
)

const (
	tdsOptionVersion = 0x00
	tdsOptionInstOpt = 0x02
	tdsOptionTerminator = 0xFF
)

// ParseMssqlPrelogin decodes the option table of a TDS PRELOGIN response and
// returns a human-readable version string built from the VERSION token (major
// .minor.build) and the INSTOPT token (instance name), e.g. "10.50.1600 (MSSQLSERVER)".
// Returns "" if the VERSION token is missing or the buffer is malformed.
func ParseMssqlPrelogin(b []byte) string {
	if len(b) < 8 {
		return ""
	}

	// Skip the 8-byte TDS packet header.
	body := b[8:]

	var version, instopt string
	i := 0
	for i+5 <= len(body) && body[i] != tdsOptionTerminator {
		token := body[i]
		offset := binary.BigEndian.Uint16(body[i+1 : i+3])
		length := binary.BigEndian.Uint16(body[i+3 : i+5])
		i += 5

		if int(offset)+int(length) > len(body) {
			break
		}
		data := body[offset : offset+length]

		switch token {
		case tdsOptionVersion:
			if len(data) >= 6 {
				version = fmt.Sprintf("%d.%d.%d", data[0], data[1], binary.BigEndian.Uint16(data[2:4]))
			}
		case tdsOptionInstOpt:
			instopt = strings.TrimRight(string(data), "\x00")
		}
	}

	if version == "" {
		return ""
	}
	if instopt != "" {
		return version + " (" + instopt + ")"
	}
	return version
}
