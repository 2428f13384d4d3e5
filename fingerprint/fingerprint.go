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

// Package fingerprint derives a rule-based protocol guess from a captured
// banner: no handshakes, no I/O, just pattern matching over the bytes a
// pipeline run already produced.
package fingerprint

import (
	"strconv"
	"strings"

	"github.com/sabouaram/bannergrab/model"
)

// Of builds the Fingerprint for one captured ReadResult. It never returns
// nil: an unrecognized banner still carries length/truncated/read_reason
// fields and a low score.
func Of(rr model.ReadResult) *model.Fingerprint {
	fields := map[string]string{
		"length":      strconv.Itoa(len(rr.Bytes)),
		"truncated":   strconv.FormatBool(rr.Truncated),
		"read_reason": rr.Reason.String(),
	}

	limited := rr.Bytes
	if len(limited) > 2048 {
		limited = limited[:2048]
	}
	text := string(limited)
	lower := strings.ToLower(text)

	if isTLSHandshake(rr.Bytes) {
		fields["hint"] = "tls-handshake"
		if v := tlsVersion(rr.Bytes); v != "" {
			fields["version"] = v
		}
		return &model.Fingerprint{Protocol: "tls", Score: 0.75, Fields: fields}
	}

	if protoVersion, software, ok := sshDetails(text); ok {
		fields["hint"] = "ssh-like"
		fields["protocol_version"] = protoVersion
		if software != "" {
			fields["software"] = software
		}
		return &model.Fingerprint{Protocol: "ssh", Score: 0.9, Fields: fields}
	}

	if v := mysqlVersion(rr.Bytes); v != "" {
		fields["hint"] = "mysql-handshake"
		fields["version"] = v
		return &model.Fingerprint{Protocol: "mysql", Score: 0.9, Fields: fields}
	}

	if strings.Contains(text, "HTTP/1.") || strings.Contains(text, "Server:") {
		fields["hint"] = "http"
		return &model.Fingerprint{Protocol: "http", Score: 0.8, Fields: fields}
	}

	if strings.HasPrefix(string(rr.Bytes), "-ERR") {
		fields["hint"] = "redis/resp"
		return &model.Fingerprint{Protocol: "redis", Score: 0.7, Fields: fields}
	}

	if strings.HasPrefix(lower, "220") && strings.Contains(lower, "smtp") {
		fields["hint"] = "smtp"
		return &model.Fingerprint{Protocol: "smtp", Score: 0.7, Fields: fields}
	}

	if strings.HasPrefix(lower, "220") && strings.Contains(lower, "ftp") {
		fields["hint"] = "ftp"
		return &model.Fingerprint{Protocol: "ftp", Score: 0.65, Fields: fields}
	}

	if errLine := extractErrorLine(text); errLine != "" {
		fields["error"] = errLine
	}

	return &model.Fingerprint{Protocol: "", Score: 0.1, Fields: fields}
}

func isTLSHandshake(b []byte) bool {
	return len(b) >= 3 && b[0] == 0x16 && b[1] == 0x03
}

func tlsVersion(b []byte) string {
	if !isTLSHandshake(b) {
		return ""
	}
	switch b[2] {
	case 0x00:
		return "SSL 3.0"
	case 0x01:
		return "TLS 1.0"
	case 0x02:
		return "TLS 1.1"
	case 0x03:
		return "TLS 1.2"
	case 0x04:
		return "TLS 1.3"
	default:
		return ""
	}
}

func sshDetails(text string) (protoVersion, software string, ok bool) {
	line, _, _ := strings.Cut(text, "\n")
	line = strings.TrimSpace(strings.TrimSuffix(line, "\r"))
	if !strings.HasPrefix(line, "SSH-") {
		return "", "", false
	}

	parts := strings.SplitN(line, "-", 3)
	if len(parts) < 2 {
		return "", "", false
	}
	protoVersion = parts[1]
	if len(parts) == 3 {
		software = parts[2]
	}
	return protoVersion, software, true
}

func mysqlVersion(b []byte) string {
	if len(b) < 6 {
		return ""
	}
	payload := b[4:]
	if payload[0] != 0x0a {
		return ""
	}

	end := 1
	for end < len(payload) && payload[end] != 0 {
		end++
	}
	if end == 1 {
		return ""
	}
	return string(payload[1:end])
}

func extractErrorLine(text string) string {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		lower := strings.ToLower(line)
		if line == "" {
			continue
		}
		if strings.Contains(lower, "error") || strings.Contains(lower, "denied") || strings.HasPrefix(lower, "-err") {
			if len(line) > 160 {
				return line[:160]
			}
			return line
		}
	}
	return ""
}
