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

package output

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/sabouaram/bannergrab/enrich"
	"github.com/sabouaram/bannergrab/model"
)

// protocolData shapes the JSONL "data" field. Unrecognized protocols fall
// back to the printable banner as a bare string, per the wire format.
func protocolData(proto string, outcome model.ScanOutcome) interface{} {
	switch proto {
	case "http", "https":
		return httpData(proto, outcome)
	case "ssh":
		return sshData(outcome)
	case "mysql":
		return mysqlData(outcome)
	default:
		return outcome.Banner.Printable
	}
}

func httpData(proto string, outcome model.ScanOutcome) map[string]interface{} {
	printable := outcome.Banner.Printable
	headers := parseHTTPHeaders(printable)

	var tls map[string]string
	if proto == "https" && outcome.TLS != nil {
		tls = map[string]string{
			"cipher":          outcome.TLS.CipherSuite,
			"version":         outcome.TLS.Version,
			"cert_subject":    outcome.TLS.CertSubject,
			"cert_issuer":     outcome.TLS.CertIssuer,
			"cert_valid_from": outcome.TLS.CertNotBefore,
			"cert_valid_to":   outcome.TLS.CertNotAfter,
		}
	} else {
		tls = map[string]string{"cipher": "", "version": "", "cert_subject": "", "cert_issuer": "", "cert_valid_from": "", "cert_valid_to": ""}
	}

	location := findHeaderCaseInsensitive(headers, "Location")
	redirect := map[string]string{"url": "", "status": ""}
	status := parseHTTPStatusCode(printable)
	if location != "" {
		redirect = map[string]string{"url": location, "status": status}
	}

	return map[string]interface{}{
		"status_code":  status,
		"headers":      headers,
		"body":         extractHTTPBody(printable),
		"title":        extractHTMLTitle(printable),
		"favicon_hash": "",
		"redirects":    []map[string]string{redirect},
		"tls_info":     tls,
	}
}

func sshData(outcome model.ScanOutcome) map[string]interface{} {
	kex, hostkey := enrich.ParseSshKexinit(afterVersionLine(rawBytesFromHexDump(outcome.Banner.RawHex)))
	product, version, osName := parseSSHSoftware(outcome.Banner.Printable)

	return map[string]interface{}{
		"banner":                     bannerLine(outcome.Banner.Printable, "SSH-"),
		"software":                   map[string]string{"product": product, "version": version, "os": osName},
		"key_exchange":               splitAlgos(kex),
		"server_host_key_algorithms": splitAlgos(hostkey),
	}
}

func mysqlData(outcome model.ScanOutcome) map[string]interface{} {
	return map[string]interface{}{
		"version":  outcome.Fingerprint.Fields["version"],
		"tcp_port": outcome.Target.Port,
	}
}

// rawBytesFromHexDump reverses hexDump's "48 65 6c 6c 6f" rendering back
// into raw bytes. Malformed pairs are skipped rather than aborting the
// whole decode, since a partial KEXINIT parse is still useful.
func rawBytesFromHexDump(dump string) []byte {
	if dump == "" {
		return nil
	}
	fields := strings.Fields(dump)
	out := make([]byte, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.ParseUint(f, 16, 8)
		if err != nil {
			continue
		}
		out = append(out, byte(v))
	}
	return out
}

func afterVersionLine(b []byte) []byte {
	idx := bytes.Index(b, []byte("\r\n"))
	if idx < 0 {
		return nil
	}
	return b[idx+2:]
}

func bannerLine(printable, prefix string) string {
	for _, line := range strings.Split(printable, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.HasPrefix(line, prefix) {
			return line
		}
	}
	return strings.TrimRight(printable, "\r\n")
}

func parseSSHSoftware(printable string) (product, version, osName string) {
	line := bannerLine(printable, "SSH-")
	if !strings.HasPrefix(line, "SSH-") {
		return "", "", ""
	}
	parts := strings.SplitN(line, "-", 3)
	if len(parts) < 3 {
		return "", "", ""
	}
	rest := strings.SplitN(parts[2], " ", 2)
	softwareID := rest[0]
	if len(rest) > 1 {
		osName = rest[1]
	}
	idx := strings.IndexAny(softwareID, "_-")
	if idx < 0 {
		return softwareID, "", osName
	}
	return softwareID[:idx], softwareID[idx+1:], osName
}

func splitAlgos(csv string) []string {
	if csv == "" {
		return nil
	}
	return strings.Split(csv, ",")
}

func parseHTTPStatusCode(printable string) string {
	lines := strings.SplitN(printable, "\n", 2)
	if len(lines) == 0 {
		return ""
	}
	line := strings.TrimSpace(lines[0])
	fields := strings.Fields(line)
	if len(fields) < 2 || !strings.HasPrefix(strings.ToUpper(fields[0]), "HTTP/") {
		return ""
	}
	return fields[1]
}

func parseHTTPHeaders(printable string) map[string]string {
	headers := map[string]string{}
	lines := strings.Split(printable, "\n")
	if len(lines) == 0 {
		return headers
	}
	first := strings.TrimSpace(lines[0])
	if !strings.HasPrefix(strings.ToUpper(first), "HTTP/") {
		return headers
	}
	for _, line := range lines[1:] {
		trimmed := strings.TrimRight(line, "\r")
		if trimmed == "" {
			break
		}
		name, value, ok := strings.Cut(trimmed, ":")
		if !ok {
			continue
		}
		key := strings.TrimSpace(name)
		val := strings.TrimSpace(value)
		if existing, found := headers[key]; found && val != "" {
			headers[key] = existing + ", " + val
		} else {
			headers[key] = val
		}
	}
	return headers
}

func findHeaderCaseInsensitive(headers map[string]string, name string) string {
	for k, v := range headers {
		if strings.EqualFold(k, name) {
			return v
		}
	}
	return ""
}

func extractHTTPBody(printable string) string {
	if idx := strings.Index(printable, "\r\n\r\n"); idx >= 0 {
		return printable[idx+4:]
	}
	if idx := strings.Index(printable, "\n\n"); idx >= 0 {
		return printable[idx+2:]
	}
	return ""
}

func extractHTMLTitle(printable string) string {
	lowered := strings.ToLower(printable)
	start := strings.Index(lowered, "<title")
	if start < 0 {
		return ""
	}
	tagEnd := strings.Index(lowered[start:], ">")
	if tagEnd < 0 {
		return ""
	}
	tagEnd += start
	afterTag := tagEnd + 1
	end := strings.Index(lowered[afterTag:], "</title>")
	if end < 0 {
		return ""
	}
	end += afterTag
	return strings.TrimSpace(printable[afterTag:end])
}
