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

import "github.com/sabouaram/bannergrab/model"

// tcpClients and udpClients are the process-lifetime singleton registries.
// Selection is a flat linear scan keyed on port, mirroring the project's
// database driver dispatch: a handful of candidates, matched in order, no
// per-target allocation.
var (
	tcpClients = []TcpClient{
		&ftpClient{},
		&smtpClient{},
		&imapClient{},
		&pop3Client{},
		&sshClient{},
		&mysqlClient{},
		&postgresClient{},
		&mssqlClient{},
		&mongodbClient{},
		&clickhouseClient{},
		&redisClient{},
		&memcachedClient{},
		&mqttClient{},
		&telnetClient{},
		&vncClient{},
		&smbClient{},
		&rpcbindClient{},
		&rdpClient{},
		&httpClient{},
		&tlsClient{},
	}

	udpClients = []UdpClient{
		&ntpClient{},
		&upnpClient{},
	}

	proberSingleton Prober = &defaultHTTPProber{}
)

// MatchTCP returns the TCP handler registered for port in Active mode, or
// nil. Passive mode never selects a handler: the pipeline falls back to a
// single bare read.
func MatchTCP(mode model.Mode, port uint16) TcpClient {
	if mode != model.Active {
		return nil
	}
	for _, c := range tcpClients {
		if c.Matches(port) {
			return c
		}
	}
	return nil
}

// MatchUDP returns the UDP handler registered for port in Active mode, or
// nil.
func MatchUDP(mode model.Mode, port uint16) UdpClient {
	if mode != model.Active {
		return nil
	}
	for _, c := range udpClients {
		if c.Matches(port) {
			return c
		}
	}
	return nil
}

// isTLSPort reports whether port conventionally carries TLS, used to decide
// whether the fallback HTTP probe should be withheld.
func isTLSPort(port uint16) bool {
	switch port {
	case 443, 8443, 465, 636, 989, 990, 992, 993, 994, 995:
		return true
	}
	return false
}

// FallbackProber returns the last-resort bare HTTP probe, unless port looks
// like TLS (a plaintext GET would only confuse a TLS listener).
func FallbackProber(mode model.Mode, port uint16) Prober {
	if mode != model.Active || isTLSPort(port) {
		return nil
	}
	return proberSingleton
}
