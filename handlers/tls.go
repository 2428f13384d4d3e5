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
	"crypto/tls"
	"net"
	"time"

	"github.com/sabouaram/bannergrab/model"
)

type tlsClient struct{}

func (t *tlsClient) Name() string          { return "tls" }
func (t *tlsClient) Matches(p uint16) bool { return p == 443 || p == 8443 }

// tlsClientHelloProbe is the fixed 53-byte minimal ClientHello record used as a
// bare protocol probe when a full crypto/tls handshake isn't wanted: TLS
// record header, handshake header, client version 3.3, 28 zero bytes of
// random, empty session ID, a single cipher suite (TLS_AES_128_GCM_SHA256,
// 0x1301), null compression, and a renegotiation_info extension.
var tlsClientHelloProbe = []byte{
	0x16, 0x03, 0x01, 0x00, 0x31,
	0x01, 0x00, 0x00, 0x2d,
	0x03, 0x03,
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00,
	0x00,
	0x00, 0x02, 0x13, 0x01,
	0x01, 0x00,
	0x00, 0x05, 0xff, 0x01, 0x00, 0x01, 0x00,
}

func (t *tlsClient) Execute(conn net.Conn, _ model.Target, cfg *model.Config, deadline time.Time) (model.ReadResult, error) {
	sess := newSession(cfg, deadline)

	if err := sess.Send(conn, tlsClientHelloProbe); err != nil {
		return sess.Finish(), err
	}
	if _, err := sess.Read(conn, nil); err != nil {
		return sess.Finish(), err
	}

	rr := sess.Finish()
	if len(rr.Bytes) > 0 && rr.Bytes[0] == 0x16 {
		rr.TLS = &model.TLSInfo{Version: tlsRecordVersion(rr.Bytes)}
	}
	return rr, nil
}

func tlsRecordVersion(b []byte) string {
	if len(b) < 3 {
		return ""
	}
	switch {
	case b[1] == 0x03 && b[2] == 0x04:
		return "TLS1.3"
	case b[1] == 0x03 && b[2] == 0x03:
		return "TLS1.2"
	case b[1] == 0x03 && b[2] == 0x02:
		return "TLS1.1"
	case b[1] == 0x03 && b[2] == 0x01:
		return "TLS1.0"
	default:
		return ""
	}
}

// tlsHandshakeCapture performs a full (verification-disabled) TLS handshake
// over conn and returns the wrapped connection alongside the negotiated
// version, cipher suite and leaf certificate metadata.
func tlsHandshakeCapture(conn net.Conn, deadline time.Time) (net.Conn, *model.TLSInfo, error) {
	_ = conn.SetDeadline(deadline)

	tlsConn := tls.Client(conn, &tls.Config{InsecureSkipVerify: true})
	if err := tlsConn.Handshake(); err != nil {
		return nil, nil, err
	}

	state := tlsConn.ConnectionState()
	info := &model.TLSInfo{
		Version:     tls.VersionName(state.Version),
		CipherSuite: tls.CipherSuiteName(state.CipherSuite),
	}
	if len(state.PeerCertificates) > 0 {
		cert := state.PeerCertificates[0]
		info.CertSubject = cert.Subject.String()
		info.CertIssuer = cert.Issuer.String()
		info.CertNotBefore = cert.NotBefore.Format(time.RFC3339)
		info.CertNotAfter = cert.NotAfter.Format(time.RFC3339)
	}

	return tlsConn, info, nil
}
