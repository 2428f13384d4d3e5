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
	"encoding/binary"
	"net"
	"time"

	"github.com/sabouaram/bannergrab/model"
)

type rdpClient struct{}

func (r *rdpClient) Name() string          { return "rdp" }
func (r *rdpClient) Matches(p uint16) bool { return p == 3389 }

const (
	rdpProtocolSSL    = 0x01
	rdpProtocolHybrid = 0x02
)

// rdpNegotiationRequest builds a TPKT/X.224 Connection Request carrying an
// RDP Negotiation Request that advertises every protocol this probe knows
// how to follow up on (plain TLS and CredSSP/Hybrid). A real client walks
// each flag over its own fresh connection to enumerate exactly what the
// server accepts; a single bounded capture asks for everything at once and
// reads back whichever one the server picks.
func rdpNegotiationRequest() []byte {
	cookie := "Cookie: mstshash=nmap\r\n"

	negReq := []byte{
		0x01,             // type = TYPE_RDP_NEG_REQ
		0x00,             // flags
		0x08, 0x00,       // length = 8 (LE)
		0x00, 0x00, 0x00, 0x00, // requestedProtocols placeholder
	}
	binary.LittleEndian.PutUint32(negReq[4:8], rdpProtocolSSL|rdpProtocolHybrid)

	// X.224 CR header: length indicator, CR code, dst-ref, src-ref, class.
	payload := append([]byte(cookie), negReq...)
	body := make([]byte, 0, 7+len(payload))
	body = append(body, byte(len(payload)+6), 0xe0, 0x00, 0x00, 0x00, 0x00, 0x00)
	body = append(body, payload...)

	tpkt := make([]byte, 4, 4+len(body))
	tpkt[0] = 0x03
	tpkt[1] = 0x00
	binary.BigEndian.PutUint16(tpkt[2:4], uint16(4+len(body)))
	tpkt = append(tpkt, body...)

	return tpkt
}

// rdpSelectedProtocol extracts the selectedProtocol field from a
// TYPE_RDP_NEG_RSP, or 0 (PROTOCOL_RDP) if the server didn't send one.
func rdpSelectedProtocol(b []byte) uint32 {
	const negRspType = 0x02
	for i := 0; i+8 <= len(b); i++ {
		if b[i] == negRspType {
			return binary.LittleEndian.Uint32(b[i+4 : i+8])
		}
	}
	return 0
}

// ntlmNegotiate is the same minimal Type-1 message used by the SMTP AUTH
// NTLM probe.
var ntlmNegotiate = smtpNtlmType1

func (r *rdpClient) Execute(conn net.Conn, _ model.Target, cfg *model.Config, deadline time.Time) (model.ReadResult, error) {
	sess := newSession(cfg, deadline)

	if err := sess.Send(conn, rdpNegotiationRequest()); err != nil {
		return sess.Finish(), err
	}
	reply, done, err := readLine(sess, conn)
	if err != nil || done {
		return sess.Finish(), err
	}

	selected := rdpSelectedProtocol(reply)
	if selected&(rdpProtocolSSL|rdpProtocolHybrid) == 0 {
		return sess.Finish(), nil
	}

	_ = conn.SetDeadline(deadline)
	tlsConn := tls.Client(conn, &tls.Config{InsecureSkipVerify: true})
	if err := tlsConn.Handshake(); err != nil {
		return sess.Finish(), nil
	}

	if err := sess.Send(tlsConn, ntlmNegotiate); err != nil {
		return sess.Finish(), nil
	}
	if _, err := sess.Read(tlsConn, nil); err != nil {
		return sess.Finish(), nil
	}

	return sess.Finish(), nil
}
