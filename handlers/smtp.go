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
	"encoding/base64"
	"net"
	"time"

	"github.com/sabouaram/bannergrab/model"
)

type smtpClient struct{}

func (s *smtpClient) Name() string { return "smtp" }
func (s *smtpClient) Matches(p uint16) bool {
	return p == 25 || p == 587
}

// smtpNtlmType1 is a minimal NTLM Negotiate (Type-1) message: signature,
// message type 1, default negotiate flags.
var smtpNtlmType1 = []byte{
	'N', 'T', 'L', 'M', 'S', 'S', 'P', 0x00,
	0x01, 0x00, 0x00, 0x00,
	0x07, 0x82, 0x08, 0xa2,
	0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00,
}

func (s *smtpClient) Execute(conn net.Conn, _ model.Target, cfg *model.Config, deadline time.Time) (model.ReadResult, error) {
	sess := newSession(cfg, deadline)

	steps := []string{
		"EHLO banner-grabber\r\n",
		"HELP\r\n",
		"MAIL FROM:<probe@banner-grabber>\r\n",
		"RCPT TO:<root>\r\n",
		"EXPN root\r\n",
		"AUTH NTLM\r\n",
	}

	if done, err := sess.Read(conn, nil); err != nil || done {
		return sess.Finish(), err
	}

	for _, cmd := range steps {
		if err := sess.Send(conn, []byte(cmd)); err != nil {
			return sess.Finish(), err
		}
		if done, err := sess.Read(conn, nil); err != nil || done {
			return sess.Finish(), err
		}
	}

	blob := make([]byte, base64.StdEncoding.EncodedLen(len(smtpNtlmType1)))
	base64.StdEncoding.Encode(blob, smtpNtlmType1)
	if err := sess.Send(conn, append(blob, '\r', '\n')); err != nil {
		return sess.Finish(), err
	}
	if done, err := sess.Read(conn, nil); err != nil || done {
		return sess.Finish(), err
	}

	_ = sess.Send(conn, []byte("QUIT\r\n"))

	return sess.Finish(), nil
}
