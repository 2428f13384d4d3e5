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
	"net"
	"time"

	"github.com/sabouaram/bannergrab/model"
)

type smbClient struct{}

func (s *smbClient) Name() string          { return "smb" }
func (s *smbClient) Matches(p uint16) bool { return p == 445 }

// smb1Negotiate is a minimal SMB1 NEGOTIATE request: NBSS session header,
// SMB header (command 0x72), and a single "NT LM 0.12" dialect.
var smb1Negotiate = []byte{
	0x00, 0x00, 0x00, 0x2f,
	0xff, 'S', 'M', 'B',
	0x72,
	0x00, 0x00, 0x00, 0x00,
	0x18,
	0x53, 0xc8,
	0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00,
	0x00, 0x00,
	0xff, 0xfe,
	0x00, 0x00,
	0x00, 0x00,
	0x00,
	0x0c, 0x00,
	0x02, 'N', 'T', ' ', 'L', 'M', ' ', '0', '.', '1', '2', 0x00,
}

func (s *smbClient) Execute(conn net.Conn, _ model.Target, cfg *model.Config, deadline time.Time) (model.ReadResult, error) {
	sess := newSession(cfg, deadline)

	if err := sess.Send(conn, smb1Negotiate); err != nil {
		return sess.Finish(), err
	}
	if _, err := sess.Read(conn, nil); err != nil {
		return sess.Finish(), err
	}

	return sess.Finish(), nil
}
