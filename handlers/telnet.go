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

const (
	telnetIAC  = 0xFF
	telnetDO   = 0xFD
	telnetDONT = 0xFE
	telnetWILL = 0xFB
	telnetWONT = 0xFC
	telnetSB   = 0xFA
	telnetSE   = 0xF0
)

type telnetClient struct{}

func (t *telnetClient) Name() string { return "telnet" }
func (t *telnetClient) Matches(p uint16) bool {
	return p == 23 || p == 2323
}

// decodeTelnetNegotiation walks buf for IAC option sequences and returns the
// concatenated reply: DO becomes WONT, WILL becomes DONT, DONT/WONT are
// acknowledged with nothing, and SB...SE subnegotiations are skipped
// entirely. Any other IAC command is a bare two-byte sequence.
func decodeTelnetNegotiation(buf []byte) []byte {
	reply := make([]byte, 0, len(buf))

	for i := 0; i < len(buf); i++ {
		if buf[i] != telnetIAC || i+1 >= len(buf) {
			continue
		}
		cmd := buf[i+1]

		switch cmd {
		case telnetDO:
			if i+2 < len(buf) {
				reply = append(reply, telnetIAC, telnetWONT, buf[i+2])
			}
			i += 2
		case telnetWILL:
			if i+2 < len(buf) {
				reply = append(reply, telnetIAC, telnetDONT, buf[i+2])
			}
			i += 2
		case telnetDONT, telnetWONT:
			i += 2
		case telnetSB:
			j := i + 2
			for j+1 < len(buf) && !(buf[j] == telnetIAC && buf[j+1] == telnetSE) {
				j++
			}
			i = j + 1
		default:
			i++
		}
	}

	return reply
}

func (t *telnetClient) Execute(conn net.Conn, _ model.Target, cfg *model.Config, deadline time.Time) (model.ReadResult, error) {
	sess := newSession(cfg, deadline)

	first, done, err := readLine(sess, conn)
	if err != nil || done {
		return sess.Finish(), err
	}

	if reply := decodeTelnetNegotiation(first); len(reply) > 0 {
		if err := sess.Send(conn, reply); err != nil {
			return sess.Finish(), err
		}
	}

	if err := sess.Send(conn, []byte("\r\n")); err != nil {
		return sess.Finish(), err
	}

	second, done, err := readLine(sess, conn)
	if err != nil || done {
		return sess.Finish(), err
	}

	if reply := decodeTelnetNegotiation(second); len(reply) > 0 {
		if err := sess.Send(conn, reply); err != nil {
			return sess.Finish(), err
		}
	}

	if _, err := sess.Read(conn, nil); err != nil {
		return sess.Finish(), err
	}

	return sess.Finish(), nil
}
