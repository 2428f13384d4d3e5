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
	"bytes"
	"fmt"
	"net"
	"time"

	"github.com/sabouaram/bannergrab/model"
)

type pop3Client struct{}

func (p *pop3Client) Name() string          { return "pop3" }
func (p *pop3Client) Matches(port uint16) bool { return port == 110 }

var pop3FallbackCreds = [][2]string{
	{"postmaster", "postmaster"},
	{"admin", "admin"},
	{"test", "test"},
}

func (p *pop3Client) Execute(conn net.Conn, _ model.Target, cfg *model.Config, deadline time.Time) (model.ReadResult, error) {
	sess := newSession(cfg, deadline)

	if done, err := sess.Read(conn, nil); err != nil || done {
		return sess.Finish(), err
	}

	if err := sess.Send(conn, []byte("CAPA\r\n")); err != nil {
		return sess.Finish(), err
	}
	if done, err := sess.Read(conn, nil); err != nil || done {
		return sess.Finish(), err
	}

	loggedIn := false
	for _, cred := range pop3FallbackCreds {
		if err := sess.Send(conn, []byte(fmt.Sprintf("USER %s\r\n", cred[0]))); err != nil {
			return sess.Finish(), err
		}
		if _, done, err := readLine(sess, conn); err != nil || done {
			return sess.Finish(), err
		}

		if err := sess.Send(conn, []byte(fmt.Sprintf("PASS %s\r\n", cred[1]))); err != nil {
			return sess.Finish(), err
		}
		reply, done, err := readLine(sess, conn)
		if err != nil || done {
			return sess.Finish(), err
		}
		if bytes.HasPrefix(reply, []byte("+OK")) {
			loggedIn = true
			break
		}
	}

	if !loggedIn {
		return sess.Finish(), nil
	}

	for _, cmd := range []string{"STAT\r\n", "LIST\r\n", "UIDL\r\n", "CAPA\r\n"} {
		if err := sess.Send(conn, []byte(cmd)); err != nil {
			return sess.Finish(), err
		}
		if done, err := sess.Read(conn, nil); err != nil || done {
			return sess.Finish(), err
		}
	}

	return sess.Finish(), nil
}
