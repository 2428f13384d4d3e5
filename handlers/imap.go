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

type imapClient struct{}

func (i *imapClient) Name() string          { return "imap" }
func (i *imapClient) Matches(p uint16) bool { return p == 143 }

var imapFallbackCreds = [][2]string{
	{"anonymous", "anonymous"},
	{"admin", "admin"},
	{"test", "test"},
}

func (i *imapClient) Execute(conn net.Conn, _ model.Target, cfg *model.Config, deadline time.Time) (model.ReadResult, error) {
	sess := newSession(cfg, deadline)

	if done, err := sess.Read(conn, nil); err != nil || done {
		return sess.Finish(), err
	}

	if err := sess.Send(conn, []byte("a001 CAPABILITY\r\n")); err != nil {
		return sess.Finish(), err
	}
	caps, done, err := readLine(sess, conn)
	if err != nil || done {
		return sess.Finish(), err
	}

	if bytes.Contains(caps, []byte("LOGINDISABLED")) {
		return sess.Finish(), nil
	}

	tag := 1
	loggedIn := false
	for _, cred := range imapFallbackCreds {
		tag++
		cmd := fmt.Sprintf("a%03d LOGIN %s %s\r\n", tag, cred[0], cred[1])
		if err := sess.Send(conn, []byte(cmd)); err != nil {
			return sess.Finish(), err
		}
		reply, done, err := readLine(sess, conn)
		if err != nil || done {
			return sess.Finish(), err
		}
		if bytes.Contains(reply, []byte("OK")) {
			loggedIn = true
			break
		}
	}

	if !loggedIn {
		return sess.Finish(), nil
	}

	if err := sess.Send(conn, []byte("a200 CAPABILITY\r\n")); err != nil {
		return sess.Finish(), err
	}
	if done, err := sess.Read(conn, nil); err != nil || done {
		return sess.Finish(), err
	}

	if err := sess.Send(conn, []byte("a201 LIST \"\" \"*\"\r\n")); err != nil {
		return sess.Finish(), err
	}
	if done, err := sess.Read(conn, nil); err != nil || done {
		return sess.Finish(), err
	}

	return sess.Finish(), nil
}
