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

type memcachedClient struct{}

func (m *memcachedClient) Name() string          { return "memcached" }
func (m *memcachedClient) Matches(p uint16) bool { return p == 11211 }

func (m *memcachedClient) Execute(conn net.Conn, _ model.Target, cfg *model.Config, deadline time.Time) (model.ReadResult, error) {
	sess := newSession(cfg, deadline)

	if err := sess.Send(conn, []byte("version\r\n")); err != nil {
		return sess.Finish(), err
	}
	if done, err := sess.Read(conn, nil); err != nil || done {
		return sess.Finish(), err
	}

	if err := sess.Send(conn, []byte("stats\r\n")); err != nil {
		return sess.Finish(), err
	}
	if _, err := sess.Read(conn, []byte("END\r\n")); err != nil {
		return sess.Finish(), err
	}

	return sess.Finish(), nil
}
