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

// mysqlClient never writes: the server sends its handshake packet
// unsolicited, so a single bounded read is the entire dialogue.
type mysqlClient struct{}

func (m *mysqlClient) Name() string          { return "mysql" }
func (m *mysqlClient) Matches(p uint16) bool { return p == 3306 }

func (m *mysqlClient) Execute(conn net.Conn, _ model.Target, cfg *model.Config, deadline time.Time) (model.ReadResult, error) {
	sess := newSession(cfg, deadline)

	if _, err := sess.Read(conn, nil); err != nil {
		return sess.Finish(), err
	}

	return sess.Finish(), nil
}
