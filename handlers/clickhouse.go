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

// clickhouseClient speaks the first leg of ClickHouse's native protocol:
// a varint-framed Hello packet naming the client, followed by a single
// read of the server's own Hello reply (name, version, revision).
type clickhouseClient struct{}

func (c *clickhouseClient) Name() string          { return "clickhouse" }
func (c *clickhouseClient) Matches(p uint16) bool { return p == 9000 }

// clickhouseHello builds a minimal client Hello packet: packet type 0
// (Hello), then the four length-prefixed strings and three varints the
// protocol requires before the server will reply with its own Hello.
func clickhouseHello() []byte {
	var buf []byte
	putUvarint := func(v uint64) {
		for v >= 0x80 {
			buf = append(buf, byte(v)|0x80)
			v >>= 7
		}
		buf = append(buf, byte(v))
	}
	putString := func(s string) {
		putUvarint(uint64(len(s)))
		buf = append(buf, s...)
	}

	putUvarint(0) // Hello packet type
	putString("bannergrab")
	putUvarint(54429) // client protocol version
	putUvarint(54429)
	putUvarint(54429) // client revision
	putString("default")
	putString("default")
	putString("")

	return buf
}

func (c *clickhouseClient) Execute(conn net.Conn, _ model.Target, cfg *model.Config, deadline time.Time) (model.ReadResult, error) {
	sess := newSession(cfg, deadline)

	if err := sess.Send(conn, clickhouseHello()); err != nil {
		return sess.Finish(), err
	}
	if _, err := sess.Read(conn, nil); err != nil {
		return sess.Finish(), err
	}

	return sess.Finish(), nil
}
