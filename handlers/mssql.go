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
	"encoding/binary"
	"net"
	"time"

	"github.com/sabouaram/bannergrab/model"
)

type mssqlClient struct{}

func (m *mssqlClient) Name() string          { return "mssql" }
func (m *mssqlClient) Matches(p uint16) bool { return p == 1433 }

// tdsPreLogin builds a TDS 7.x PRE_LOGIN packet: an 8-byte TDS header (type
// 0x12, status 0x01) followed by a 26-byte option table (5 fixed-size
// entries plus the 0xFF terminator) and the option payload it points into.
func tdsPreLogin() []byte {
	type option struct {
		token byte
		data  []byte
	}
	options := []option{
		{0x00, []byte{0x00, 0x00, 0x00, 0x00, 0x00, 0x00}}, // VERSION
		{0x01, []byte{0x02}},                               // ENCRYPTION: NOT_SUP
		{0x02, []byte{0x00}},                               // INSTOPT: empty instance
		{0x03, []byte{0x00, 0x00, 0x00, 0x00}},              // THREADID
		{0x04, []byte{0x00}},                                // MARS: off
	}

	const headerLen = 8
	tableLen := len(options)*5 + 1

	table := make([]byte, 0, tableLen)
	data := make([]byte, 0, 16)
	offset := tableLen

	for _, o := range options {
		table = append(table, o.token)
		table = binary.BigEndian.AppendUint16(table, uint16(offset+len(data)))
		table = binary.BigEndian.AppendUint16(table, uint16(len(o.data)))
		data = append(data, o.data...)
	}
	table = append(table, 0xFF)

	total := headerLen + len(table) + len(data)

	pkt := make([]byte, headerLen, total)
	pkt[0] = 0x12
	pkt[1] = 0x01
	binary.BigEndian.PutUint16(pkt[2:4], uint16(total))
	pkt = append(pkt, table...)
	pkt = append(pkt, data...)

	return pkt
}

func (m *mssqlClient) Execute(conn net.Conn, _ model.Target, cfg *model.Config, deadline time.Time) (model.ReadResult, error) {
	sess := newSession(cfg, deadline)

	if err := sess.Send(conn, tdsPreLogin()); err != nil {
		return sess.Finish(), err
	}
	if _, err := sess.Read(conn, nil); err != nil {
		return sess.Finish(), err
	}

	return sess.Finish(), nil
}
