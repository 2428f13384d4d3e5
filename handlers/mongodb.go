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

type mongodbClient struct{}

func (m *mongodbClient) Name() string          { return "mongodb" }
func (m *mongodbClient) Matches(p uint16) bool { return p == 27017 }

// mongoIsMasterQuery builds a legacy OP_QUERY wire message asking
// admin.$cmd for { isMaster: 1 }, BSON-encoded by hand since the payload is
// fixed and tiny enough not to warrant a full BSON encoder dependency.
func mongoIsMasterQuery() []byte {
	doc := []byte{
		0x00, 0x00, 0x00, 0x00, // document length placeholder
		0x10,                      // int32 element
		'i', 's', 'M', 'a', 's', 't', 'e', 'r', 0x00,
		0x01, 0x00, 0x00, 0x00, // value = 1
		0x00, // document terminator
	}
	binary.LittleEndian.PutUint32(doc[0:4], uint32(len(doc)))

	const collection = "admin.$cmd\x00"
	body := make([]byte, 0, 20+len(collection)+len(doc))
	body = binary.LittleEndian.AppendUint32(body, 0) // flags
	body = append(body, collection...)
	body = binary.LittleEndian.AppendUint32(body, 0)          // numberToSkip
	body = binary.LittleEndian.AppendUint32(body, uint32(0xFFFFFFFF)) // numberToReturn = -1
	body = append(body, doc...)

	const headerLen = 16
	msg := make([]byte, headerLen, headerLen+len(body))
	binary.LittleEndian.PutUint32(msg[0:4], uint32(headerLen+len(body))) // messageLength
	binary.LittleEndian.PutUint32(msg[4:8], 1)                          // requestID
	binary.LittleEndian.PutUint32(msg[8:12], 0)                         // responseTo
	binary.LittleEndian.PutUint32(msg[12:16], 2004)                     // opCode = OP_QUERY
	msg = append(msg, body...)

	return msg
}

func (m *mongodbClient) Execute(conn net.Conn, _ model.Target, cfg *model.Config, deadline time.Time) (model.ReadResult, error) {
	sess := newSession(cfg, deadline)

	if err := sess.Send(conn, mongoIsMasterQuery()); err != nil {
		return sess.Finish(), err
	}
	if _, err := sess.Read(conn, nil); err != nil {
		return sess.Finish(), err
	}

	return sess.Finish(), nil
}
