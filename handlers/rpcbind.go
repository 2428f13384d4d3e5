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
	"math/rand"
	"net"
	"time"

	"github.com/sabouaram/bannergrab/model"
)

type rpcbindClient struct{}

func (r *rpcbindClient) Name() string          { return "rpcbind" }
func (r *rpcbindClient) Matches(p uint16) bool { return p == 111 }

// rpcDumpCall builds an ONC RPC CALL body for PMAPPROC_DUMP (proc 4) against
// the portmapper program (100000) at the given version, with a null
// auth/verifier pair, framed with the record-marking length prefix whose top
// bit marks the final (and only) fragment.
func rpcDumpCall(xid uint32, version uint32) []byte {
	body := make([]byte, 0, 40)
	body = binary.BigEndian.AppendUint32(body, xid)
	body = binary.BigEndian.AppendUint32(body, 0) // msg type = CALL
	body = binary.BigEndian.AppendUint32(body, 2) // rpcvers
	body = binary.BigEndian.AppendUint32(body, 100000)
	body = binary.BigEndian.AppendUint32(body, version)
	body = binary.BigEndian.AppendUint32(body, 4) // proc = DUMP
	body = binary.BigEndian.AppendUint32(body, 0) // auth flavor = AUTH_NULL
	body = binary.BigEndian.AppendUint32(body, 0) // auth length
	body = binary.BigEndian.AppendUint32(body, 0) // verf flavor = AUTH_NULL
	body = binary.BigEndian.AppendUint32(body, 0) // verf length

	framed := make([]byte, 4+len(body))
	binary.BigEndian.PutUint32(framed, 0x80000000|uint32(len(body)))
	copy(framed[4:], body)
	return framed
}

// rpcAcceptSuccess reports whether a fragmented reply's accept_stat field
// (the 6th 32-bit word of the reply body, after the 4-byte fragment header:
// xid, msg type, reply_stat, verifier flavor and a zero verifier length
// precede it) is SUCCESS (0).
func rpcAcceptSuccess(b []byte) bool {
	const wordsBeforeAcceptStat = 5
	off := 4 + wordsBeforeAcceptStat*4
	if len(b) < off+4 {
		return false
	}
	return binary.BigEndian.Uint32(b[off:off+4]) == 0
}

func (r *rpcbindClient) Execute(conn net.Conn, _ model.Target, cfg *model.Config, deadline time.Time) (model.ReadResult, error) {
	sess := newSession(cfg, deadline)
	xid := rand.Uint32()

	for _, version := range []uint32{4, 3, 2} {
		if err := sess.Send(conn, rpcDumpCall(xid, version)); err != nil {
			return sess.Finish(), err
		}

		reply, done, err := readLine(sess, conn)
		if err != nil || done {
			return sess.Finish(), err
		}

		if rpcAcceptSuccess(reply) {
			break
		}
	}

	return sess.Finish(), nil
}
