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
	"net"
	"time"

	"github.com/sabouaram/bannergrab/model"
)

type vncClient struct{}

func (v *vncClient) Name() string { return "vnc" }
func (v *vncClient) Matches(p uint16) bool {
	return p >= 5900 && p <= 5909
}

// vncSecurityType picks None(1) when offered, else the first offered type.
func vncSecurityType(types []byte) byte {
	for _, t := range types {
		if t == 1 {
			return 1
		}
	}
	if len(types) > 0 {
		return types[0]
	}
	return 1
}

func (v *vncClient) Execute(conn net.Conn, _ model.Target, cfg *model.Config, deadline time.Time) (model.ReadResult, error) {
	sess := newSession(cfg, deadline)

	version, done, err := readLine(sess, conn)
	if err != nil || done {
		return sess.Finish(), err
	}

	if !bytes.HasPrefix(version, []byte("RFB ")) {
		return sess.Finish(), nil
	}
	if err := sess.Send(conn, version); err != nil {
		return sess.Finish(), err
	}

	is33 := bytes.Contains(version, []byte("RFB 003.003"))

	secInfo, done, err := readLine(sess, conn)
	if err != nil || done {
		return sess.Finish(), err
	}

	if !is33 && len(secInfo) >= 2 {
		n := int(secInfo[0])
		if n == 0 {
			return sess.Finish(), nil
		}
		end := 1 + n
		if end > len(secInfo) {
			end = len(secInfo)
		}
		chosen := vncSecurityType(secInfo[1:end])
		if err := sess.Send(conn, []byte{chosen}); err != nil {
			return sess.Finish(), err
		}
		if done, err := sess.Read(conn, nil); err != nil || done {
			return sess.Finish(), err
		}
	}

	if err := sess.Send(conn, []byte{0x01}); err != nil {
		return sess.Finish(), err
	}

	if done, err := sess.Read(conn, nil); err != nil || done {
		return sess.Finish(), err
	}

	return sess.Finish(), nil
}
