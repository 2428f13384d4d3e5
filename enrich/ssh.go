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

package enrich

import (
	"bytes"
	"encoding/binary"
)

// sshKexResult holds the two name-lists the scan surfaces as hints; SSH
// defines a dozen name-lists in KEXINIT, but kex algorithms and host key
// types are what a fingerprint actually needs.
type sshKexResult struct {
	kex     string
	hostKey string
}

// ParseSshKexinit decodes the KEXINIT packet that follows an SSH version
// line into the key-exchange and host-key algorithm name-lists. b must start
// at the packet length field of the binary SSH packet (i.e. after the
// "SSH-2.0-...\r\n" version line has already been stripped).
func ParseSshKexinit(b []byte) (string, string) {
	r := sshPacketReader{buf: b}
	if !r.skipPacketHeader() {
		return "", ""
	}
	if !r.skipByte() { // message type (SSH_MSG_KEXINIT = 20)
		return "", ""
	}
	if !r.skipN(16) { // cookie
		return "", ""
	}

	kex, ok := r.nextNameList()
	if !ok {
		return "", ""
	}
	hostKey, ok := r.nextNameList()
	if !ok {
		return kex, ""
	}
	return kex, hostKey
}

// EnrichSsh is the entry point invoked by the pipeline for an SSH outcome.
func EnrichSsh(b []byte) map[string]string {
	kex, hostKey := ParseSshKexinit(stripSshVersionLine(b))
	hints := map[string]string{}
	if kex != "" {
		hints["ssh_kex"] = kex
	}
	if hostKey != "" {
		hints["ssh_hostkey"] = hostKey
	}
	if len(hints) == 0 {
		return nil
	}
	return hints
}

func stripSshVersionLine(b []byte) []byte {
	idx := bytes.Index(b, []byte("\r\n"))
	if idx < 0 {
		return nil
	}
	return b[idx+2:]
}

type sshPacketReader struct {
	buf []byte
	pos int
}

func (r *sshPacketReader) skipPacketHeader() bool {
	// 4-byte packet_length + 1-byte padding_length.
	if len(r.buf) < 5 {
		return false
	}
	r.pos = 5
	return true
}

func (r *sshPacketReader) skipByte() bool {
	if r.pos+1 > len(r.buf) {
		return false
	}
	r.pos++
	return true
}

func (r *sshPacketReader) skipN(n int) bool {
	if r.pos+n > len(r.buf) {
		return false
	}
	r.pos += n
	return true
}

func (r *sshPacketReader) nextNameList() (string, bool) {
	if r.pos+4 > len(r.buf) {
		return "", false
	}
	n := binary.BigEndian.Uint32(r.buf[r.pos : r.pos+4])
	r.pos += 4
	if r.pos+int(n) > len(r.buf) {
		return "", false
	}
	list := string(r.buf[r.pos : r.pos+int(n)])
	r.pos += int(n)
	return list, true
}
