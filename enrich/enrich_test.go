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

package enrich_test

import (
	"encoding/binary"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sabouaram/bannergrab/enrich"
)

func TestEnrich(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "enrich suite")
}

var _ = Describe("mssql PRELOGIN parsing", func() {
	It("decodes a VERSION token into major.minor.build", func() {
		data := []byte{10, 50, 0x06, 0x40, 0, 0} // 10.50.1600
		opts := []byte{
			0x00, 0, 6, 0, 6, // VERSION token: offset 6, length 6
			0xFF,
		}
		b := append(make([]byte, 8), opts...)
		b = append(b, data...)

		Expect(enrich.ParseMssqlPrelogin(b)).To(Equal("10.50.1600"))
	})

	It("returns empty for a short buffer", func() {
		Expect(enrich.ParseMssqlPrelogin([]byte{1, 2, 3})).To(Equal(""))
	})
})

var _ = Describe("NTLM challenge parsing", func() {
	It("extracts the DNS domain AV pair from a Type-2 message", func() {
		msg := make([]byte, 48)
		copy(msg, "NTLMSSP\x00")
		binary.LittleEndian.PutUint32(msg[8:12], 2)

		domain := utf16Encode("corp.example")
		avPairs := make([]byte, 0)
		avPairs = append(avPairs, 4, 0) // AvId = DNS domain name
		avPairs = append(avPairs, byte(len(domain)), byte(len(domain)>>8))
		avPairs = append(avPairs, domain...)
		avPairs = append(avPairs, 0, 0, 0, 0) // EOL

		targetInfoOffset := uint32(len(msg))
		binary.LittleEndian.PutUint16(msg[40:42], uint16(len(avPairs)))
		binary.LittleEndian.PutUint32(msg[44:48], targetInfoOffset)
		msg = append(msg, avPairs...)

		hints := enrich.ParseNtlmChallenge(msg)
		Expect(hints).To(HaveKeyWithValue("ntlm_dns_domain", "corp.example"))
	})

	It("returns nil when there is no NTLMSSP signature", func() {
		Expect(enrich.ParseNtlmChallenge([]byte("not an ntlm message"))).To(BeNil())
	})
})

var _ = Describe("SSH KEXINIT decoding", func() {
	It("pulls the kex and host key name-lists out of a KEXINIT packet", func() {
		kex := "curve25519-sha256"
		hostKey := "ssh-ed25519"

		packet := make([]byte, 0)
		packet = append(packet, 0, 0, 0, 0) // packet_length, unused by the decoder
		packet = append(packet, 0)          // padding_length
		packet = append(packet, 20)         // SSH_MSG_KEXINIT
		packet = append(packet, make([]byte, 16)...)

		packet = appendNameList(packet, kex)
		packet = appendNameList(packet, hostKey)

		raw := append([]byte("SSH-2.0-mock\r\n"), packet...)

		gotKex, gotHostKey := enrich.ParseSshKexinit(func() []byte {
			idx := 12 // len("SSH-2.0-mock")
			return raw[idx+2:]
		}())
		Expect(gotKex).To(Equal(kex))
		Expect(gotHostKey).To(Equal(hostKey))
	})
})

func appendNameList(b []byte, list string) []byte {
	length := make([]byte, 4)
	binary.BigEndian.PutUint32(length, uint32(len(list)))
	b = append(b, length...)
	return append(b, []byte(list)...)
}

func utf16Encode(s string) []byte {
	out := make([]byte, 0, len(s)*2)
	for _, r := range s {
		out = append(out, byte(r), 0)
	}
	return out
}
