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

package fingerprint_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sabouaram/bannergrab/fingerprint"
	"github.com/sabouaram/bannergrab/model"
)

func TestFingerprint(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "fingerprint suite")
}

var _ = Describe("Of", func() {
	It("fingerprints a TLS 1.3 handshake", func() {
		fp := fingerprint.Of(model.ReadResult{Bytes: []byte{0x16, 0x03, 0x04, 0x00, 0x20}, Reason: model.Delimiter})
		Expect(fp.Protocol).To(Equal("tls"))
		Expect(fp.Fields["version"]).To(Equal("TLS 1.3"))
	})

	It("fingerprints a TLS record with an unknown minor version", func() {
		fp := fingerprint.Of(model.ReadResult{Bytes: []byte{0x16, 0x03, 0x05, 0x00, 0x20}, Reason: model.Delimiter})
		Expect(fp.Protocol).To(Equal("tls"))
		Expect(fp.Fields).ToNot(HaveKey("version"))
	})

	It("fingerprints SMTP and FTP greetings", func() {
		smtp := fingerprint.Of(model.ReadResult{Bytes: []byte("220 mail.example.com ESMTP ready\r\n")})
		Expect(smtp.Protocol).To(Equal("smtp"))

		ftp := fingerprint.Of(model.ReadResult{Bytes: []byte("220 FTP server ready\r\n")})
		Expect(ftp.Protocol).To(Equal("ftp"))
	})

	It("fingerprints a MySQL handshake and extracts the version", func() {
		banner := append([]byte{0x2c, 0x00, 0x00, 0x00, 0x0a}, []byte("8.0.36\x00")...)
		fp := fingerprint.Of(model.ReadResult{Bytes: banner})
		Expect(fp.Protocol).To(Equal("mysql"))
		Expect(fp.Fields["version"]).To(Equal("8.0.36"))
	})

	It("fingerprints SSH with protocol version and software", func() {
		fp := fingerprint.Of(model.ReadResult{Bytes: []byte("SSH-2.0-OpenSSH_9.3\r\n")})
		Expect(fp.Protocol).To(Equal("ssh"))
		Expect(fp.Fields["protocol_version"]).To(Equal("2.0"))
		Expect(fp.Fields["software"]).To(Equal("OpenSSH_9.3"))
	})

	It("falls back to an error-line hint with no protocol guess", func() {
		fp := fingerprint.Of(model.ReadResult{Bytes: []byte("500 internal server error\r\n"), Reason: model.Delimiter})
		Expect(fp.Protocol).To(Equal(""))
		Expect(fp.Fields["error"]).To(Equal("500 internal server error"))
	})
})
