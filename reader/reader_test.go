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

package reader_test

import (
	"net"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sabouaram/bannergrab/model"
	"github.com/sabouaram/bannergrab/reader"
)

func TestReader(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "reader suite")
}

func pipe() (net.Conn, net.Conn) {
	return net.Pipe()
}

var _ = Describe("BannerReader", func() {
	It("stops on the \\r\\n\\r\\n delimiter", func() {
		client, server := pipe()
		defer client.Close()
		defer server.Close()

		go func() {
			_, _ = server.Write([]byte("HTTP/1.1 200 OK\r\nContent-Length: 2\r\n\r\nOK"))
		}()

		r := reader.New(4096)
		rr, err := r.Read(client, time.Second, nil)
		Expect(err).ToNot(HaveOccurred())
		Expect(rr.Reason).To(Equal(model.Delimiter))
		Expect(string(rr.Bytes)).To(HaveSuffix("\r\n\r\n"))
	})

	It("stops on a single newline when no blank-line terminator exists", func() {
		client, server := pipe()
		defer client.Close()
		defer server.Close()

		go func() {
			_, _ = server.Write([]byte("VTUN server ver 3.X 12/31/2013\nextra garbage"))
		}()

		r := reader.New(4096)
		rr, err := r.Read(client, time.Second, nil)
		Expect(err).ToNot(HaveOccurred())
		Expect(rr.Reason).To(Equal(model.Delimiter))
		Expect(string(rr.Bytes)).To(Equal("VTUN server ver 3.X 12/31/2013\n"))
	})

	It("truncates at max_bytes=1 against a larger write", func() {
		client, server := pipe()
		defer client.Close()
		defer server.Close()

		go func() {
			_, _ = server.Write([]byte("0123456789"))
		}()

		r := reader.New(1)
		rr, err := r.Read(client, time.Second, nil)
		Expect(err).ToNot(HaveOccurred())
		Expect(rr.Reason).To(Equal(model.SizeLimit))
		Expect(rr.Truncated).To(BeTrue())
		Expect(len(rr.Bytes)).To(Equal(1))
	})

	It("reports connection_closed when the peer closes immediately", func() {
		client, server := pipe()
		defer client.Close()
		server.Close()

		r := reader.New(4096)
		rr, err := r.Read(client, time.Second, nil)
		Expect(err).ToNot(HaveOccurred())
		Expect(rr.Reason).To(Equal(model.ConnectionClosed))
		Expect(rr.Bytes).To(BeEmpty())
	})

	It("reports timeout when the peer never writes", func() {
		client, server := pipe()
		defer client.Close()
		defer server.Close()

		r := reader.New(4096)
		rr, err := r.Read(client, 100*time.Millisecond, nil)
		Expect(err).ToNot(HaveOccurred())
		Expect(rr.Reason).To(Equal(model.Timeout))
	})

	It("renders a printable projection that keeps only ASCII and CR/LF", func() {
		rr := model.ReadResult{Bytes: []byte("OK\x01\x02\r\n"), Reason: model.Delimiter}
		b := reader.Render(rr)
		Expect(b.Printable).To(Equal("OK..\r\n"))
		Expect(b.RawHex).To(Equal("4f 4b 01 02 0d 0a"))
	})
})
