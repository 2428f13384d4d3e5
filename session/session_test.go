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

package session_test

import (
	"net"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sabouaram/bannergrab/model"
	"github.com/sabouaram/bannergrab/session"
)

func TestSession(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "session suite")
}

var _ = Describe("ClientSession", func() {
	It("merges partial reads, truncating and keeping the last part's reason", func() {
		s := session.New(5, time.Second, time.Now().Add(time.Second))

		s.AppendMetadata([]byte("hello"))
		s.AppendMetadata([]byte("world"))

		rr := s.Finish()
		Expect(string(rr.Bytes)).To(Equal("hello"))
		Expect(rr.Truncated).To(BeTrue())
		Expect(rr.Reason).To(Equal(model.NotStarted))
	})

	It("synthesizes a timeout part without I/O once the deadline has passed", func() {
		s := session.New(64, time.Second, time.Now().Add(-time.Millisecond))

		client, srv := net.Pipe()
		defer client.Close()
		defer srv.Close()

		done, err := s.Read(client, nil)
		Expect(err).ToNot(HaveOccurred())
		Expect(done).To(BeTrue())

		rr := s.Finish()
		Expect(rr.Reason).To(Equal(model.Timeout))
		Expect(rr.Bytes).To(BeEmpty())
	})

	It("sends bytes synchronously", func() {
		client, srv := net.Pipe()
		defer client.Close()
		defer srv.Close()

		s := session.New(64, time.Second, time.Now().Add(time.Second))

		go func() {
			buf := make([]byte, 4)
			_, _ = srv.Read(buf)
		}()

		Expect(s.Send(client, []byte("ping"))).To(Succeed())
	})
})
