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

package handlers_test

import (
	"net"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sabouaram/bannergrab/handlers"
	"github.com/sabouaram/bannergrab/model"
)

func TestHandlers(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "handlers suite")
}

var _ = Describe("registry selection", func() {
	It("matches nothing in passive mode", func() {
		Expect(handlers.MatchTCP(model.Passive, 21)).To(BeNil())
	})

	It("matches the ftp handler on port 21 in active mode", func() {
		h := handlers.MatchTCP(model.Active, 21)
		Expect(h).ToNot(BeNil())
		Expect(h.Name()).To(Equal("ftp"))
	})

	It("withholds the fallback prober on TLS-looking ports", func() {
		Expect(handlers.FallbackProber(model.Active, 443)).To(BeNil())
	})

	It("offers the fallback prober on an unclaimed plaintext port", func() {
		p := handlers.FallbackProber(model.Active, 7777)
		Expect(p).ToNot(BeNil())
		Expect(p.Name()).To(Equal("http-fallback"))
	})
})

var _ = Describe("redis handler", func() {
	It("captures a mock -ERR reply", func() {
		l, err := net.Listen("tcp", "127.0.0.1:0")
		Expect(err).ToNot(HaveOccurred())
		defer l.Close()

		go func() {
			c, err := l.Accept()
			if err != nil {
				return
			}
			defer c.Close()
			buf := make([]byte, 64)
			_, _ = c.Read(buf)
			_, _ = c.Write([]byte("-ERR mock\r\n"))
		}()

		conn, err := net.Dial("tcp", l.Addr().String())
		Expect(err).ToNot(HaveOccurred())
		defer conn.Close()

		cfg := &model.Config{ReadTimeout: 500 * time.Millisecond, MaxBytes: 4096}
		h := handlers.MatchTCP(model.Active, 6379)
		Expect(h).ToNot(BeNil())

		rr, err := h.Execute(conn, model.Target{}, cfg, time.Now().Add(time.Second))
		Expect(err).ToNot(HaveOccurred())
		Expect(string(rr.Bytes)).To(ContainSubstring("-ERR mock"))
	})
})

var _ = Describe("http handler", func() {
	It("captures a short response and pulls the declared body", func() {
		l, err := net.Listen("tcp", "127.0.0.1:0")
		Expect(err).ToNot(HaveOccurred())
		defer l.Close()

		go func() {
			c, err := l.Accept()
			if err != nil {
				return
			}
			defer c.Close()
			buf := make([]byte, 256)
			_, _ = c.Read(buf)
			_, _ = c.Write([]byte("HTTP/1.1 200 OK\r\nContent-Length: 2\r\n\r\nOK"))
		}()

		conn, err := net.Dial("tcp", l.Addr().String())
		Expect(err).ToNot(HaveOccurred())
		defer conn.Close()

		cfg := &model.Config{ReadTimeout: 500 * time.Millisecond, MaxBytes: 4096}
		httpHandler := handlers.MatchTCP(model.Active, 80)
		Expect(httpHandler).ToNot(BeNil())

		port := uint16(l.Addr().(*net.TCPAddr).Port)
		target := model.Target{OriginalHost: "example.invalid", OriginalPort: port}
		rr, err := httpHandler.Execute(conn, target, cfg, time.Now().Add(time.Second))
		Expect(err).ToNot(HaveOccurred())
		Expect(string(rr.Bytes)).To(HaveSuffix("OK"))
	})
})
