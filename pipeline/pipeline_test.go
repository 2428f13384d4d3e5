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

package pipeline_test

import (
	"context"
	"net"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sabouaram/bannergrab/model"
	"github.com/sabouaram/bannergrab/pipeline"
)

func TestPipeline(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "pipeline suite")
}

func baseConfig() *model.Config {
	return &model.Config{
		Concurrency:    4,
		Rate:           4,
		ConnectTimeout: 500 * time.Millisecond,
		ReadTimeout:    300 * time.Millisecond,
		OverallTimeout: 2 * time.Second,
		MaxBytes:       4096,
		Mode:           model.Passive,
	}
}

var _ = Describe("ProcessTarget", func() {
	It("captures a passive banner and reports status open", func() {
		l, err := net.Listen("tcp", "127.0.0.1:0")
		Expect(err).ToNot(HaveOccurred())
		defer l.Close()

		go func() {
			c, err := l.Accept()
			if err != nil {
				return
			}
			defer c.Close()
			_, _ = c.Write([]byte("220 mail.example.com ESMTP ready\r\n"))
		}()

		addr := l.Addr().(*net.TCPAddr)
		target := model.Target{OriginalHost: "127.0.0.1", OriginalPort: uint16(addr.Port), Resolved: addr}

		outcome := pipeline.New().ProcessTarget(context.Background(), target, baseConfig())
		Expect(outcome.Status).To(Equal(model.Open))
		Expect(outcome.Banner.Printable).To(ContainSubstring("ESMTP"))
		Expect(outcome.Fingerprint.Protocol).To(Equal("smtp"))
	})

	It("reports a connect error against a closed port", func() {
		l, err := net.Listen("tcp", "127.0.0.1:0")
		Expect(err).ToNot(HaveOccurred())
		addr := l.Addr().(*net.TCPAddr)
		l.Close()

		target := model.Target{OriginalHost: "127.0.0.1", OriginalPort: uint16(addr.Port), Resolved: addr}
		outcome := pipeline.New().ProcessTarget(context.Background(), target, baseConfig())

		Expect(outcome.Status).To(Equal(model.Error))
		Expect(outcome.Diagnostics).ToNot(BeNil())
		Expect(outcome.Diagnostics.Stage).To(Equal("connect"))
	})

	It("drives the FTP handler in active mode", func() {
		l, err := net.Listen("tcp", "127.0.0.1:0")
		Expect(err).ToNot(HaveOccurred())
		defer l.Close()

		go func() {
			c, err := l.Accept()
			if err != nil {
				return
			}
			defer c.Close()
			_, _ = c.Write([]byte("220 mock ftp ready\r\n"))
			buf := make([]byte, 256)
			_, _ = c.Read(buf)
			_, _ = c.Write([]byte("331 password please\r\n"))
			_, _ = c.Read(buf)
			_, _ = c.Write([]byte("530 login incorrect\r\n"))
		}()

		addr := l.Addr().(*net.TCPAddr)
		cfg := baseConfig()
		cfg.Mode = model.Active
		target := model.Target{OriginalHost: "127.0.0.1", OriginalPort: 21, Resolved: &net.TCPAddr{IP: addr.IP, Port: addr.Port}}

		outcome := pipeline.New().ProcessTarget(context.Background(), target, cfg)
		Expect(outcome.Status).To(Equal(model.Open))
		Expect(outcome.Banner.Printable).To(ContainSubstring("mock ftp ready"))
	})
})
