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

package admin_test

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sabouaram/bannergrab/admin"
)

func TestAdmin(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "admin suite")
}

func freeAddr() string {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	Expect(err).ToNot(HaveOccurred())
	defer l.Close()
	return l.Addr().String()
}

func get(url string) (int, string) {
	resp, err := http.Get(url)
	Expect(err).ToNot(HaveOccurred())
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	Expect(err).ToNot(HaveOccurred())
	return resp.StatusCode, string(body)
}

var _ = Describe("Server", func() {
	It("serves /healthz as ok while ready() reports true", func() {
		addr := freeAddr()
		srv := admin.New(addr, func() bool { return true })
		Expect(srv.Start()).To(Succeed())
		defer srv.Shutdown(context.Background())

		Eventually(func() int {
			code, _ := get(fmt.Sprintf("http://%s/healthz", addr))
			return code
		}, time.Second).Should(Equal(http.StatusOK))
	})

	It("serves /healthz as unavailable once ready() reports false", func() {
		addr := freeAddr()
		srv := admin.New(addr, func() bool { return false })
		Expect(srv.Start()).To(Succeed())
		defer srv.Shutdown(context.Background())

		Eventually(func() int {
			code, _ := get(fmt.Sprintf("http://%s/healthz", addr))
			return code
		}, time.Second).Should(Equal(http.StatusServiceUnavailable))
	})

	It("serves /metrics with the registered gauges and counters", func() {
		addr := freeAddr()
		srv := admin.New(addr, nil)
		Expect(srv.Start()).To(Succeed())
		defer srv.Shutdown(context.Background())

		var body string
		Eventually(func() int {
			var code int
			code, body = get(fmt.Sprintf("http://%s/metrics", addr))
			return code
		}, time.Second).Should(Equal(http.StatusOK))

		Expect(body).To(ContainSubstring("bannergrab_targets_in_flight"))
		Expect(body).To(ContainSubstring("bannergrab_uptime_seconds"))
	})

	It("shuts down cleanly", func() {
		addr := freeAddr()
		srv := admin.New(addr, nil)
		Expect(srv.Start()).To(Succeed())

		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		Expect(srv.Shutdown(ctx)).To(Succeed())
	})

	It("treats a nil server's Shutdown as a no-op", func() {
		var srv *admin.Server
		Expect(srv.Shutdown(context.Background())).To(Succeed())
	})
})
