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

package ratelimit_test

import (
	"context"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sabouaram/bannergrab/ratelimit"
)

func TestRateLimit(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "ratelimit suite")
}

var _ = Describe("Limiter", func() {
	It("clamps a fill rate below 1", func() {
		l := ratelimit.New(0)
		Expect(l).ToNot(BeNil())
	})

	It("lets the first token through immediately", func() {
		l := ratelimit.New(4)
		start := time.Now()
		Expect(l.Acquire(context.Background())).To(Succeed())
		Expect(time.Since(start)).To(BeNumerically("<", 50*time.Millisecond))
	})

	It("makes the 5th acquire of a rate=4 bucket wait roughly 250ms", func() {
		l := ratelimit.New(4)
		ctx := context.Background()

		for i := 0; i < 4; i++ {
			Expect(l.Acquire(ctx)).To(Succeed())
		}

		start := time.Now()
		Expect(l.Acquire(ctx)).To(Succeed())
		elapsed := time.Since(start)

		Expect(elapsed).To(BeNumerically(">=", 200*time.Millisecond))
		Expect(elapsed).To(BeNumerically("<", 500*time.Millisecond))
	})

	It("respects context cancellation while waiting", func() {
		l := ratelimit.New(1)
		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()

		Expect(l.Acquire(ctx)).To(Succeed())
		err := l.Acquire(ctx)
		Expect(err).To(HaveOccurred())
	})
})
