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

package atomic_test

import (
	"sync"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	libatm "github.com/sabouaram/bannergrab/atomic"
)

func TestAtomic(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "atomic suite")
}

var _ = Describe("MapTyped", func() {
	It("returns ok=false for a key that was never stored", func() {
		m := libatm.NewMapTyped[string, int]()

		_, ok := m.Load("missing")
		Expect(ok).To(BeFalse())
	})

	It("round-trips a stored value", func() {
		m := libatm.NewMapTyped[string, int]()

		m.Store("port", 443)
		v, ok := m.Load("port")

		Expect(ok).To(BeTrue())
		Expect(v).To(Equal(443))
	})

	It("forgets a value after Delete", func() {
		m := libatm.NewMapTyped[string, int]()

		m.Store("port", 443)
		m.Delete("port")
		_, ok := m.Load("port")

		Expect(ok).To(BeFalse())
	})

	It("overwrites an existing value on Store", func() {
		m := libatm.NewMapTyped[string, int]()

		m.Store("port", 443)
		m.Store("port", 8443)
		v, _ := m.Load("port")

		Expect(v).To(Equal(8443))
	})

	It("is safe for concurrent use, as console's color registry requires", func() {
		m := libatm.NewMapTyped[int, int]()

		var wg sync.WaitGroup
		for i := 0; i < 100; i++ {
			wg.Add(1)
			go func(n int) {
				defer wg.Done()
				m.Store(n, n*2)
			}(i)
		}
		wg.Wait()

		for i := 0; i < 100; i++ {
			v, ok := m.Load(i)
			Expect(ok).To(BeTrue())
			Expect(v).To(Equal(i * 2))
		}
	})
})

var _ = Describe("Cast", func() {
	It("succeeds when the dynamic type matches", func() {
		v, ok := libatm.Cast[int](42)
		Expect(ok).To(BeTrue())
		Expect(v).To(Equal(42))
	})

	It("fails when the dynamic type does not match", func() {
		_, ok := libatm.Cast[int]("not an int")
		Expect(ok).To(BeFalse())
	})
})
