/*
 * MIT License
 *
 * Copyright (c) 2022 Nicolas JUHEL
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

package duration_test

import (
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sabouaram/bannergrab/duration"
)

func TestDuration(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "duration suite")
}

var _ = Describe("Parse", func() {
	It("parses a plain millisecond-style duration, as a --config file would", func() {
		d, err := duration.Parse("1500ms")

		Expect(err).ToNot(HaveOccurred())
		Expect(d.Time()).To(Equal(1500 * time.Millisecond))
	})

	It("tolerates quotes a YAML/TOML/JSON loader left around the value", func() {
		d, err := duration.Parse(`"2s"`)

		Expect(err).ToNot(HaveOccurred())
		Expect(d.Time()).To(Equal(2 * time.Second))
	})

	It("rejects a string time.ParseDuration cannot parse", func() {
		_, err := duration.Parse("not-a-duration")
		Expect(err).To(HaveOccurred())
	})
})

var _ = Describe("Duration.Time and String", func() {
	It("round-trips through time.Duration", func() {
		d, err := duration.Parse("4s")
		Expect(err).ToNot(HaveOccurred())
		Expect(d.Time()).To(Equal(4 * time.Second))
		Expect(d.String()).To(Equal((4 * time.Second).String()))
	})
})
