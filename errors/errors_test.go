/*
 * MIT License
 *
 * Copyright (c) 2020 Nicolas JUHEL
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

package errors_test

import (
	"errors"
	"strings"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	liberr "github.com/sabouaram/bannergrab/errors"
)

func TestErrors(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "errors suite")
}

const (
	testCodeA liberr.CodeError = iota + liberr.MinAvailable
	testCodeB
)

func testMessage(code liberr.CodeError) string {
	switch code {
	case testCodeA:
		return "test code a"
	case testCodeB:
		return "test code b"
	default:
		return liberr.NullMessage
	}
}

func init() {
	if liberr.ExistInMapMessage(testCodeA) {
		panic(errors.New("error code collision with package bannergrab/errors_test"))
	}
	liberr.RegisterIdFctMessage(testCodeA, testMessage)
}

var _ = Describe("CodeError registration", func() {
	It("resolves a registered code to its message", func() {
		Expect(testCodeA.Message()).To(Equal("test code a"))
		Expect(testCodeB.Message()).To(Equal("test code b"))
	})

	It("falls back to UnknownMessage for an unregistered code", func() {
		Expect(liberr.CodeError(65000).Message()).To(Equal(liberr.UnknownMessage))
	})

	It("reports ExistInMapMessage true only for a registered, non-null message", func() {
		Expect(liberr.ExistInMapMessage(testCodeA)).To(BeTrue())
		Expect(liberr.ExistInMapMessage(liberr.CodeError(65000))).To(BeFalse())
	})
})

var _ = Describe("New and CodeError.Error", func() {
	It("carries the code and message into the returned Error", func() {
		err := testCodeA.Error(nil)
		Expect(err.Code()).To(Equal(testCodeA.Uint16()))
		Expect(err.StringError()).To(Equal("test code a"))
	})

	It("chains a parent error", func() {
		parent := liberr.New(testCodeB.Uint16(), testCodeB.Message())
		err := testCodeA.Error(parent)

		Expect(err.HasParent()).To(BeTrue())
		Expect(err.HasCode(testCodeB)).To(BeTrue())
	})

	It("wraps a plain Go error with code 0 via Make", func() {
		plain := errors.New("plain failure")
		err := liberr.Make(plain)

		Expect(err).ToNot(BeNil())
		Expect(err.Code()).To(Equal(uint16(0)))
		Expect(err.StringError()).To(Equal("plain failure"))
	})
})

var _ = Describe("Error() string formatting", func() {
	It("defaults to the string message (mode.Default dispatch)", func() {
		err := testCodeA.Error(nil)
		Expect(err.Error()).To(Equal("test code a"))
	})
})

var _ = Describe("NewErrorRecovered", func() {
	It("captures a recovered panic value as the error message", func() {
		err := liberr.NewErrorRecovered("processor panicked: boom", "")
		// the message is followed by one line per captured caller frame
		Expect(strings.SplitN(err.StringError(), "\n", 2)[0]).To(Equal("processor panicked: boom"))
	})
})

var _ = Describe("Is/Get/Has helpers", func() {
	It("Is reports true for a liberr.Error and false for a plain error", func() {
		Expect(liberr.Is(testCodeA.Error(nil))).To(BeTrue())
		Expect(liberr.Is(errors.New("plain"))).To(BeFalse())
	})

	It("Has reports whether an error carries the given code", func() {
		err := testCodeA.Error(nil)
		Expect(liberr.Has(err, testCodeA)).To(BeTrue())
		Expect(liberr.Has(err, testCodeB)).To(BeFalse())
	})
})
