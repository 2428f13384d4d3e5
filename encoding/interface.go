/*
 * MIT License
 *
 * Copyright (c) 2023 Nicolas JUHEL
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

// Package encoding provides a unified Coder interface for encoding operations.
//
// This package defines the Coder interface which is implemented by the encoding
// sub-packages. It has no decode method.
//
// Sub-packages:
//   - hexa: Hexadecimal encoding, used by reader to render captured
//     banners as a hex dump when they contain non-printable bytes.
//
// The teacher library's streaming (io.Reader/io.Writer) Coder methods have been
// trimmed: the banner-grabber only ever hex-dumps an already-captured []byte.
//
// Example usage:
//
//	import enchex "github.com/sabouaram/bannergrab/encoding/hexa"
//
//	hexCoder := enchex.New()
//	encoded := hexCoder.Encode([]byte("Hello"))
package encoding

// Coder is the unified interface for encoding operations, implemented by the
// encoding sub-packages (currently just hexa).
type Coder interface {
	// Encode encodes the given byte slice.
	Encode(p []byte) []byte
}
