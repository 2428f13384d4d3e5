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

package reader

import (
	"strings"

	libenc "github.com/sabouaram/bannergrab/encoding"
	enchex "github.com/sabouaram/bannergrab/encoding/hexa"
)

// hexDump renders bytes as lowercase space-separated hex pairs, e.g. "48 65".
// It reuses the project's hexa.Coder rather than hand-rolling a nibble table.
func hexDump(b []byte) string {
	if len(b) == 0 {
		return ""
	}

	var coder libenc.Coder = enchex.New()

	pairs := make([]string, len(b))
	for i, c := range b {
		pairs[i] = string(coder.Encode([]byte{c}))
	}

	return strings.Join(pairs, " ")
}
