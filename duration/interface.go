/***********************************************************************************************************************
 *
 *   MIT License
 *
 *   Copyright (c) 2022 Nicolas JUHEL
 *
 *   Permission is hereby granted, free of charge, to any person obtaining a copy
 *   of this software and associated documentation files (the "Software"), to deal
 *   in the Software without restriction, including without limitation the rights
 *   to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 *   copies of the Software, and to permit persons to whom the Software is
 *   furnished to do so, subject to the following conditions:
 *
 *   The above copyright notice and this permission notice shall be included in all
 *   copies or substantial portions of the Software.
 *
 *   THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 *   IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 *   FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 *   AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 *   LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 *   OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 *   SOFTWARE.
 *
 *
 **********************************************************************************************************************/

// Package duration gives config.Load a human-friendly duration string for
// the --config file form of the timeout flags (e.g. "1500ms", "2s"), on top
// of plain millisecond integers from the flag/env form. The teacher
// library's broader marshal-format surface (JSON/YAML/TOML/CBOR codecs),
// day-granularity arithmetic, and sub-second truncation helpers have been
// trimmed: nothing in this project reads or writes a duration through those
// paths.
//
// Example usage:
//
//	import "github.com/sabouaram/bannergrab/duration"
//
//	d, _ := duration.Parse("1500ms")
//	timeout := d.Time()
package duration

import "time"

type Duration time.Duration

// Parse parses s with time.ParseDuration, tolerating surrounding quotes a
// config file's YAML/TOML/JSON loader might leave in place.
func Parse(s string) (Duration, error) {
	return parseString(s)
}
