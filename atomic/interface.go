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

// Package atomic provides a small, lock-free, generic concurrent map used to
// back console's color registry. The project only needs a typed sync.Map, so
// the wider Value[T]/untyped-Map surface the teacher library exposes has been
// trimmed down to that one shape.
package atomic

// MapTyped is a concurrent, type-safe map keyed by K, storing values of type V.
// It is backed by a sync.Map and safe for concurrent use by multiple goroutines.
type MapTyped[K comparable, V any] interface {
	// Load returns the value stored for key, or the zero value of V and
	// ok=false if no value is present.
	Load(key K) (value V, ok bool)
	// Store sets the value for key, overwriting any existing value.
	Store(key K, value V)
	// Delete removes the value stored for key, if any.
	Delete(key K)
}

// NewMapTyped returns an empty, ready-to-use MapTyped.
func NewMapTyped[K comparable, V any]() MapTyped[K, V] {
	return &mt[K, V]{
		m: newMapAny[K](),
	}
}
