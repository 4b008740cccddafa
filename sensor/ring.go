/*
 * Copyright 2026, Ember Systems Contributors
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in
 * all copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 */
package sensor

// ring is a single-producer/single-consumer circular buffer of signed
// samples. One slot is always kept empty to disambiguate full from empty,
// following the SPSC shape used for streamed samples across the corpus
// (compare a knot-buffer style push/pop/count circular queue).
type ring struct {
	buf        [ringCapacity]int32
	head, tail uint8
}

const ringCapacity = 16

// push appends a value. It returns false and leaves the ring untouched
// if the ring is full.
func (r *ring) push(v int32) bool {
	next := (r.head + 1) % ringCapacity
	if next == r.tail {
		return false
	}
	r.buf[r.head] = v
	r.head = next
	return true
}

// pop removes and returns the oldest value. ok is false if empty.
func (r *ring) pop() (v int32, ok bool) {
	if r.head == r.tail {
		return 0, false
	}
	v = r.buf[r.tail]
	r.tail = (r.tail + 1) % ringCapacity
	return v, true
}

// count returns the number of buffered values.
func (r *ring) count() int {
	if r.head >= r.tail {
		return int(r.head - r.tail)
	}
	return ringCapacity - int(r.tail) + int(r.head)
}

// clear resets both indices.
func (r *ring) clear() {
	r.head = 0
	r.tail = 0
}
