// Copyright 2020-2025 Buf Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package slicesx contains extensions to Go's package slices.
package slicesx

import (
	"fmt"
	"iter"
)

const (
	// minQueueCap is the capacity a zero Queue grows to on its first push.
	minQueueCap = 4

	// Below this capacity a Queue doubles on growth; above it, it grows by a
	// quarter.
	queueGrowthThreshold = 1024
)

// Queue is a ring buffer.
//
// Values are pushed onto the back and popped from the front. Indexing is
// always relative to the front of the queue, regardless of where the front
// physically sits in the backing array.
//
// A zero [Queue] is empty and ready to use.
type Queue[E any] struct {
	buf   []E
	start int // Physical index of the front element.
	len   int
	grown int
}

// NewQueue returns a [Queue] with exactly the given capacity.
func NewQueue[E any](capacity int) *Queue[E] {
	if capacity < 0 {
		panic(fmt.Sprintf("parsec/slicesx: negative queue capacity %d", capacity))
	}
	return &Queue[E]{buf: make([]E, capacity)}
}

// Len returns the number of elements currently in the buffer.
func (r *Queue[E]) Len() int {
	return r.len
}

// Cap returns the capacity of the buffer, i.e., the number of elements it can
// hold before being resized.
func (r *Queue[E]) Cap() int {
	return len(r.buf)
}

// Grown returns the number of times this queue has reallocated its buffer.
func (r *Queue[E]) Grown() int {
	return r.grown
}

// Reserve ensures that the capacity is large enough to push an additional n
// elements. At most one reallocation happens per call.
func (r *Queue[E]) Reserve(n int) {
	need := r.len + n
	if need <= len(r.buf) {
		return
	}

	newCap := len(r.buf)
	for newCap < need {
		newCap = nextQueueCap(newCap)
	}
	r.resize(newCap)
}

// Front returns a pointer to the element at the front of the queue.
func (r *Queue[E]) Front() *E {
	if r.len == 0 {
		return nil
	}
	return &r.buf[r.start]
}

// At returns the i-th oldest element still in the queue.
//
// Panics if i is out of range.
func (r *Queue[E]) At(i int) E {
	if i < 0 || i >= r.len {
		panic(fmt.Sprintf("parsec/slicesx: queue index %d out of range [0:%d]", i, r.len))
	}
	return r.buf[r.index(i)]
}

// PushBack pushes elements to the back of the queue.
func (r *Queue[E]) PushBack(v ...E) {
	r.Reserve(len(v))
	for _, x := range v {
		r.buf[r.index(r.len)] = x
		r.len++
	}
}

// PopFront pops the element at the front of the queue.
func (r *Queue[E]) PopFront() (E, bool) {
	var z E
	if r.len == 0 {
		return z, false
	}
	v := r.buf[r.start]
	r.buf[r.start] = z
	r.start = r.index(1)
	r.len--
	return v, true
}

// TruncateFront discards the n oldest elements.
//
// Panics if n is negative or greater than [Queue.Len].
func (r *Queue[E]) TruncateFront(n int) {
	if n < 0 || n > r.len {
		panic(fmt.Sprintf("parsec/slicesx: cannot truncate %d elements from queue of length %d", n, r.len))
	}
	if n == 0 {
		return
	}

	// Zero out the vacated slots so that the queue does not keep their
	// referents alive.
	if end := r.start + n; end <= len(r.buf) {
		clear(r.buf[r.start:end])
	} else {
		clear(r.buf[r.start:])
		clear(r.buf[:end-len(r.buf)])
	}
	r.start = r.index(n)
	r.len -= n
}

// Values returns an iterator over the elements of the queue, front first.
func (r *Queue[E]) Values() iter.Seq[E] {
	return func(yield func(E) bool) {
		head, tail := r.segments()
		for _, v := range head {
			if !yield(v) {
				return
			}
		}
		for _, v := range tail {
			if !yield(v) {
				return
			}
		}
	}
}

// Clear clears the queue. Its capacity is retained.
func (r *Queue[_]) Clear() {
	clear(r.buf)
	r.start, r.len = 0, 0
}

// index converts a logical index into a physical one.
func (r *Queue[E]) index(i int) int {
	if len(r.buf) == 0 {
		return 0
	}
	return (r.start + i) % len(r.buf)
}

// segments returns the in-use part of the buffer as two slices: the part from
// the front to the physical end of the buffer, and the part that wrapped
// around to its beginning.
func (r *Queue[E]) segments() (head, tail []E) {
	end := r.start + r.len
	if end <= len(r.buf) {
		return r.buf[r.start:end], nil
	}
	return r.buf[r.start:], r.buf[:end-len(r.buf)]
}

func (r *Queue[E]) resize(n int) {
	head, tail := r.segments()
	buf := make([]E, n)
	count := copy(buf, head)
	copy(buf[count:], tail)

	r.buf = buf
	r.start = 0
	r.grown++
}

func nextQueueCap(n int) int {
	switch {
	case n < minQueueCap:
		return minQueueCap
	case n < queueGrowthThreshold:
		return n * 2
	default:
		return n + n/4
	}
}
