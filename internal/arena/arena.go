// Copyright 2020-2024 Buf Technologies, Inc.
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

// Package arena provides a bump allocator addressed by compressed
// (32-bit) pointers rather than native Go pointers.
//
// The AST in package ast is built almost entirely out of these: every
// expression, statement, pattern, and declaration lives in one arena
// per kind, and nodes refer to each other by [Pointer] instead of by
// native pointer. This keeps a parsed module as a handful of flat
// slices rather than a graph of heap objects, and means that copying
// or dropping a whole module is just a few slice operations rather
// than a GC sweep over thousands of individually-allocated nodes.
package arena

import (
	"fmt"
	"math/bits"
	"strings"
)

// firstBucketShift is the log2 of the capacity of the smallest bucket
// a [Arena] allocates.
const (
	firstBucketShift = 4
	firstBucketLen   = 1 << firstBucketShift
)

// Untyped is an arena pointer with its element type erased.
//
// The numeric value of a pointer is one plus the count of elements
// allocated into the arena before it; pointer 0 is reserved to mean
// nil, so a zeroed Untyped (or [Pointer]) is always a safe, empty
// default for an AST field that hasn't been filled in yet.
type Untyped uint32

// Nil returns the nil arena pointer.
func Nil() Untyped {
	return 0
}

// Nil reports whether p is the nil pointer.
func (p Untyped) Nil() bool {
	return p == 0
}

// Pointer is a compressed pointer into an [Arena] of T.
//
// A Pointer cannot be dereferenced on its own; call [Pointer.In] with
// the arena that produced it. The zero value is nil.
type Pointer[T any] Untyped

// Nil reports whether p is the nil pointer.
func (p Pointer[T]) Nil() bool {
	return Untyped(p).Nil()
}

// In resolves p to the element it addresses within arena.
//
// arena must be the same [Arena] that produced p; passing any other
// arena either returns an unrelated element or panics. Calling In on
// a nil pointer panics.
func (p Pointer[T]) In(arena *Arena[T]) *T {
	return arena.At(Untyped(p))
}

// Arena is a bump allocator for values of type T, addressed by
// [Pointer] rather than native pointers. Elements are never moved or
// freed individually, so a Pointer handed out by [Arena.New] stays
// valid for the lifetime of the arena.
//
// Internally, storage grows as a sequence of buckets that double in
// capacity, the same growth curve []T itself uses for append, but
// with old buckets kept rather than copied forward on each grow. That
// trades the 8-byte-per-element overhead of a []*T of boxed elements
// for a small, fixed number of bucket headers, while keeping lookup
// O(1) (two pointer loads: bucket, then element).
//
// The zero value of Arena is empty and ready to use.
type Arena[T any] struct {
	// Invariants, needed for At to run in O(1):
	//  1. cap(buckets[0]) == firstBucketLen.
	//  2. cap(buckets[n]) == 2*cap(buckets[n-1]).
	//  3. cap(buckets[n]) == len(buckets[n]) for every n but the last.
	buckets [][]T
}

// New allocates value into the arena, returning a pointer to it.
func (a *Arena[T]) New(value T) Pointer[T] {
	if a.buckets == nil {
		a.buckets = [][]T{make([]T, 0, firstBucketLen)}
	}

	last := &a.buckets[len(a.buckets)-1]
	if len(*last) == cap(*last) {
		a.buckets = append(a.buckets, make([]T, 0, 2*cap(*last)))
		last = &a.buckets[len(a.buckets)-1]
	}

	*last = append(*last, value)
	return Pointer[T](Untyped(a.len()))
}

// At resolves an untyped pointer, as if by [Pointer.In].
func (a *Arena[T]) At(ptr Untyped) *T {
	if ptr.Nil() {
		a = nil // Force an ordinary nil-pointer panic.
	}
	bucket, idx := a.locate(int(ptr) - 1)
	return &a.buckets[bucket][idx]
}

func (a *Arena[T]) len() int {
	if len(a.buckets) == 0 {
		return 0
	}
	// Every bucket but the last is always full.
	return a.cumulativeLen(len(a.buckets)-1) + len(a.buckets[len(a.buckets)-1])
}

// String implements [fmt.Stringer], printing each bucket's elements
// space-separated and buckets themselves pipe-separated, so the
// growth boundaries are visible when debugging an arena by hand.
func (a Arena[T]) String() string {
	var b strings.Builder
	b.WriteRune('[')
	for i, bucket := range a.buckets {
		if i != 0 {
			b.WriteRune('|')
		}
		for j, v := range bucket {
			if j != 0 {
				b.WriteRune(' ')
			}
			fmt.Fprint(&b, v)
		}
	}
	b.WriteRune(']')
	return b.String()
}

// bucketLen returns the capacity of the nth bucket, whether or not it
// has been allocated yet.
func (*Arena[T]) bucketLen(n int) int {
	return firstBucketLen << n
}

// cumulativeLen returns the total capacity of the first n buckets.
func (a *Arena[T]) cumulativeLen(n int) int {
	// 2^m + 2^(m+1) + ... + 2^n = 2^(n+1) - 2^m, so the sum of
	// bucketLen(i) for i in [0, n) is bucketLen(n) - bucketLen(0).
	return max(0, a.bucketLen(n)-a.bucketLen(0))
}

// locate turns a dense element index into a (bucket, offset) pair,
// panicking if idx is out of range.
func (a *Arena[T]) locate(idx int) (int, int) {
	if idx >= a.len() || idx < 0 {
		panic(fmt.Sprintf("arena: pointer out of range: %#x", idx))
	}

	// With firstBucketShift == n, bucket boundaries fall at cumulative
	// indices 0b0<<n, 0b1<<n, 0b11<<n, 0b111<<n, ... Adding firstBucketLen
	// (0b1<<n) to idx shifts these to 0b1<<n, 0b10<<n, 0b100<<n, ..., whose
	// one-indexed high bit is 1+n, 2+n, 3+n, ...; subtracting n+1 recovers
	// the bucket index directly.
	bucket := bits.UintSize - bits.LeadingZeros(uint(idx)+firstBucketLen)
	bucket -= firstBucketShift + 1

	idx -= a.cumulativeLen(bucket)
	return bucket, idx
}
