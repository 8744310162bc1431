package gring

import (
	"iter"
)

// Ring buffer with a capacity fixed at construction.
// Once full, every Push evicts the oldest element.
type Ring[T any] struct {
	l   int
	s   []T
	pos int
}

func NewRing[T any](capacity int) *Ring[T] {
	return &Ring[T]{
		l:   0,
		s:   make([]T, capacity),
		pos: 0,
	}
}

func (r *Ring[T]) Len() int {
	return r.l
}

func (r *Ring[T]) Cap() int {
	return len(r.s)
}

func (r *Ring[T]) Push(e T) {
	r.s[r.pos] = e
	r.pos++
	if r.pos >= len(r.s) {
		r.pos = 0
	}
	if r.l < len(r.s) {
		r.l++
	}
}

func (r *Ring[T]) Newest() T {
	real_pos := r.pos - 1
	if real_pos < 0 {
		real_pos = r.l - 1
	}
	return r.s[real_pos]
}

// All iterates newest to oldest
func (r *Ring[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for i := range r.l {
			real_pos := r.pos - 1 - i
			if real_pos < 0 {
				real_pos = r.l + real_pos
			}
			if !yield(r.s[real_pos]) {
				return
			}
		}
	}
}

// Chronological iterates oldest to newest
func (r *Ring[T]) Chronological() iter.Seq[T] {
	return func(yield func(T) bool) {
		for i := range r.l {
			real_pos := r.pos - r.l + i
			if real_pos < 0 {
				real_pos = len(r.s) + real_pos
			}
			if !yield(r.s[real_pos]) {
				return
			}
		}
	}
}

// Slice copies the contents oldest to newest
func (r *Ring[T]) Slice() []T {
	out := make([]T, 0, r.l)
	for e := range r.Chronological() {
		out = append(out, e)
	}
	return out
}
