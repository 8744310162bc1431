package gset

import (
	"cmp"
	"fmt"
	"iter"
	"strings"
)

type SetNode[T cmp.Ordered] struct {
	value T
	next  *SetNode[T]
}

// Ordered set backed by a sorted linked list. The zero
// value is an empty set ready for use.
type Set[T cmp.Ordered] struct {
	head *SetNode[T]
	size int
}

func (s *Set[T]) Add(values ...T) {
	for _, value := range values {
		s.add(value)
	}
}

func (s *Set[T]) add(value T) {
	if s.head == nil {
		s.head = &SetNode[T]{value: value, next: nil}
		s.size++
		return
	}

	previous, current := (*SetNode[T])(nil), s.head
	for current != nil {
		if current.value == value {
			return
		} else if current.value > value {
			break
		}
		previous, current = current, current.next
	}

	new_node := &SetNode[T]{value: value, next: current}
	if previous == nil {
		s.head = new_node
	} else {
		previous.next = new_node
	}
	s.size++
}

func (s *Set[T]) Size() int {
	return s.size
}

func (s *Set[T]) Contains(value T) bool {
	for current := s.head; current != nil; current = current.next {
		if current.value == value {
			return true
		}
	}
	return false
}

func (s *Set[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for n := s.head; n != nil; n = n.next {
			if !yield(n.value) {
				return
			}
		}
	}
}

func (s *Set[T]) String() string {
	b := new(strings.Builder)
	b.WriteString("[ ")
	for e := range s.All() {
		b.WriteString(fmt.Sprintf("%v ", e))
	}
	b.WriteString("]")
	return b.String()
}
