package gset

import (
	"testing"
)

func TestAdd(t *testing.T) {
	s := new(Set[int])
	s.Add(7, 3, 9, 3, 7)
	if s.Size() != 3 {
		t.Fatalf("Expected size 3, got %d", s.Size())
	}
	if !s.Contains(9) || s.Contains(1) {
		t.Fatalf("Bad membership: %s", s)
	}
}

func TestMonotonicGrowth(t *testing.T) {
	s := new(Set[int])
	previous := 0
	for _, id := range []int{5, 5, 2, 8, 2, 5, 11} {
		s.Add(id)
		if s.Size() < previous {
			t.Fatalf("Set shrank: %d -> %d", previous, s.Size())
		}
		previous = s.Size()
	}
	if s.Size() != 4 {
		t.Fatalf("Expected 4 unique ids, got %d", s.Size())
	}
}

func TestOrdered(t *testing.T) {
	s := new(Set[int])
	s.Add(3, 1, 2)
	prev := 0
	for v := range s.All() {
		if v <= prev {
			t.Fatalf("Not sorted: %d after %d", v, prev)
		}
		prev = v
	}
}
