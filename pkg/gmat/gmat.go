package gmat

import (
	"fmt"
	"strings"
	"text/tabwriter"
)

// Dense row-major matrix. Zero-filled on creation so it can
// be handed to the hungarian solver padded to square shape.
type Mat[T any] struct {
	s      []T
	rows   int
	stride int
}

func NewMat[T any](rows, cols int) *Mat[T] {
	return &Mat[T]{
		s:      make([]T, rows*cols),
		rows:   rows,
		stride: cols,
	}
}

func (m *Mat[T]) Rows() int {
	return m.rows
}

func (m *Mat[T]) Cols() int {
	return m.stride
}

func (m *Mat[T]) At(r, c int) T {
	return m.s[r*m.stride+c]
}

func (m *Mat[T]) Set(r, c int, value T) {
	m.s[r*m.stride+c] = value
}

// To2d copies the matrix into the nested-slice shape the
// go-hungarian solver consumes.
func (m *Mat[T]) To2d() [][]T {
	out := make([][]T, m.rows)
	for r := range m.rows {
		out[r] = make([]T, m.stride)
		copy(out[r], m.s[r*m.stride:(r+1)*m.stride])
	}
	return out
}

func (m *Mat[T]) String() string {
	b := new(strings.Builder)
	w := tabwriter.NewWriter(b, 4, 4, 1, ' ', 0)
	for r := range m.rows {
		for c := range m.stride {
			fmt.Fprintf(w, "%v\t", m.At(r, c))
		}
		fmt.Fprintln(w)
	}
	w.Flush()
	return b.String()
}
