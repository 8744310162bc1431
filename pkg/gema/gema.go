package gema

import (
	"errors"
	"fmt"

	"golang.org/x/exp/constraints"
)

var (
	ERR_VALUE = errors.New("Bad value")
)

type Number interface {
	constraints.Float | constraints.Integer
}

// Exponential moving average. Every new sample is blended
// into the running value with a fixed weight, the rest of
// the weight stays on the previous value.
type EMA[T Number] struct {
	weight  float64
	average float64
}

func NewEMA[T Number](weight float64) (*EMA[T], error) {
	if weight <= 0 || weight > 1 {
		return nil, fmt.Errorf("Invalid weight: %f. Error: %w", weight, ERR_VALUE)
	}
	return &EMA[T]{
		weight:  weight,
		average: 0,
	}, nil
}

func (e *EMA[T]) Recalc(new_value T) {
	e.average = (1-e.weight)*e.average + e.weight*float64(new_value)
}

func (e *EMA[T]) Show() float64 {
	return e.average
}
