package planner

import (
	"errors"
	"fmt"
)

// Planner errors
var (
	ErrOutOfBounds    = errors.New("position outside of house bounds")
	ErrNoPathFound    = errors.New("no path found")
	ErrInvalidRequest = errors.New("invalid planning request")
)

// OutOfBoundsError reports a start or goal coordinate outside the house
type OutOfBoundsError struct {
	Point string // "start" or "goal"
	Axis  string // "x" or "y"
	Value float64
	Min   float64
	Max   float64
}

func (e *OutOfBoundsError) Error() string {
	return fmt.Sprintf("%s %s-position outside of expected range, got: %v <= %v <= %v",
		e.Point, e.Axis, e.Min, e.Value, e.Max)
}

// Is makes errors.Is(err, ErrOutOfBounds) match
func (e *OutOfBoundsError) Is(target error) bool {
	return target == ErrOutOfBounds
}

// NoPathFoundError reports the parameters of a search that found nothing
type NoPathFoundError struct {
	StepSize float64
	MaxIter  int
}

func (e *NoPathFoundError) Error() string {
	return fmt.Sprintf("no path found with RRT* using step size %v and max iterations %d; retry with adjusted parameters",
		e.StepSize, e.MaxIter)
}

// Is makes errors.Is(err, ErrNoPathFound) match
func (e *NoPathFoundError) Is(target error) bool {
	return target == ErrNoPathFound
}
