package geometry

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// Point is a position in the house plane
type Point = orb.Point

// Segment represents an immutable line segment between two points
type Segment struct {
	V1, V2 Point
}

// Bound returns the axis-aligned bounding box of the segment
func (s Segment) Bound() orb.Bound {
	return orb.Bound{Min: s.V1, Max: s.V1}.Extend(s.V2)
}

// Degenerate reports whether both endpoints coincide
func (s Segment) Degenerate() bool {
	return s.V1 == s.V2
}

// Distance calculates Euclidean distance between two points
func Distance(a, b Point) float64 {
	return planar.Distance(a, b)
}

// Intersects checks if the segment p1-p2 crosses the segment v1-v2.
// Parallel and collinear pairs have a zero denominator and never intersect,
// even when they overlap. Touching at an endpoint counts as an intersection.
func Intersects(p1, p2, v1, v2 Point) bool {
	x1, y1 := p1[0], p1[1]
	x2, y2 := p2[0], p2[1]
	x3, y3 := v1[0], v1[1]
	x4, y4 := v2[0], v2[1]

	denominator := (x1-x2)*(y3-y4) - (y1-y2)*(x3-x4)
	if denominator == 0 {
		return false
	}

	t := ((x1-x3)*(y3-y4) - (y1-y3)*(x3-x4)) / denominator
	u := -((x1-x2)*(y1-y3) - (y1-y2)*(x1-x3)) / denominator

	return t >= 0 && t <= 1 && u >= 0 && u <= 1
}

// Steer moves from towards to, stopping at most step away from from.
// When to already lies within step it is returned unchanged.
func Steer(from, to Point, step float64) Point {
	d := Distance(from, to)
	if d <= step {
		return to
	}
	return Point{
		from[0] + step*(to[0]-from[0])/d,
		from[1] + step*(to[1]-from[1])/d,
	}
}

// SteerHeading returns the point step away from from along heading theta (radians)
func SteerHeading(from Point, theta, step float64) Point {
	return Point{
		from[0] + step*math.Cos(theta),
		from[1] + step*math.Sin(theta),
	}
}

// InBounds reports whether p lies inside b, boundary included
func InBounds(p Point, b orb.Bound) bool {
	return b.Contains(p)
}
