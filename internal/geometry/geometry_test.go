package geometry

import (
	"math"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
)

func TestIntersectsCrossing(t *testing.T) {
	assert.True(t, Intersects(Point{0, 0}, Point{2, 2}, Point{0, 2}, Point{2, 0}))
	assert.True(t, Intersects(Point{0, -1}, Point{0, 1}, Point{-1, 0}, Point{1, 0}))
}

func TestIntersectsDisjoint(t *testing.T) {
	assert.False(t, Intersects(Point{0, 0}, Point{1, 0}, Point{2, -1}, Point{2, 1}))
	assert.False(t, Intersects(Point{0, 0}, Point{1, 1}, Point{0, 3}, Point{3, 2}))
}

func TestIntersectsEndpointTouching(t *testing.T) {
	// t == 1 and u == 0.5
	assert.True(t, Intersects(Point{0, 0}, Point{1, 0}, Point{1, -1}, Point{1, 1}))
	// shared endpoint
	assert.True(t, Intersects(Point{0, 0}, Point{1, 1}, Point{1, 1}, Point{2, 0}))
}

func TestIntersectsZeroDenominator(t *testing.T) {
	// parallel
	assert.False(t, Intersects(Point{0, 0}, Point{2, 0}, Point{0, 1}, Point{2, 1}))
	// collinear and overlapping: a known limitation, reported as no intersection
	assert.False(t, Intersects(Point{0, 0}, Point{2, 0}, Point{1, 0}, Point{3, 0}))
	// degenerate obstacle lying on the query segment
	assert.False(t, Intersects(Point{0, 0}, Point{2, 0}, Point{1, 0}, Point{1, 0}))
	// degenerate query segment
	assert.False(t, Intersects(Point{1, 1}, Point{1, 1}, Point{0, 0}, Point{2, 2}))
}

func TestSteer(t *testing.T) {
	from := Point{0, 0}

	near := Steer(from, Point{0.3, 0.4}, 1)
	assert.Equal(t, Point{0.3, 0.4}, near)

	far := Steer(from, Point{3, 4}, 1)
	assert.InDelta(t, 0.6, far[0], 1e-12)
	assert.InDelta(t, 0.8, far[1], 1e-12)
	assert.InDelta(t, 1.0, Distance(from, far), 1e-12)
}

func TestSteerHeading(t *testing.T) {
	p := SteerHeading(Point{1, 1}, math.Pi/2, 2)
	assert.InDelta(t, 1.0, p[0], 1e-12)
	assert.InDelta(t, 3.0, p[1], 1e-12)
}

func TestSegmentBound(t *testing.T) {
	s := Segment{V1: Point{3, -1}, V2: Point{1, 2}}
	assert.Equal(t, orb.Bound{Min: Point{1, -1}, Max: Point{3, 2}}, s.Bound())
	assert.False(t, s.Degenerate())
	assert.True(t, Segment{V1: Point{1, 1}, V2: Point{1, 1}}.Degenerate())
}

func TestInBounds(t *testing.T) {
	b := orb.Bound{Min: Point{-1, -1}, Max: Point{1, 1}}
	assert.True(t, InBounds(Point{0, 0}, b))
	assert.True(t, InBounds(Point{1, -1}, b))
	assert.False(t, InBounds(Point{1.01, 0}, b))
}
