package obstacle

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"room-planner/internal/geometry"
	"room-planner/internal/house"
)

func TestEmptySetNeverCollides(t *testing.T) {
	s := New(nil)
	assert.Equal(t, 0, s.Len())
	assert.False(t, s.CheckCollision(geometry.Point{0, 0}, geometry.Point{5, 0}))
}

func TestCheckCollision(t *testing.T) {
	s := New([]geometry.Segment{
		{V1: geometry.Point{2, -1}, V2: geometry.Point{2, 1}},
	})

	assert.True(t, s.CheckCollision(geometry.Point{0, 0}, geometry.Point{5, 0}))
	assert.False(t, s.CheckCollision(geometry.Point{0, 0}, geometry.Point{1.5, 0}))
	assert.False(t, s.CheckCollision(geometry.Point{0, 2}, geometry.Point{5, 2}))
	// touching the end of the obstacle counts
	assert.True(t, s.CheckCollision(geometry.Point{0, 1}, geometry.Point{4, 1}))
	// running along the obstacle does not
	assert.False(t, s.CheckCollision(geometry.Point{2, -3}, geometry.Point{2, 3}))
}

func TestDegenerateSegmentNeverCollides(t *testing.T) {
	s := New([]geometry.Segment{
		{V1: geometry.Point{1, 0}, V2: geometry.Point{1, 0}},
	})
	assert.Equal(t, 1, s.Len())
	assert.False(t, s.CheckCollision(geometry.Point{0, 0}, geometry.Point{2, 0}))
	assert.False(t, s.CheckCollision(geometry.Point{1, -1}, geometry.Point{1, 1}))
}

func TestFromHouseSkipsDoors(t *testing.T) {
	walls := []house.Wall{
		{Segment: geometry.Segment{V1: geometry.Point{0, 0}, V2: geometry.Point{0, 2}}, Kind: house.KindWall},
		{Segment: geometry.Segment{V1: geometry.Point{0, 2}, V2: geometry.Point{0, 3}}, Kind: house.KindDoor},
	}
	boxes := []house.Box{{X: 2, Y: 2, W: 1, H: 1}}

	s := FromHouse(walls, boxes)
	require.Equal(t, 5, s.Len())
	assert.Equal(t, walls[0].Segment, s.Segments()[0])

	// through the door
	assert.False(t, s.CheckCollision(geometry.Point{-1, 2.5}, geometry.Point{1, 2.5}))
	// through the wall
	assert.True(t, s.CheckCollision(geometry.Point{-1, 1}, geometry.Point{1, 1}))
	// into the furniture box
	assert.True(t, s.CheckCollision(geometry.Point{1, 2.5}, geometry.Point{2.5, 2.5}))
	// past the furniture box
	assert.False(t, s.CheckCollision(geometry.Point{1, 3.5}, geometry.Point{4, 3.5}))
}

func linearScan(segments []geometry.Segment, p1, p2 geometry.Point) bool {
	for _, seg := range segments {
		if geometry.Intersects(p1, p2, seg.V1, seg.V2) {
			return true
		}
	}
	return false
}

func TestIndexMatchesLinearScan(t *testing.T) {
	for _, offset := range []float64{0, 1e5, 1e8} {
		rng := rand.New(rand.NewSource(7))
		randomPoint := func() geometry.Point {
			return geometry.Point{offset + rng.Float64()*20 - 10, offset + rng.Float64()*20 - 10}
		}

		segments := make([]geometry.Segment, 0, 200)
		for i := 0; i < 200; i++ {
			p := randomPoint()
			q := geometry.Point{p[0] + rng.Float64()*2 - 1, p[1] + rng.Float64()*2 - 1}
			segments = append(segments, geometry.Segment{V1: p, V2: q})
		}
		// axis-aligned and degenerate segments exercise the padded boxes
		segments = append(segments,
			geometry.Segment{V1: geometry.Point{offset - 3, offset}, V2: geometry.Point{offset + 3, offset}},
			geometry.Segment{V1: geometry.Point{offset, offset - 3}, V2: geometry.Point{offset, offset + 3}},
			geometry.Segment{V1: geometry.Point{offset + 4, offset + 4}, V2: geometry.Point{offset + 4, offset + 4}},
		)
		s := New(segments)

		for i := 0; i < 2000; i++ {
			p1, p2 := randomPoint(), randomPoint()
			assert.Equal(t, linearScan(segments, p1, p2), s.CheckCollision(p1, p2), "offset %v query %v -> %v", offset, p1, p2)
		}
	}
}

func TestIndexKeepsTouchingSegmentsAtLargeCoordinates(t *testing.T) {
	for _, b := range []float64{0, 1e3, 1e5, 5e6, 1e8, 1e12} {
		segments := []geometry.Segment{
			{V1: geometry.Point{b, b}, V2: geometry.Point{b + 1, b + 1}},
		}
		s := New(segments)

		p1, p2 := geometry.Point{b + 1, b + 1}, geometry.Point{b + 2, b}
		expected := linearScan(segments, p1, p2)
		assert.Equal(t, expected, s.CheckCollision(p1, p2), "offset %v", b)
	}
}
