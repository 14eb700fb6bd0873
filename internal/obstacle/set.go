// Package obstacle flattens house geometry into line segments and answers
// segment collision queries against them.
package obstacle

import (
	"room-planner/internal/geometry"
	"room-planner/internal/house"
)

// Set is an immutable collection of obstacle segments.
// It is safe for concurrent use once built.
type Set struct {
	segments []geometry.Segment
	index    *spatialIndex
}

// New creates a set from the given segments
func New(segments []geometry.Segment) *Set {
	owned := make([]geometry.Segment, len(segments))
	copy(owned, segments)

	return &Set{
		segments: owned,
		index:    newSpatialIndex(owned),
	}
}

// FromHouse flattens walls (doors excluded) and the four edges of every furniture box
func FromHouse(walls []house.Wall, boxes []house.Box) *Set {
	segments := make([]geometry.Segment, 0, len(walls)+4*len(boxes))
	for _, wall := range walls {
		if wall.Kind == house.KindDoor {
			continue
		}
		segments = append(segments, wall.Segment)
	}
	for _, box := range boxes {
		edges := box.Edges()
		segments = append(segments, edges[:]...)
	}
	return New(segments)
}

// CheckCollision reports whether the segment p1-p2 intersects any obstacle
func (s *Set) CheckCollision(p1, p2 geometry.Point) bool {
	candidates, ok := s.index.query(p1, p2)
	if !ok {
		for _, seg := range s.segments {
			if geometry.Intersects(p1, p2, seg.V1, seg.V2) {
				return true
			}
		}
		return false
	}

	for _, i := range candidates {
		seg := s.segments[i]
		if geometry.Intersects(p1, p2, seg.V1, seg.V2) {
			return true
		}
	}
	return false
}

// Len returns the number of stored segments
func (s *Set) Len() int {
	return len(s.segments)
}

// Segments returns a copy of the stored segments in insertion order
func (s *Set) Segments() []geometry.Segment {
	out := make([]geometry.Segment, len(s.segments))
	copy(out, s.segments)
	return out
}
