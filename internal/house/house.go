// Package house describes the static layout the planner works in: the outer
// bounds, wall and door segments, furniture boxes and the room polygons used to
// answer room-membership queries.
package house

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"

	"room-planner/internal/geometry"
)

// RoomID names a room, e.g. "kitchen"
type RoomID string

// WallKind tags a wall segment
type WallKind string

const (
	KindWall WallKind = "wall"
	KindDoor WallKind = "door"
)

// Wall is a wall or door segment
type Wall struct {
	geometry.Segment
	Kind WallKind `json:"kind"`
}

// Box is an axis-aligned furniture footprint anchored at its min corner
type Box struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// Edges returns the four boundary edges: left, right, bottom, top
func (b Box) Edges() [4]geometry.Segment {
	x1, y1 := b.X, b.Y
	x2, y2 := b.X+b.W, b.Y+b.H
	return [4]geometry.Segment{
		{V1: geometry.Point{x1, y1}, V2: geometry.Point{x1, y2}},
		{V1: geometry.Point{x2, y1}, V2: geometry.Point{x2, y2}},
		{V1: geometry.Point{x1, y1}, V2: geometry.Point{x2, y1}},
		{V1: geometry.Point{x1, y2}, V2: geometry.Point{x2, y2}},
	}
}

// Room is a named region of the house
type Room struct {
	ID      RoomID
	Polygon orb.Polygon
}

// House holds the static geometry consumed by the planner
type House struct {
	Bounds    orb.Bound
	Walls     []Wall
	Furniture []Box
	Rooms     []Room
}

// RoomOf returns the first room, in declaration order, whose polygon contains p.
// Points on a room boundary belong to that room.
func (h *House) RoomOf(p geometry.Point) (RoomID, bool) {
	for _, room := range h.Rooms {
		if !room.Polygon.Bound().Contains(p) {
			continue
		}
		if planar.PolygonContains(room.Polygon, p) {
			return room.ID, true
		}
	}
	return "", false
}

// Contains reports whether p lies within the house bounds
func (h *House) Contains(p geometry.Point) bool {
	return geometry.InBounds(p, h.Bounds)
}

// Doors returns the number of door segments
func (h *House) Doors() int {
	n := 0
	for _, w := range h.Walls {
		if w.Kind == KindDoor {
			n++
		}
	}
	return n
}
