// Package route splits a planned path into contiguous runs that stay in one room.
package route

import (
	"room-planner/internal/geometry"
	"room-planner/internal/house"
)

// Route is a run of consecutive path points tagged with the room it passes through
type Route struct {
	Room   house.RoomID     `json:"room"`
	Points []geometry.Point `json:"path"`
}

// RoomLookup resolves the room containing a point; ok is false outside every room
type RoomLookup func(p geometry.Point) (room house.RoomID, ok bool)

// Segment partitions path into per-room routes.
//
// Points without a room are absorbed into the current run. The first room seen
// seeds the current room; every later change of room closes the current run,
// tagged with the room it was accumulating, and opens a new run at the point
// where the change happened. The last run is always emitted. Concatenating the
// routes yields path again.
func Segment(path []geometry.Point, roomOf RoomLookup) []Route {
	if len(path) == 0 {
		return nil
	}

	var (
		routes   []Route
		current  house.RoomID
		seeded   bool
		runStart int
	)

	for i, point := range path {
		room, ok := roomOf(point)
		if !ok {
			continue
		}
		if !seeded {
			current = room
			seeded = true
			continue
		}
		if room == current {
			continue
		}
		routes = append(routes, Route{Room: current, Points: path[runStart:i:i]})
		runStart = i
		current = room
	}

	return append(routes, Route{Room: current, Points: path[runStart:]})
}

// Rooms returns the sequence of rooms visited, one entry per route
func Rooms(routes []Route) []house.RoomID {
	rooms := make([]house.RoomID, 0, len(routes))
	for _, r := range routes {
		rooms = append(rooms, r.Room)
	}
	return rooms
}

// Flatten concatenates the points of all routes in order
func Flatten(routes []Route) []geometry.Point {
	var points []geometry.Point
	for _, r := range routes {
		points = append(points, r.Points...)
	}
	return points
}
