package rrtstar

import (
	"math"

	"room-planner/internal/geometry"
)

// NoParent marks the root vertex
const NoParent = -1

// Vertex is a sampled configuration recorded in the tree
type Vertex struct {
	ID     int     `json:"id"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Parent int     `json:"parent"` // NoParent for the root
	Cost   float64 `json:"cost"`   // cost-to-come along the parent chain
}

// Position returns the vertex coordinates as a point
func (v Vertex) Position() geometry.Point {
	return geometry.Point{v.X, v.Y}
}

// IsRoot reports whether the vertex has no parent
func (v Vertex) IsRoot() bool {
	return v.Parent == NoParent
}

// Tree is an arena of vertices addressed by stable index.
// Index 0 is the root; vertices are never removed.
type Tree struct {
	vertices []Vertex
}

// maxPreallocated bounds the up-front arena allocation; larger trees grow by append
const maxPreallocated = 1024

func newTree(root geometry.Point, capacity int) *Tree {
	t := &Tree{vertices: make([]Vertex, 0, min(max(capacity, 1), maxPreallocated))}
	t.vertices = append(t.vertices, Vertex{
		ID:     0,
		X:      root[0],
		Y:      root[1],
		Parent: NoParent,
		Cost:   0,
	})
	return t
}

// Len returns the number of vertices
func (t *Tree) Len() int {
	return len(t.vertices)
}

// Vertex returns the vertex stored at index i
func (t *Tree) Vertex(i int) Vertex {
	return t.vertices[i]
}

// Vertices returns a copy of all vertices in insertion order
func (t *Tree) Vertices() []Vertex {
	out := make([]Vertex, len(t.vertices))
	copy(out, t.vertices)
	return out
}

// Edges returns every parent link as a segment from parent to child
func (t *Tree) Edges() []geometry.Segment {
	edges := make([]geometry.Segment, 0, len(t.vertices))
	for _, v := range t.vertices {
		if v.IsRoot() {
			continue
		}
		edges = append(edges, geometry.Segment{
			V1: t.vertices[v.Parent].Position(),
			V2: v.Position(),
		})
	}
	return edges
}

// Depth counts the parent links between vertex i and the root.
// ok is false when the chain ends without reaching index 0 or loops.
func (t *Tree) Depth(i int) (depth int, ok bool) {
	cur := i
	for cur != 0 {
		if depth >= len(t.vertices) {
			return depth, false
		}
		parent := t.vertices[cur].Parent
		if parent == NoParent {
			return depth, false
		}
		cur = parent
		depth++
	}
	return depth, true
}

func (t *Tree) clone() *Tree {
	return &Tree{vertices: t.Vertices()}
}

func (t *Tree) add(p geometry.Point, parent int, cost float64) int {
	id := len(t.vertices)
	t.vertices = append(t.vertices, Vertex{
		ID:     id,
		X:      p[0],
		Y:      p[1],
		Parent: parent,
		Cost:   cost,
	})
	return id
}

// nearest finds the closest vertex; the first one reaching the minimum wins
func (t *Tree) nearest(p geometry.Point) int {
	nearestID := -1
	minDist := math.Inf(1)

	for i := range t.vertices {
		dist := geometry.Distance(p, t.vertices[i].Position())
		if dist < minDist {
			minDist = dist
			nearestID = i
		}
	}

	return nearestID
}

// near returns the indices of vertices strictly closer than radius, in insertion order
func (t *Tree) near(p geometry.Point, radius float64) []int {
	var indices []int
	for i := range t.vertices {
		if geometry.Distance(p, t.vertices[i].Position()) < radius {
			indices = append(indices, i)
		}
	}
	return indices
}

func (t *Tree) reparent(i, parent int, cost float64) {
	t.vertices[i].Parent = parent
	t.vertices[i].Cost = cost
}

// propagate shifts the cost of every descendant of vertex i by delta
func (t *Tree) propagate(i int, delta float64) {
	children := make(map[int][]int)
	for _, v := range t.vertices {
		if !v.IsRoot() {
			children[v.Parent] = append(children[v.Parent], v.ID)
		}
	}

	queue := append([]int(nil), children[i]...)
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		t.vertices[cur].Cost += delta
		queue = append(queue, children[cur]...)
	}
}
