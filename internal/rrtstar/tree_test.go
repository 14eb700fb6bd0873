package rrtstar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"room-planner/internal/geometry"
)

func TestNewTreeHasRootOnly(t *testing.T) {
	tree := newTree(geometry.Point{1, 2}, 8)
	require.Equal(t, 1, tree.Len())

	root := tree.Vertex(0)
	assert.Equal(t, Vertex{ID: 0, X: 1, Y: 2, Parent: NoParent, Cost: 0}, root)
	assert.True(t, root.IsRoot())
	assert.Empty(t, tree.Edges())
}

func TestNearestFirstMinimumWins(t *testing.T) {
	tree := newTree(geometry.Point{0, 0}, 4)
	tree.add(geometry.Point{2, 2}, 0, 3)
	tree.add(geometry.Point{2, -2}, 0, 3)

	// equidistant from the root and index 1
	assert.Equal(t, 0, tree.nearest(geometry.Point{0, 2}))
	// exact tie between index 1 and 2 keeps the lower index
	assert.Equal(t, 1, tree.nearest(geometry.Point{4, 0}))
	assert.Equal(t, 2, tree.nearest(geometry.Point{3, -3}))
}

func TestNearIsStrict(t *testing.T) {
	tree := newTree(geometry.Point{0, 0}, 4)
	tree.add(geometry.Point{1, 0}, 0, 1)
	tree.add(geometry.Point{0.5, 0}, 0, 0.5)
	tree.add(geometry.Point{0, -0.5}, 0, 0.5) // exactly one unit away

	assert.Equal(t, []int{0, 2}, tree.near(geometry.Point{0, 0.5}, 1))
	assert.Empty(t, tree.near(geometry.Point{10, 10}, 1))
}

func TestDepthAndEdges(t *testing.T) {
	tree := newTree(geometry.Point{0, 0}, 4)
	a := tree.add(geometry.Point{1, 0}, 0, 1)
	b := tree.add(geometry.Point{2, 0}, a, 2)

	depth, ok := tree.Depth(b)
	assert.True(t, ok)
	assert.Equal(t, 2, depth)

	depth, ok = tree.Depth(0)
	assert.True(t, ok)
	assert.Equal(t, 0, depth)

	assert.Equal(t, []geometry.Segment{
		{V1: geometry.Point{0, 0}, V2: geometry.Point{1, 0}},
		{V1: geometry.Point{1, 0}, V2: geometry.Point{2, 0}},
	}, tree.Edges())
}

func TestDepthDetectsBrokenChain(t *testing.T) {
	tree := newTree(geometry.Point{0, 0}, 4)
	a := tree.add(geometry.Point{1, 0}, 0, 1)
	b := tree.add(geometry.Point{2, 0}, a, 2)
	tree.reparent(a, b, 3)

	_, ok := tree.Depth(b)
	assert.False(t, ok)
}

func TestPropagate(t *testing.T) {
	tree := newTree(geometry.Point{0, 0}, 8)
	a := tree.add(geometry.Point{1, 0}, 0, 5)
	b := tree.add(geometry.Point{2, 0}, a, 6)
	c := tree.add(geometry.Point{3, 0}, b, 7)
	d := tree.add(geometry.Point{0, 1}, 0, 1)

	tree.reparent(a, 0, 1)
	tree.propagate(a, -4)

	assert.Equal(t, 1.0, tree.Vertex(a).Cost)
	assert.Equal(t, 2.0, tree.Vertex(b).Cost)
	assert.Equal(t, 3.0, tree.Vertex(c).Cost)
	assert.Equal(t, 1.0, tree.Vertex(d).Cost)
}

func TestCloneIsIndependent(t *testing.T) {
	tree := newTree(geometry.Point{0, 0}, 4)
	tree.add(geometry.Point{1, 0}, 0, 1)

	snapshot := tree.clone()
	tree.reparent(1, 0, 42)

	assert.Equal(t, 1.0, snapshot.Vertex(1).Cost)
	assert.Equal(t, 42.0, tree.Vertex(1).Cost)
}
