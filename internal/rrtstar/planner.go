// Package rrtstar implements an incremental RRT* planner over a 2D rectangle
// with segment obstacles.
//
// The tree is an arena of vertices addressed by index. Rewiring only ever
// points an existing vertex at another existing vertex, and costs never decrease
// along a parent chain, so parent links never form a cycle.
package rrtstar

import (
	"math"
	"math/rand"
	"time"

	"github.com/paulmach/orb"
	"go.uber.org/zap"

	"room-planner/internal/geometry"
)

// Checker answers segment collision queries
type Checker interface {
	CheckCollision(p1, p2 geometry.Point) bool
}

// Planner grows a tree from start until a vertex lands within one step of the goal.
// A Planner is not safe for concurrent use; concurrent plans need separate planners.
type Planner struct {
	start    geometry.Point
	goal     geometry.Point
	bounds   orb.Bound
	checker  Checker
	stepSize float64
	maxIter  int

	maxAttempts   int
	steerMode     SteerMode
	propagateCost bool
	rng           *rand.Rand
	logger        *zap.Logger

	tree     *Tree
	attempts int
}

// New creates a planner. stepSize and maxIter must be positive.
func New(start, goal geometry.Point, bounds orb.Bound, checker Checker, stepSize float64, maxIter int, opts ...Option) *Planner {
	p := &Planner{
		start:     start,
		goal:      goal,
		bounds:    bounds,
		checker:   checker,
		stepSize:  stepSize,
		maxIter:   maxIter,
		steerMode: SteerDefault,
		//nolint:gosec
		rng:    rand.New(rand.NewSource(defaultSeed)),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	switch {
	case p.maxAttempts < 0:
		p.maxAttempts = math.MaxInt
	case p.maxAttempts == 0:
		p.maxAttempts = attemptsFor(maxIter)
	}
	return p
}

// attemptsFor returns the default sampling budget, saturating instead of overflowing
func attemptsFor(maxIter int) int {
	if maxIter > math.MaxInt/defaultAttemptsPerVertex {
		return math.MaxInt
	}
	return defaultAttemptsPerVertex * maxIter
}

// FindPath searches for a path from start to goal.
//
// It returns the path (start first, goal last) and the cost-to-come of the
// last tree vertex before the goal, or ok == false when the tree reached
// maxIter vertices, or the sampling budget ran out, without a path.
func (p *Planner) FindPath() (path []geometry.Point, cost float64, ok bool) {
	p.tree = newTree(p.start, p.maxIter)
	p.attempts = 0
	return p.search()
}

// search grows the current tree until a path is found or a budget runs out.
// A candidate near the goal whose chain does not lead back to the start is
// kept in the tree and sampling goes on.
func (p *Planner) search() (path []geometry.Point, cost float64, ok bool) {
	startTime := time.Now()
	for p.tree.Len() < p.maxIter {
		if p.attempts >= p.maxAttempts {
			p.logger.Warn("sampling budget exhausted",
				zap.Int("attempts", p.attempts),
				zap.Int("vertices", p.tree.Len()),
			)
			break
		}
		p.attempts++

		sample := p.sample()
		nearestID := p.tree.nearest(sample)
		if nearestID < 0 {
			continue
		}
		nearest := p.tree.Vertex(nearestID).Position()

		candidate, steered := p.steer(nearest, sample)
		if !steered {
			continue
		}
		if p.checker.CheckCollision(nearest, candidate) {
			continue
		}

		nearSet := p.tree.near(candidate, p.stepSize)
		parent, parentCost := p.chooseParent(candidate, nearestID, nearSet)
		id := p.tree.add(candidate, parent, parentCost)
		p.rewire(id, nearSet)

		if geometry.Distance(candidate, p.goal) > p.stepSize {
			continue
		}
		if p.checker.CheckCollision(candidate, p.goal) {
			continue
		}
		if found, reached := p.reconstruct(id); reached {
			cost = p.tree.Vertex(id).Cost
			p.logger.Debug("path found",
				zap.Int("waypoints", len(found)),
				zap.Int("vertices", p.tree.Len()),
				zap.Int("attempts", p.attempts),
				zap.Float64("cost", cost),
				zap.Duration("elapsed", time.Since(startTime)),
			)
			return found, cost, true
		}
		p.logger.Debug("dead end while reconstructing path", zap.Int("vertex", id))
	}

	p.logger.Debug("no path found",
		zap.Int("vertices", p.tree.Len()),
		zap.Int("attempts", p.attempts),
		zap.Duration("elapsed", time.Since(startTime)),
	)
	return nil, 0, false
}

// Tree returns a snapshot of the tree grown by the last FindPath call
func (p *Planner) Tree() *Tree {
	if p.tree == nil {
		return newTree(p.start, 1)
	}
	return p.tree.clone()
}

// Attempts returns how many samples the last FindPath call drew
func (p *Planner) Attempts() int {
	return p.attempts
}

// sample draws a point uniformly within bounds
func (p *Planner) sample() geometry.Point {
	minX, minY := p.bounds.Min[0], p.bounds.Min[1]
	maxX, maxY := p.bounds.Max[0], p.bounds.Max[1]
	return geometry.Point{
		minX + p.rng.Float64()*(maxX-minX),
		minY + p.rng.Float64()*(maxY-minY),
	}
}

// steer rejects samples hidden behind an obstacle and clamps the rest to one step
func (p *Planner) steer(nearest, sample geometry.Point) (geometry.Point, bool) {
	if p.checker.CheckCollision(nearest, sample) {
		return geometry.Point{}, false
	}
	if geometry.Distance(nearest, sample) <= p.stepSize {
		return sample, true
	}
	if p.steerMode == SteerRandom {
		theta := (2*p.rng.Float64() - 1) * math.Pi
		return geometry.SteerHeading(nearest, theta, p.stepSize), true
	}
	return geometry.Steer(nearest, sample, p.stepSize), true
}

// chooseParent picks the vertex giving the cheapest cost-to-come for the candidate.
// Near vertices without a clear line to the candidate are not eligible.
func (p *Planner) chooseParent(candidate geometry.Point, nearestID int, nearSet []int) (int, float64) {
	nearest := p.tree.Vertex(nearestID)
	chosen := nearestID
	minCost := nearest.Cost + geometry.Distance(candidate, nearest.Position())

	for _, id := range nearSet {
		if id == nearestID {
			continue
		}
		v := p.tree.Vertex(id)
		cost := v.Cost + geometry.Distance(candidate, v.Position())
		if cost >= minCost {
			continue
		}
		if p.checker.CheckCollision(v.Position(), candidate) {
			continue
		}
		chosen = id
		minCost = cost
	}

	return chosen, minCost
}

// rewire hangs near vertices under the new vertex when that makes them cheaper
func (p *Planner) rewire(newID int, nearSet []int) {
	newVertex := p.tree.Vertex(newID)
	for _, id := range nearSet {
		v := p.tree.Vertex(id)
		if p.checker.CheckCollision(newVertex.Position(), v.Position()) {
			continue
		}
		if v.IsRoot() {
			continue
		}
		cost := newVertex.Cost + geometry.Distance(v.Position(), newVertex.Position())
		if cost >= v.Cost {
			continue
		}
		p.tree.reparent(id, newID, cost)
		if p.propagateCost {
			p.tree.propagate(id, cost-v.Cost)
		}
	}
}

// reconstruct walks parent links from vertex id back to the start.
// The start position is copied into the root and never recomputed, so exact
// comparison is safe.
func (p *Planner) reconstruct(id int) ([]geometry.Point, bool) {
	cur := p.tree.Vertex(id)
	path := []geometry.Point{p.goal, cur.Position()}

	for hops := 0; cur.Position() != p.start; hops++ {
		if cur.IsRoot() || hops >= p.tree.Len() {
			return nil, false
		}
		cur = p.tree.Vertex(cur.Parent)
		path = append(path, cur.Position())
	}

	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path, true
}
