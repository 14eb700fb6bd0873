// Package planner validates planning requests, runs RRT* against a house and
// splits the resulting path into per-room routes.
package planner

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"room-planner/internal/config"
	"room-planner/internal/geometry"
	"room-planner/internal/house"
	"room-planner/internal/obstacle"
	"room-planner/internal/route"
	"room-planner/internal/rrtstar"
)

// Request describes one navigation request. Zero StepSize, MaxIter and Seed
// fall back to the planner defaults.
type Request struct {
	Start    geometry.Point `json:"start"`
	Goal     geometry.Point `json:"goal"`
	StepSize float64        `json:"stepSize,omitempty"`
	MaxIter  int            `json:"maxIter,omitempty"`
	Seed     int64          `json:"seed,omitempty"`
}

// Plan is the outcome of a successful request
type Plan struct {
	Path     []geometry.Point `json:"path"`
	Cost     float64          `json:"cost"`   // cost-to-come of the last vertex before the goal
	Length   float64          `json:"length"` // sum of all leg lengths, goal leg included
	Routes   []route.Route    `json:"routes"`
	Rooms    []house.RoomID   `json:"rooms"`
	StepSize float64          `json:"stepSize"`
	MaxIter  int              `json:"maxIter"`
	Seed     int64            `json:"seed"`
	Elapsed  time.Duration    `json:"elapsed"`
	Tree     *rrtstar.Tree    `json:"-"`
}

// Planner plans paths through one house.
// The house and obstacle set are read-only, so Plan may be called concurrently;
// every call runs its own RRT* instance.
type Planner struct {
	house     *house.House
	obstacles *obstacle.Set
	defaults  config.PlannerConfig
	logger    *zap.Logger
}

// Option configures a Planner
type Option func(*Planner)

// WithDefaults sets the parameters used for zero request fields
func WithDefaults(cfg config.PlannerConfig) Option {
	return func(p *Planner) {
		p.defaults = cfg
	}
}

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) Option {
	return func(p *Planner) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// New creates a planner for h. Doors are left out of the obstacle set.
func New(h *house.House, opts ...Option) *Planner {
	p := &Planner{
		house:    h,
		defaults: config.Default().Planner,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.obstacles = obstacle.FromHouse(h.Walls, h.Furniture)
	return p
}

// House returns the house being planned in
func (p *Planner) House() *house.House {
	return p.house
}

// Obstacles returns the flattened obstacle set
func (p *Planner) Obstacles() *obstacle.Set {
	return p.obstacles
}

// Plan validates req, searches for a path and segments it into routes
func (p *Planner) Plan(req Request) (*Plan, error) {
	stepSize, maxIter, seed := p.resolve(req)
	if !(stepSize > 0) || maxIter <= 0 {
		return nil, fmt.Errorf("%w: step size %v and max iterations %d must be positive", ErrInvalidRequest, stepSize, maxIter)
	}
	if limit := p.maxIterLimit(); maxIter > limit {
		return nil, fmt.Errorf("%w: max iterations %d exceed the limit of %d", ErrInvalidRequest, maxIter, limit)
	}
	if err := p.checkBounds("start", req.Start); err != nil {
		return nil, err
	}
	if err := p.checkBounds("goal", req.Goal); err != nil {
		return nil, err
	}

	startTime := time.Now()
	rrt := rrtstar.New(req.Start, req.Goal, p.house.Bounds, p.obstacles, stepSize, maxIter,
		rrtstar.WithSeed(seed),
		rrtstar.WithSteer(p.defaults.Steer),
		rrtstar.WithCostPropagation(p.defaults.PropagateCost),
		rrtstar.WithMaxAttempts(p.defaults.MaxAttempts),
		rrtstar.WithLogger(p.logger.Named("rrtstar")),
	)

	path, cost, ok := rrt.FindPath()
	if !ok {
		p.logger.Info("no path found",
			zap.Float64("stepSize", stepSize),
			zap.Int("maxIter", maxIter),
			zap.Int("attempts", rrt.Attempts()),
		)
		return nil, &NoPathFoundError{StepSize: stepSize, MaxIter: maxIter}
	}

	routes := route.Segment(path, p.house.RoomOf)
	tree := rrt.Tree()
	plan := &Plan{
		Path:     path,
		Cost:     cost,
		Length:   pathLength(path),
		Routes:   routes,
		Rooms:    route.Rooms(routes),
		StepSize: stepSize,
		MaxIter:  maxIter,
		Seed:     seed,
		Elapsed:  time.Since(startTime),
		Tree:     tree,
	}

	p.logger.Debug("plan ready",
		zap.Int("waypoints", len(path)),
		zap.Int("vertices", tree.Len()),
		zap.Float64("cost", plan.Cost),
		zap.Float64("length", plan.Length),
		zap.Duration("elapsed", plan.Elapsed),
		zap.Any("rooms", plan.Rooms),
		zap.Int("routes", len(routes)),
	)
	return plan, nil
}

func (p *Planner) resolve(req Request) (float64, int, int64) {
	stepSize, maxIter, seed := req.StepSize, req.MaxIter, req.Seed
	if stepSize == 0 {
		stepSize = p.defaults.StepSize
	}
	if maxIter == 0 {
		maxIter = p.defaults.MaxIter
	}
	if seed == 0 {
		seed = p.defaults.Seed
	}
	return stepSize, maxIter, seed
}

func (p *Planner) maxIterLimit() int {
	if p.defaults.MaxIterLimit > 0 {
		return p.defaults.MaxIterLimit
	}
	return config.DefaultMaxIterLimit
}

// checkBounds verifies pt lies within the house component-wise. NaN coordinates fail.
func (p *Planner) checkBounds(name string, pt geometry.Point) error {
	b := p.house.Bounds
	axes := [2]string{"x", "y"}
	for i, axis := range axes {
		if !(b.Min[i] <= pt[i] && pt[i] <= b.Max[i]) {
			return &OutOfBoundsError{
				Point: name,
				Axis:  axis,
				Value: pt[i],
				Min:   b.Min[i],
				Max:   b.Max[i],
			}
		}
	}
	return nil
}

func pathLength(path []geometry.Point) float64 {
	var length float64
	for i := 0; i < len(path)-1; i++ {
		length += geometry.Distance(path[i], path[i+1])
	}
	return length
}
