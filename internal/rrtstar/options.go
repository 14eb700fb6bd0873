package rrtstar

import (
	"math/rand"

	"go.uber.org/zap"
)

const (
	// Seed used when no random source is supplied
	defaultSeed = 1

	// Sampling attempts allowed per vertex before the search gives up
	defaultAttemptsPerVertex = 100

	// UnlimitedAttempts leaves maxIter as the only bound on the search.
	// A start enclosed by obstacles then never terminates.
	UnlimitedAttempts = -1
)

// SteerMode selects how a sample farther than the step size is pulled in
type SteerMode string

const (
	// SteerDefault clamps the candidate onto the direction of the sample
	SteerDefault SteerMode = "default"
	// SteerRandom places the candidate along a uniformly random heading
	SteerRandom SteerMode = "random"
)

// Option configures a Planner
type Option func(*Planner)

// WithRand sets the random source used for sampling
func WithRand(rng *rand.Rand) Option {
	return func(p *Planner) {
		if rng != nil {
			p.rng = rng
		}
	}
}

// WithSeed seeds a fresh random source
func WithSeed(seed int64) Option {
	return func(p *Planner) {
		//nolint:gosec
		p.rng = rand.New(rand.NewSource(seed))
	}
}

// WithSteer selects the steering mode
func WithSteer(mode SteerMode) Option {
	return func(p *Planner) {
		if mode != "" {
			p.steerMode = mode
		}
	}
}

// WithCostPropagation makes rewiring push cost changes down to every descendant.
// Off by default: a rewired vertex's subtree keeps its previous costs.
func WithCostPropagation(enabled bool) Option {
	return func(p *Planner) {
		p.propagateCost = enabled
	}
}

// WithMaxAttempts bounds the total number of samples drawn by one FindPath call.
// Zero keeps the default of 100 samples per allowed vertex, UnlimitedAttempts
// (or any negative value) removes the bound.
func WithMaxAttempts(n int) Option {
	return func(p *Planner) {
		p.maxAttempts = n
	}
}

// WithLogger sets the logger used for progress and statistics
func WithLogger(logger *zap.Logger) Option {
	return func(p *Planner) {
		if logger != nil {
			p.logger = logger
		}
	}
}
