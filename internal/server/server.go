// Package server exposes the planner over HTTP with JSON bodies.
package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"room-planner/internal/geometry"
	"room-planner/internal/planner"
)

// Point is the JSON form of a position
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// RouteRequest is the body of POST /route
type RouteRequest struct {
	Start       Point   `json:"start"`
	End         Point   `json:"end"`
	StepSize    float64 `json:"stepSize,omitempty"`
	MaxIter     int     `json:"maxIter,omitempty"`
	Seed        int64   `json:"seed,omitempty"`
	IncludeTree bool    `json:"includeTree,omitempty"`
}

// Route is one per-room run of the path
type Route struct {
	Room string  `json:"room"`
	Path []Point `json:"path"`
}

// RouteResponse is the body returned by POST /route
type RouteResponse struct {
	Success bool      `json:"success"`
	Message string    `json:"message,omitempty"`
	Path    []Point   `json:"path,omitempty"`
	Routes  []Route   `json:"routes,omitempty"`
	Cost    float64   `json:"cost"`
	Length  float64   `json:"length"`
	Tree    [][]Point `json:"tree,omitempty"`
}

// HealthResponse is the body returned by GET /health
type HealthResponse struct {
	Status    string `json:"status"`
	Walls     int    `json:"walls"`
	Doors     int    `json:"doors"`
	Furniture int    `json:"furniture"`
	Rooms     int    `json:"rooms"`
	Obstacles int    `json:"obstacles"`
}

// Server serves planning requests against one house
type Server struct {
	planner *planner.Planner
	logger  *zap.Logger
	mux     *http.ServeMux
}

// New creates the HTTP handler
func New(p *planner.Planner, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		planner: p,
		logger:  logger,
		mux:     http.NewServeMux(),
	}
	s.mux.HandleFunc("/route", corsMiddleware(s.routeHandler))
	s.mux.HandleFunc("/health", corsMiddleware(s.healthHandler))
	return s
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// corsMiddleware adds CORS headers to allow frontend requests
func corsMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		// Handle preflight
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next(w, r)
	}
}

// POST /route - plan a path and split it into per-room routes
func (s *Server) routeHandler(w http.ResponseWriter, r *http.Request) {
	logger := s.logger.With(zap.String("requestId", uuid.NewString()))

	if r.Method != http.MethodPost {
		logger.Warn("method not allowed", zap.String("method", r.Method))
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req RouteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid request body", zap.Error(err))
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	logger.Info("route request received",
		zap.Float64("startX", req.Start.X), zap.Float64("startY", req.Start.Y),
		zap.Float64("endX", req.End.X), zap.Float64("endY", req.End.Y),
	)

	plan, err := s.planner.Plan(planner.Request{
		Start:    geometry.Point{req.Start.X, req.Start.Y},
		Goal:     geometry.Point{req.End.X, req.End.Y},
		StepSize: req.StepSize,
		MaxIter:  req.MaxIter,
		Seed:     req.Seed,
	})

	switch {
	case errors.Is(err, planner.ErrOutOfBounds), errors.Is(err, planner.ErrInvalidRequest):
		logger.Warn("rejected route request", zap.Error(err))
		writeJSON(w, http.StatusBadRequest, RouteResponse{Message: err.Error()})
		return
	case errors.Is(err, planner.ErrNoPathFound):
		logger.Info("no path found", zap.Error(err))
		writeJSON(w, http.StatusOK, RouteResponse{Message: err.Error()})
		return
	case err != nil:
		logger.Error("planning failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, RouteResponse{Message: err.Error()})
		return
	}

	response := RouteResponse{
		Success: true,
		Path:    toPoints(plan.Path),
		Routes:  make([]Route, 0, len(plan.Routes)),
		Cost:    plan.Cost,
		Length:  plan.Length,
	}
	for _, rt := range plan.Routes {
		response.Routes = append(response.Routes, Route{Room: string(rt.Room), Path: toPoints(rt.Points)})
	}
	if req.IncludeTree {
		for _, e := range plan.Tree.Edges() {
			response.Tree = append(response.Tree, toPoints([]geometry.Point{e.V1, e.V2}))
		}
	}

	logger.Info("path found",
		zap.Int("waypoints", len(plan.Path)),
		zap.Int("routes", len(plan.Routes)),
		zap.Float64("cost", plan.Cost),
		zap.Duration("elapsed", plan.Elapsed),
	)
	writeJSON(w, http.StatusOK, response)
}

// GET /health - report the loaded house
func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	h := s.planner.House()
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:    "ready",
		Walls:     len(h.Walls) - h.Doors(),
		Doors:     h.Doors(),
		Furniture: len(h.Furniture),
		Rooms:     len(h.Rooms),
		Obstacles: s.planner.Obstacles().Len(),
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func toPoints(points []geometry.Point) []Point {
	out := make([]Point, len(points))
	for i, p := range points {
		out[i] = Point{X: p[0], Y: p[1]}
	}
	return out
}
