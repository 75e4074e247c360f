package main

import (
	"encoding/json"
	"errors"
	"net/http"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type RouteRequest struct {
	Start Point `json:"start"`
	End   Point `json:"end"`
}

type RouteResponse struct {
	Path     []Point `json:"path"`
	Vertices []int   `json:"vertices,omitempty"`
	Success  bool    `json:"success"`
	Message  string  `json:"message,omitempty"`
	Distance float64 `json:"distance,omitempty"`
}

type BuildRequest struct {
	Vertices   int     `json:"vertices"`          // Number of random samples
	Radius     float64 `json:"radius"`            // Connection radius in map units
	Seed       uint64  `json:"seed,omitempty"`    // 0 picks a time-based seed
	Retries    *int    `json:"retries,omitempty"` // Resamples allowed on disconnection
	SaveToFile bool    `json:"saveToFile"`        // Whether to save to disk
	Force      bool    `json:"force,omitempty"`   // Set to true to force rebuild
}

// server serves routes over the spanning tree it currently holds.
type server struct {
	cfg    Config
	oracle Oracle

	mu   sync.RWMutex
	tree *Graph
}

func newServer(cfg Config, oracle Oracle, tree *Graph) *server {
	s := &server{cfg: cfg, oracle: oracle}
	s.setTree(tree)
	return s
}

func (s *server) setTree(tree *Graph) {
	s.mu.Lock()
	s.tree = tree
	s.mu.Unlock()
	if tree != nil {
		treeVertices.Set(float64(tree.Len()))
	}
}

func (s *server) currentTree() *Graph {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tree
}

func (s *server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(metricsMiddleware)
	r.Use(corsMiddleware)

	r.Post("/roadmap", s.buildHandler)
	r.Get("/roadmap/lines", s.linesHandler)
	r.Post("/route", s.routeHandler)
	r.Get("/health", s.healthHandler)
	r.Handle("/metrics", promhttp.Handler())
	return r
}

// corsMiddleware adds CORS headers to allow frontend requests
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		// Handle preflight
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warn("Failed to encode response", "err", err)
	}
}

func (s *server) routeHandler(w http.ResponseWriter, r *http.Request) {
	var req RouteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	tree := s.currentTree()
	if tree == nil {
		http.Error(w, "Spanning tree not built. Call POST /roadmap first", http.StatusConflict)
		return
	}

	log.Debug("Route request", "start", req.Start, "end", req.End)
	result, err := Route(tree, s.oracle, req.Start, req.End)
	if err != nil {
		status := http.StatusUnprocessableEntity
		if errors.Is(err, ErrNoPathFound) {
			// A loaded tree should always be connected.
			status = http.StatusInternalServerError
		}
		log.Info("Route rejected", "err", err)
		writeJSON(w, status, RouteResponse{Success: false, Message: err.Error()})
		return
	}

	log.Info("Route found", "waypoints", len(result.Points), "distance", result.Length)
	writeJSON(w, http.StatusOK, RouteResponse{
		Path:     result.Points,
		Vertices: result.Path,
		Success:  true,
		Distance: result.Length,
	})
}

func (s *server) healthHandler(w http.ResponseWriter, r *http.Request) {
	tree := s.currentTree()
	status := "ready"
	numNodes := 0
	if tree == nil {
		status = "waiting for roadmap"
	} else {
		numNodes = tree.Len()
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":   status,
		"hasTree":  tree != nil,
		"numNodes": numNodes,
	})
}

func (s *server) buildHandler(w http.ResponseWriter, r *http.Request) {
	var req BuildRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if s.currentTree() != nil && !req.Force {
		writeJSON(w, http.StatusConflict, map[string]interface{}{
			"success": false,
			"error":   "spanning tree already exists",
			"message": "Tree is already built. Set 'force: true' to rebuild.",
		})
		return
	}

	// Set defaults
	cfg := s.cfg
	if req.Vertices > 0 {
		cfg.Vertices = req.Vertices
	}
	if req.Radius > 0 {
		cfg.Radius = req.Radius
	}
	if req.Seed != 0 {
		cfg.Seed = req.Seed
	}
	if req.Retries != nil {
		cfg.Retries = *req.Retries
	}

	roadmap, err := Generate(s.oracle, cfg.Sampler(), NewRand(cfg.Seed), cfg.Retries)
	if err != nil {
		var disconnected *DisconnectedError
		resp := map[string]interface{}{"success": false, "error": err.Error()}
		switch {
		case errors.As(err, &disconnected):
			roadmapBuilds.WithLabelValues("disconnected").Inc()
			resp["components"] = disconnected.Components
			writeJSON(w, http.StatusUnprocessableEntity, resp)
		case errors.Is(err, ErrInvalidConfig):
			roadmapBuilds.WithLabelValues("invalid").Inc()
			writeJSON(w, http.StatusBadRequest, resp)
		default:
			roadmapBuilds.WithLabelValues("failed").Inc()
			writeJSON(w, http.StatusUnprocessableEntity, resp)
		}
		return
	}
	roadmapBuilds.WithLabelValues("ok").Inc()
	s.setTree(roadmap.Tree)

	if req.SaveToFile {
		if err := SaveGraphCSV(roadmap.Tree, s.cfg.TreeOut); err != nil {
			log.Warn("Failed to save tree", "err", err)
		}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":      true,
		"numNodes":     roadmap.Tree.Len(),
		"roadmapEdges": roadmap.Graph.EdgeCount(),
		"treeWeight":   roadmap.Tree.TotalWeight(),
		"attempts":     roadmap.Attempts,
		"boundingBox":  s.oracle.Bounds(),
	})
}

// linesHandler returns the tree edges as segments for visualization.
func (s *server) linesHandler(w http.ResponseWriter, r *http.Request) {
	tree := s.currentTree()
	if tree == nil {
		http.Error(w, "Spanning tree not built. Call POST /roadmap first", http.StatusConflict)
		return
	}

	lines := tree.Segments()
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"lines":    lines,
		"numNodes": tree.Len(),
		"numEdges": len(lines),
	})
}
