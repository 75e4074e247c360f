package main

import (
	"fmt"
	"math/rand/v2"
	"runtime"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"
)

// defaultAttemptFactor bounds rejection sampling at this many draws per requested vertex.
const defaultAttemptFactor = 1000

// SamplerConfig holds the roadmap parameters.
type SamplerConfig struct {
	NumVertices      int     // Number of valid samples to collect
	ConnectionRadius float64 // Max distance between connected vertices
	MaxAttempts      int     // Total draw cap; 0 means NumVertices*defaultAttemptFactor
	Workers          int     // Connection phase parallelism; 0 means GOMAXPROCS
}

func (c SamplerConfig) validate() error {
	if c.NumVertices < 0 {
		return fmt.Errorf("%w: vertex count %d is negative", ErrInvalidConfig, c.NumVertices)
	}
	if !(c.ConnectionRadius > 0) {
		return fmt.Errorf("%w: connection radius must be positive, got %v", ErrInvalidConfig, c.ConnectionRadius)
	}
	if c.MaxAttempts < 0 {
		return fmt.Errorf("%w: max attempts %d is negative", ErrInvalidConfig, c.MaxAttempts)
	}
	return nil
}

func (c SamplerConfig) maxAttempts() int {
	if c.MaxAttempts > 0 {
		return c.MaxAttempts
	}
	return c.NumVertices * defaultAttemptFactor
}

func (c SamplerConfig) workers() int {
	if c.Workers > 0 {
		return c.Workers
	}
	return runtime.GOMAXPROCS(0)
}

// NewRand returns a seeded generator. A zero seed draws one from the clock.
func NewRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewPCG(seed, seed))
}

// BuildRoadmap samples a probabilistic roadmap over the oracle's map.
//
// Valid points are drawn uniformly inside the oracle bounds until
// cfg.NumVertices are collected. Every pair closer than the connection radius
// whose straight segment is collision-free becomes an undirected edge weighted
// by its length. The result is symmetric and may be disconnected.
func BuildRoadmap(oracle Oracle, cfg SamplerConfig, rng *rand.Rand) (*Graph, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	startTime := time.Now()
	log.Info("Building roadmap", "vertices", cfg.NumVertices, "radius", cfg.ConnectionRadius)

	// Step 1: Random sampling within bounding box, rejecting obstructed points
	graph := NewGraph(cfg.NumVertices)
	bounds := oracle.Bounds()
	if cfg.NumVertices > 0 && bounds.Empty() {
		return nil, &SamplingExhaustedError{Requested: cfg.NumVertices}
	}

	limit := cfg.maxAttempts()
	attempts := 0
	for graph.Len() < cfg.NumVertices {
		if attempts >= limit {
			return nil, &SamplingExhaustedError{
				Accepted:  graph.Len(),
				Requested: cfg.NumVertices,
				Attempts:  attempts,
			}
		}
		attempts++

		p := Point{
			X: bounds.MinX + rng.Float64()*bounds.Width(),
			Y: bounds.MinY + rng.Float64()*bounds.Height(),
		}
		if !oracle.IsObstructed(p) {
			graph.AddVertex(p)
		}
	}
	log.Debug("Sampling done", "accepted", graph.Len(), "attempts", attempts)

	// Step 2: Connect nearby nodes whose segment is clear
	rows, err := connectRows(oracle, graph.Vertices, cfg.ConnectionRadius, cfg.workers())
	if err != nil {
		return nil, err
	}

	edgeCount := 0
	for i, row := range rows {
		for _, e := range row {
			// Both indices were produced from graph.Vertices.
			graph.link(i, e.To, e.Weight)
			edgeCount++
		}
	}

	log.Info("Roadmap built",
		"vertices", graph.Len(),
		"edges", edgeCount,
		"elapsed", time.Since(startTime).Round(time.Millisecond))

	return graph, nil
}

// connectRows computes, for every vertex i, the edges to vertices j > i.
// Rows are independent so they run on a bounded worker pool; each row is
// sorted by j, which makes the merged result match a sequential scan.
func connectRows(oracle Oracle, vertices []Point, radius float64, workers int) ([][]Edge, error) {
	steps := CollisionSteps(radius)
	index := newVertexIndex(vertices)
	rows := make([][]Edge, len(vertices))

	var g errgroup.Group
	g.SetLimit(workers)
	for i := range vertices {
		g.Go(func() error {
			p := vertices[i]
			var row []Edge
			for _, j := range index.within(p, radius, i) {
				q := vertices[j]
				if oracle.IsPathColliding(p, q, steps) {
					continue
				}
				row = append(row, Edge{To: j, Weight: p.Distance(q)})
			}
			rows[i] = row
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return rows, nil
}
