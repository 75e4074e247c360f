package main

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/charmbracelet/log"
)

// Roadmap is the outcome of a successful generation run.
type Roadmap struct {
	Graph    *Graph // dense PRM
	Tree     *Graph // its minimum spanning tree
	Attempts int    // roadmaps sampled, including disconnected ones
}

// Generate samples roadmaps until one reduces to a spanning tree. A
// disconnected roadmap is resampled up to retries more times; any other
// error stops immediately. The last disconnection error is returned when
// every attempt fails. A negative retries count is an ErrInvalidConfig.
func Generate(oracle Oracle, cfg SamplerConfig, rng *rand.Rand, retries int) (*Roadmap, error) {
	if retries < 0 {
		return nil, fmt.Errorf("%w: retries %d is negative", ErrInvalidConfig, retries)
	}

	var lastErr error
	for attempt := 1; attempt <= retries+1; attempt++ {
		graph, err := BuildRoadmap(oracle, cfg, rng)
		if err != nil {
			return nil, err
		}

		tree, err := Kruskal(graph)
		if err == nil {
			return &Roadmap{Graph: graph, Tree: tree, Attempts: attempt}, nil
		}
		if !errors.Is(err, ErrDisconnected) {
			return nil, err
		}

		lastErr = err
		log.Warn("Roadmap is disconnected, resampling", "attempt", attempt, "err", err)
	}
	return nil, lastErr
}

// RouteResult is a tree route between two query coordinates.
type RouteResult struct {
	StartVertex int     `json:"startVertex"`
	EndVertex   int     `json:"endVertex"`
	Path        []int   `json:"path"`
	Points      []Point `json:"points"`
	Length      float64 `json:"length"`
}

// Route snaps start and end to their nearest tree vertices and walks the tree
// between them. The route is the unique tree path, not a shortest path.
func Route(tree *Graph, oracle Oracle, start, end Point) (*RouteResult, error) {
	from, err := NearestVertex(tree, oracle, start)
	if err != nil {
		return nil, fmt.Errorf("start %v: %w", start, err)
	}
	to, err := NearestVertex(tree, oracle, end)
	if err != nil {
		return nil, fmt.Errorf("end %v: %w", end, err)
	}

	path, err := TreePath(tree, from, to)
	if err != nil {
		return nil, err
	}

	points := PathPoints(tree, path)
	return &RouteResult{
		StartVertex: from,
		EndVertex:   to,
		Path:        path,
		Points:      points,
		Length:      PathLength(points),
	}, nil
}
