package main

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// fieldOracle is an open rectangle with closed rectangular walls.
type fieldOracle struct {
	bounds BoundingBox
	walls  []BoundingBox
}

func openField(w, h float64, walls ...BoundingBox) fieldOracle {
	return fieldOracle{bounds: BoundingBox{MaxX: w, MaxY: h}, walls: walls}
}

func (o fieldOracle) Bounds() BoundingBox { return o.bounds }

func (o fieldOracle) IsObstructed(p Point) bool {
	for _, r := range o.walls {
		if p.X >= r.MinX && p.X <= r.MaxX && p.Y >= r.MinY && p.Y <= r.MaxY {
			return true
		}
	}
	return false
}

func (o fieldOracle) IsPathColliding(start, end Point, steps int) bool {
	return segmentColliding(o.IsObstructed, start, end, steps)
}

// graphOf builds a symmetric graph from points and (from, to, weight) triples.
func graphOf(t *testing.T, points []Point, edges ...UndirectedEdge) *Graph {
	t.Helper()
	g := NewGraph(len(points))
	for _, p := range points {
		g.AddVertex(p)
	}
	for _, e := range edges {
		require.NoError(t, g.AddUndirectedEdge(e.From, e.To, e.Weight))
	}
	return g
}

// requireValidPath checks that consecutive vertices are adjacent and none repeats.
func requireValidPath(t *testing.T, g *Graph, path []int, start, end int) {
	t.Helper()
	require.NotEmpty(t, path)
	require.Equal(t, start, path[0])
	require.Equal(t, end, path[len(path)-1])

	seen := make(map[int]bool)
	for i, v := range path {
		require.False(t, seen[v], "vertex %d repeated", v)
		seen[v] = true
		if i == 0 {
			continue
		}
		adjacent := false
		for _, e := range g.Adj[path[i-1]] {
			if e.To == v {
				adjacent = true
				break
			}
		}
		require.True(t, adjacent, "%d and %d are not adjacent", path[i-1], v)
	}
}
