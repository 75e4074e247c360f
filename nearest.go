package main

import "math"

// NearestVertex returns the index of the vertex of g closest to q.
//
// q must be inside the oracle bounds and not obstructed. Distances are
// compared with strict less-than, so the lowest index wins a tie.
func NearestVertex(g *Graph, oracle Oracle, q Point) (int, error) {
	if !oracle.Bounds().Contains(q) {
		return 0, ErrOutOfBounds
	}
	if oracle.IsObstructed(q) {
		return 0, ErrObstructed
	}
	if g.Len() == 0 {
		return 0, ErrEmptyGraph
	}

	nearest := 0
	minDist := math.MaxFloat64
	for i, v := range g.Vertices {
		if d := q.Distance(v); d < minDist {
			minDist = d
			nearest = i
		}
	}

	return nearest, nil
}
