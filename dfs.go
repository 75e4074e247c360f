package main

import "fmt"

// dfsFrame is one level of the explicit DFS stack: a vertex and the
// position of the next neighbour to try.
type dfsFrame struct {
	vertex int
	next   int
}

// TreePath finds the path between start and end with a depth-first search.
//
// On a tree the path is unique, so the first one found is the answer. The
// returned slice runs from start to end inclusive. Neighbours are tried in
// adjacency order and the search backtracks when a branch is exhausted.
// ErrNoPathFound means the two vertices are in different components.
func TreePath(g *Graph, start, end int) ([]int, error) {
	if err := g.checkIndex(start); err != nil {
		return nil, fmt.Errorf("start: %w", err)
	}
	if err := g.checkIndex(end); err != nil {
		return nil, fmt.Errorf("end: %w", err)
	}

	visited := make([]bool, g.Len())
	stack := make([]dfsFrame, 0, g.Len())

	visited[start] = true
	stack = append(stack, dfsFrame{vertex: start})

	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		if top.vertex == end {
			path := make([]int, len(stack))
			for i, f := range stack {
				path[i] = f.vertex
			}
			return path, nil
		}

		adj := g.Neighbors(top.vertex)
		advanced := false
		for top.next < len(adj) {
			to := adj[top.next].To
			top.next++
			if !visited[to] {
				visited[to] = true
				stack = append(stack, dfsFrame{vertex: to})
				advanced = true
				break
			}
		}

		if !advanced {
			stack = stack[:len(stack)-1]
		}
	}

	return nil, ErrNoPathFound
}

// PathPoints maps a vertex path to its coordinates.
func PathPoints(g *Graph, path []int) []Point {
	points := make([]Point, len(path))
	for i, idx := range path {
		points[i] = g.Vertices[idx]
	}
	return points
}

// PathLength sums the straight segments between consecutive points.
func PathLength(points []Point) float64 {
	total := 0.0
	for i := 1; i < len(points); i++ {
		total += points[i-1].Distance(points[i])
	}
	return total
}
