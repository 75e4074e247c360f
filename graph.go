package main

import "fmt"

// Edge is a directed, weighted adjacency entry. The source is the list holding it.
type Edge struct {
	To     int     `json:"to"`     // Index of the destination node
	Weight float64 `json:"weight"` // Euclidean distance
}

// UndirectedEdge is the canonical form of a symmetric connection, From < To.
type UndirectedEdge struct {
	From   int
	To     int
	Weight float64
}

// Graph is an adjacency-list graph over map points.
// Vertex indices follow creation order and are never reused.
type Graph struct {
	Vertices []Point
	Adj      [][]Edge
}

// NewGraph returns an empty graph with room for capacity vertices.
func NewGraph(capacity int) *Graph {
	return &Graph{
		Vertices: make([]Point, 0, capacity),
		Adj:      make([][]Edge, 0, capacity),
	}
}

// Len is the number of vertices.
func (g *Graph) Len() int {
	return len(g.Vertices)
}

// AddVertex appends p and returns its index.
func (g *Graph) AddVertex(p Point) int {
	idx := len(g.Vertices)
	g.Vertices = append(g.Vertices, p)
	g.Adj = append(g.Adj, nil)
	return idx
}

// AddEdge inserts a single directed edge from -> to.
func (g *Graph) AddEdge(from, to int, weight float64) error {
	if err := g.checkIndex(from); err != nil {
		return err
	}
	if err := g.checkIndex(to); err != nil {
		return err
	}
	g.Adj[from] = append(g.Adj[from], Edge{To: to, Weight: weight})
	return nil
}

// AddUndirectedEdge inserts the edge in both directions with equal weight.
func (g *Graph) AddUndirectedEdge(a, b int, weight float64) error {
	if err := g.checkIndex(a); err != nil {
		return err
	}
	if err := g.checkIndex(b); err != nil {
		return err
	}
	g.link(a, b, weight)
	return nil
}

// link adds a and b to each other's adjacency. Callers guarantee both
// indices are valid.
func (g *Graph) link(a, b int, weight float64) {
	g.Adj[a] = append(g.Adj[a], Edge{To: b, Weight: weight})
	g.Adj[b] = append(g.Adj[b], Edge{To: a, Weight: weight})
}

// Neighbors returns the outgoing edges of vertex i.
func (g *Graph) Neighbors(i int) []Edge {
	if i < 0 || i >= len(g.Adj) {
		return nil
	}
	return g.Adj[i]
}

// UndirectedEdges lists every connection once, lower index first. Order follows
// the adjacency lists: by lower endpoint, then by insertion order. Self-loops
// are skipped since they can never belong to a tree.
func (g *Graph) UndirectedEdges() []UndirectedEdge {
	seen := make(map[[2]int]bool)
	edges := make([]UndirectedEdge, 0)

	for from, list := range g.Adj {
		for _, e := range list {
			if e.To == from {
				continue
			}
			lo, hi := from, e.To
			if lo > hi {
				lo, hi = hi, lo
			}
			key := [2]int{lo, hi}
			if seen[key] {
				continue
			}
			seen[key] = true
			edges = append(edges, UndirectedEdge{From: lo, To: hi, Weight: e.Weight})
		}
	}

	return edges
}

// EdgeCount is the number of canonical undirected edges.
func (g *Graph) EdgeCount() int {
	return len(g.UndirectedEdges())
}

// TotalWeight sums the weights of the canonical undirected edges.
func (g *Graph) TotalWeight() float64 {
	total := 0.0
	for _, e := range g.UndirectedEdges() {
		total += e.Weight
	}
	return total
}

// Segments returns the graph edges as point pairs for visualization
func (g *Graph) Segments() [][]Point {
	edges := g.UndirectedEdges()
	lines := make([][]Point, 0, len(edges))
	for _, e := range edges {
		lines = append(lines, []Point{g.Vertices[e.From], g.Vertices[e.To]})
	}
	return lines
}

func (g *Graph) checkIndex(i int) error {
	if i < 0 || i >= len(g.Vertices) {
		return fmt.Errorf("%w: %d (graph has %d vertices)", ErrVertexOutOfRange, i, len(g.Vertices))
	}
	return nil
}
