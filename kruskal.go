package main

import (
	"sort"

	"github.com/charmbracelet/log"
)

// Kruskal reduces a symmetric roadmap to its minimum spanning tree.
//
// The tree keeps every vertex of g at the same index, so isolated vertices
// survive and queries can keep using roadmap indices. Edges are considered in
// ascending weight; ties keep canonical extraction order. When the roadmap has
// more than one component a *DisconnectedError is returned and no tree.
func Kruskal(g *Graph) (*Graph, error) {
	edges := g.UndirectedEdges()
	sort.SliceStable(edges, func(i, j int) bool {
		return edges[i].Weight < edges[j].Weight
	})

	uf := NewUnionFind(g.Len())
	tree := NewGraph(g.Len())
	for _, v := range g.Vertices {
		tree.AddVertex(v)
	}

	for _, e := range edges {
		if uf.Union(e.From, e.To) {
			// Indices come from g, which tree mirrors.
			tree.link(e.From, e.To, e.Weight)
		}
	}

	if components := uf.Components(); components > 1 {
		log.Debug("Spanning forest rejected", "components", components, "candidate_edges", len(edges))
		return nil, &DisconnectedError{Components: components}
	}

	log.Debug("Spanning tree built", "vertices", tree.Len(), "edges", tree.Len()-1)
	return tree, nil
}
