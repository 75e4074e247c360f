package main

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteGraphCSV_Format(t *testing.T) {
	g := graphOf(t, []Point{{0, 0}, {3, 4}, {1.005, 2.5}},
		UndirectedEdge{From: 1, To: 0, Weight: 5},
		UndirectedEdge{From: 0, To: 2, Weight: math.Pi},
	)

	var buf bytes.Buffer
	require.NoError(t, WriteGraphCSV(&buf, g))

	assert.Equal(t, strings.Join([]string{
		"x1,y1,x2,y2,weight",
		"0.00,0.00,3.00,4.00,5.0000",
		"0.00,0.00,1.00,2.50,3.1416",
		"",
	}, "\n"), buf.String())
}

func TestGraphCSV_RoundTrip(t *testing.T) {
	oracle := walledField()
	roadmap, err := BuildRoadmap(oracle, SamplerConfig{NumVertices: 60, ConnectionRadius: 30}, seeded(21))
	require.NoError(t, err)
	tree, err := Kruskal(roadmap)
	if err != nil {
		// Only the edge set matters here; the dense roadmap works as well.
		tree = roadmap
	}

	path := filepath.Join(t.TempDir(), "tree.csv")
	require.NoError(t, SaveGraphCSV(tree, path))
	loaded, err := LoadGraphCSV(path)
	require.NoError(t, err)

	round := func(p Point) Point {
		return Point{X: math.Round(p.X*100) / 100, Y: math.Round(p.Y*100) / 100}
	}
	type key struct{ a, b Point }
	canonical := func(g *Graph, snap func(Point) Point) map[key]float64 {
		out := make(map[key]float64)
		for _, e := range g.UndirectedEdges() {
			a, b := snap(g.Vertices[e.From]), snap(g.Vertices[e.To])
			if b.X < a.X || (b.X == a.X && b.Y < a.Y) {
				a, b = b, a
			}
			out[key{a, b}] = e.Weight
		}
		return out
	}

	want := canonical(tree, round)
	got := canonical(loaded, func(p Point) Point { return p })
	require.Len(t, got, len(want))
	for k, w := range want {
		require.Contains(t, got, k)
		assert.InDelta(t, w, got[k], 5e-5)
	}

	// Every vertex that carries an edge survives the round trip.
	connected := 0
	for i := range tree.Vertices {
		if len(tree.Adj[i]) > 0 {
			connected++
		}
	}
	assert.Equal(t, connected, loaded.Len())
	assert.Equal(t, tree.EdgeCount(), loaded.EdgeCount())
}

func TestReadGraphCSV_DeduplicatesVertices(t *testing.T) {
	input := "x1,y1,x2,y2,weight\n0,0,1,0,1\n1,0,1,1,1\n0,0,1,1,1.4142\n"
	g, err := ReadGraphCSV(strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, []Point{{0, 0}, {1, 0}, {1, 1}}, g.Vertices)
	assert.Equal(t, 3, g.EdgeCount())
	assert.Equal(t, []Edge{{To: 1, Weight: 1}, {To: 2, Weight: 1.4142}}, g.Adj[0])
}

func TestReadGraphCSV_Errors(t *testing.T) {
	_, err := ReadGraphCSV(strings.NewReader("x1,y1,x2,y2,weight\n0,0,abc,0,1\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "row 2")
	assert.Contains(t, err.Error(), "x2")

	_, err = ReadGraphCSV(strings.NewReader("x1,y1,x2,y2,weight\n0,0,1\n"))
	assert.Error(t, err)

	g, err := ReadGraphCSV(strings.NewReader(""))
	require.NoError(t, err)
	assert.Zero(t, g.Len())
}

func TestLoadGraphCSV_MissingFile(t *testing.T) {
	_, err := LoadGraphCSV(filepath.Join(t.TempDir(), "nope.csv"))
	assert.Error(t, err)
}

func TestLoadExistingTree(t *testing.T) {
	dir := t.TempDir()

	tree, err := loadExistingTree(filepath.Join(dir, "absent.csv"))
	require.NoError(t, err)
	assert.Nil(t, tree)

	corrupt := filepath.Join(dir, "corrupt.csv")
	require.NoError(t, os.WriteFile(corrupt, []byte("x1,y1,x2,y2,weight\n0,0,oops,1,1\n"), 0o644))
	tree, err = loadExistingTree(corrupt)
	assert.Error(t, err)
	assert.Nil(t, tree)

	valid := filepath.Join(dir, "tree.csv")
	require.NoError(t, os.WriteFile(valid, []byte("x1,y1,x2,y2,weight\n0,0,1,0,1\n"), 0o644))
	tree, err = loadExistingTree(valid)
	require.NoError(t, err)
	assert.Equal(t, 2, tree.Len())
}

func TestWritePathCSV(t *testing.T) {
	g := graphOf(t, []Point{{0, 0}, {1.5, 2}, {3.25, 4}})

	var buf bytes.Buffer
	require.NoError(t, WritePathCSV(&buf, g, []int{2, 1, 0}))
	assert.Equal(t, "x,y\n3.25,4\n1.5,2\n0,0\n", buf.String())

	path := filepath.Join(t.TempDir(), "path.csv")
	require.NoError(t, SavePathCSV(g, []int{0}, path))
}
