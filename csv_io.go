package main

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"

	"github.com/charmbracelet/log"
)

var graphHeader = []string{"x1", "y1", "x2", "y2", "weight"}

// WriteGraphCSV writes one row per canonical edge: x1,y1,x2,y2,weight.
// Coordinates keep two decimals and weights four. Isolated vertices are not
// representable in this format.
func WriteGraphCSV(w io.Writer, g *Graph) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(graphHeader); err != nil {
		return err
	}

	for _, e := range g.UndirectedEdges() {
		p1, p2 := g.Vertices[e.From], g.Vertices[e.To]
		record := []string{
			strconv.FormatFloat(p1.X, 'f', 2, 64),
			strconv.FormatFloat(p1.Y, 'f', 2, 64),
			strconv.FormatFloat(p2.X, 'f', 2, 64),
			strconv.FormatFloat(p2.Y, 'f', 2, 64),
			strconv.FormatFloat(e.Weight, 'f', 4, 64),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// ReadGraphCSV rebuilds a graph from WriteGraphCSV output. Vertices are
// deduplicated by exact coordinates and each row becomes an undirected edge.
func ReadGraphCSV(r io.Reader) (*Graph, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(graphHeader)

	if _, err := cr.Read(); err != nil {
		if errors.Is(err, io.EOF) {
			return NewGraph(0), nil
		}
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	graph := NewGraph(0)
	pointToIdx := make(map[Point]int)
	vertex := func(p Point) int {
		if idx, ok := pointToIdx[p]; ok {
			return idx
		}
		idx := graph.AddVertex(p)
		pointToIdx[p] = idx
		return idx
	}

	for row := 2; ; row++ {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		var values [5]float64
		for i, field := range record {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("row %d, column %s: %w", row, graphHeader[i], err)
			}
			values[i] = v
		}

		u := vertex(Point{X: values[0], Y: values[1]})
		v := vertex(Point{X: values[2], Y: values[3]})
		if err := graph.AddUndirectedEdge(u, v, values[4]); err != nil {
			return nil, err
		}
	}

	return graph, nil
}

// WritePathCSV writes the coordinates of each path vertex, start to end.
func WritePathCSV(w io.Writer, g *Graph, path []int) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"x", "y"}); err != nil {
		return err
	}
	for _, p := range PathPoints(g, path) {
		record := []string{
			strconv.FormatFloat(p.X, 'f', -1, 64),
			strconv.FormatFloat(p.Y, 'f', -1, 64),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// SaveGraphCSV writes g to filename.
func SaveGraphCSV(g *Graph, filename string) error {
	return writeFile(filename, func(w io.Writer) error {
		return WriteGraphCSV(w, g)
	})
}

// LoadGraphCSV reads a graph from filename.
func LoadGraphCSV(filename string) (*Graph, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open graph: %w", err)
	}
	defer f.Close()

	g, err := ReadGraphCSV(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filename, err)
	}
	log.Debug("Graph loaded", "file", filename, "vertices", g.Len())
	return g, nil
}

// loadExistingTree loads a previously saved tree. A missing file yields a nil
// graph and no error; any other failure is returned.
func loadExistingTree(filename string) (*Graph, error) {
	g, err := LoadGraphCSV(filename)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return g, nil
}

// SavePathCSV writes the path to filename.
func SavePathCSV(g *Graph, path []int, filename string) error {
	return writeFile(filename, func(w io.Writer) error {
		return WritePathCSV(w, g, path)
	})
}

func writeFile(filename string, write func(io.Writer) error) (err error) {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("failed to close file: %w", cerr)
		}
	}()

	if err := write(f); err != nil {
		return fmt.Errorf("failed to write %s: %w", filename, err)
	}
	log.Debug("File written", "file", filename)
	return nil
}
