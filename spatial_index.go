package main

import (
	"math"
	"sort"

	"github.com/dhconnelly/rtreego"
	"github.com/paulmach/orb"
)

// minExtent pads degenerate boxes; rtreego rejects zero-length sides.
const minExtent = 1e-9

// obstacleEntry wraps a polygon for R-tree storage
type obstacleEntry struct {
	polygon orb.Polygon
	bbox    rtreego.Rect
}

// Bounds implements rtreego.Spatial interface
func (e *obstacleEntry) Bounds() rtreego.Rect {
	return e.bbox
}

// obstacleIndex answers "which obstacles could contain this point".
type obstacleIndex struct {
	tree *rtreego.Rtree
	size int
}

func newObstacleIndex(polygons []orb.Polygon) *obstacleIndex {
	tree := rtreego.NewTree(2, 25, 50) // 2D, min 25, max 50 entries per node

	size := 0
	for _, polygon := range polygons {
		if len(polygon) == 0 || len(polygon[0]) == 0 {
			continue
		}
		bbox, err := rectFromBound(polygon.Bound())
		if err != nil {
			continue
		}
		tree.Insert(&obstacleEntry{polygon: polygon, bbox: bbox})
		size++
	}

	return &obstacleIndex{tree: tree, size: size}
}

// candidates returns the obstacles whose bounding box covers p.
func (idx *obstacleIndex) candidates(p Point) []orb.Polygon {
	if idx.size == 0 {
		return nil
	}
	results := idx.tree.SearchIntersect(rtreego.Point{p.X, p.Y}.ToRect(minExtent))
	polygons := make([]orb.Polygon, 0, len(results))
	for _, item := range results {
		polygons = append(polygons, item.(*obstacleEntry).polygon)
	}
	return polygons
}

func rectFromBound(b orb.Bound) (rtreego.Rect, error) {
	return rtreego.NewRect(
		rtreego.Point{b.Min.X(), b.Min.Y()},
		[]float64{
			math.Max(b.Max.X()-b.Min.X(), minExtent),
			math.Max(b.Max.Y()-b.Min.Y(), minExtent),
		},
	)
}

// vertexEntry is a roadmap vertex stored in the R-tree.
type vertexEntry struct {
	index int
	point Point
}

func (e *vertexEntry) Bounds() rtreego.Rect {
	return rtreego.Point{e.point.X, e.point.Y}.ToRect(minExtent)
}

// vertexIndex narrows the connection phase to vertices inside the radius box.
type vertexIndex struct {
	tree *rtreego.Rtree
}

func newVertexIndex(vertices []Point) *vertexIndex {
	objs := make([]rtreego.Spatial, 0, len(vertices))
	for i, p := range vertices {
		objs = append(objs, &vertexEntry{index: i, point: p})
	}
	// Bulk loading keeps the tree balanced for a fixed vertex set.
	return &vertexIndex{tree: rtreego.NewTree(2, 25, 50, objs...)}
}

// within returns the indices greater than from whose vertex lies within
// radius of center, in ascending order.
func (idx *vertexIndex) within(center Point, radius float64, from int) []int {
	box, err := rtreego.NewRect(
		rtreego.Point{center.X - radius, center.Y - radius},
		[]float64{2 * radius, 2 * radius},
	)
	if err != nil {
		return nil
	}

	results := idx.tree.SearchIntersect(box)
	out := make([]int, 0, len(results))
	for _, item := range results {
		v := item.(*vertexEntry)
		if v.index > from && center.Distance(v.point) <= radius {
			out = append(out, v.index)
		}
	}
	sort.Ints(out)
	return out
}
