package main

import (
	"math"

	"github.com/paulmach/orb"
)

// Point is a position on the navigable map, in map units (pixels for image maps).
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// BoundingBox is the navigable rectangle reported by an Oracle.
type BoundingBox struct {
	MinX float64 `json:"minX" yaml:"min_x"`
	MinY float64 `json:"minY" yaml:"min_y"`
	MaxX float64 `json:"maxX" yaml:"max_x"`
	MaxY float64 `json:"maxY" yaml:"max_y"`
}

// Distance calculates Euclidean distance between two points
func (p Point) Distance(other Point) float64 {
	dx := p.X - other.X
	dy := p.Y - other.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// Lerp returns the point at fraction t along the segment from p to other.
func (p Point) Lerp(other Point, t float64) Point {
	return Point{
		X: p.X + t*(other.X-p.X),
		Y: p.Y + t*(other.Y-p.Y),
	}
}

func (p Point) orb() orb.Point {
	return orb.Point{p.X, p.Y}
}

func pointFromOrb(p orb.Point) Point {
	return Point{X: p.X(), Y: p.Y()}
}

// Contains reports whether p lies inside the box. The max edges are exclusive.
func (b BoundingBox) Contains(p Point) bool {
	return p.X >= b.MinX && p.Y >= b.MinY && p.X < b.MaxX && p.Y < b.MaxY
}

// Width of the box along X.
func (b BoundingBox) Width() float64 { return b.MaxX - b.MinX }

// Height of the box along Y.
func (b BoundingBox) Height() float64 { return b.MaxY - b.MinY }

// Empty reports whether the box is inverted and holds no point at all.
func (b BoundingBox) Empty() bool {
	return b.MaxX < b.MinX || b.MaxY < b.MinY
}

func (b BoundingBox) orb() orb.Bound {
	return orb.Bound{
		Min: orb.Point{b.MinX, b.MinY},
		Max: orb.Point{b.MaxX, b.MaxY},
	}
}
