package main

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// PolygonMap is an occupancy map made of a navigable rectangle and
// polygonal obstacles, e.g. no-fly zones loaded from GeoJSON.
type PolygonMap struct {
	bounds    BoundingBox
	obstacles []orb.Polygon
	index     *obstacleIndex
}

// NewPolygonMap indexes the obstacles for point queries.
func NewPolygonMap(bounds BoundingBox, obstacles []orb.Polygon) *PolygonMap {
	return &PolygonMap{
		bounds:    bounds,
		obstacles: obstacles,
		index:     newObstacleIndex(obstacles),
	}
}

// Bounds implements Oracle.
func (m *PolygonMap) Bounds() BoundingBox {
	return m.bounds
}

// Obstacles returns the indexed polygons.
func (m *PolygonMap) Obstacles() []orb.Polygon {
	return m.obstacles
}

// IsObstructed implements Oracle. Points outside the closed rectangle are obstructed.
func (m *PolygonMap) IsObstructed(p Point) bool {
	if !m.bounds.orb().Contains(p.orb()) {
		return true
	}
	for _, polygon := range m.index.candidates(p) {
		if planar.PolygonContains(polygon, p.orb()) {
			return true
		}
	}
	return false
}

// IsPathColliding implements Oracle.
func (m *PolygonMap) IsPathColliding(start, end Point, steps int) bool {
	return segmentColliding(m.IsObstructed, start, end, steps)
}
