package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/paulmach/orb/planar"
	"github.com/paulmach/orb/simplify"
)

// LoadObstacles reads obstacle polygons from a GeoJSON file, or from every
// *.geojson file when path is a directory. Files that fail to parse are
// reported as errors rather than skipped.
func LoadObstacles(path string, tolerance float64) ([]orb.Polygon, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat obstacles: %w", err)
	}

	files := []string{path}
	if info.IsDir() {
		files, err = filepath.Glob(filepath.Join(path, "*.geojson"))
		if err != nil {
			return nil, err
		}
	}

	log.Debug("Loading obstacles", "files", len(files))

	var all []orb.Polygon
	for _, file := range files {
		data, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", file, err)
		}
		polygons, err := ParseObstacles(data)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", file, err)
		}
		log.Debug("Loaded obstacles", "file", filepath.Base(file), "polygons", len(polygons))
		all = append(all, polygons...)
	}

	if tolerance > 0 {
		all = simplifyObstacles(all, tolerance)
	}
	kept := dropContainedObstacles(all)
	log.Info("Obstacles loaded", "polygons", len(kept), "contained", len(all)-len(kept))
	return kept, nil
}

// ParseObstacles extracts Polygon and MultiPolygon geometries from a
// GeoJSON FeatureCollection. Other geometry types are ignored.
func ParseObstacles(data []byte) ([]orb.Polygon, error) {
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, err
	}

	var polygons []orb.Polygon
	for _, feature := range fc.Features {
		switch g := feature.Geometry.(type) {
		case orb.Polygon:
			polygons = append(polygons, g)
		case orb.MultiPolygon:
			polygons = append(polygons, g...)
		}
	}
	return polygons, nil
}

// ObstacleBounds is the rectangle covering every obstacle, used when the
// configuration does not name explicit bounds.
func ObstacleBounds(polygons []orb.Polygon) BoundingBox {
	if len(polygons) == 0 {
		return BoundingBox{}
	}
	b := polygons[0].Bound()
	for _, p := range polygons[1:] {
		b = b.Union(p.Bound())
	}
	lo, hi := pointFromOrb(b.Min), pointFromOrb(b.Max)
	return BoundingBox{MinX: lo.X, MinY: lo.Y, MaxX: hi.X, MaxY: hi.Y}
}

// simplifyObstacles applies Douglas-Peucker to every ring.
func simplifyObstacles(polygons []orb.Polygon, tolerance float64) []orb.Polygon {
	s := simplify.DouglasPeucker(tolerance)
	out := make([]orb.Polygon, 0, len(polygons))
	for _, p := range polygons {
		simplified, ok := s.Simplify(p.Clone()).(orb.Polygon)
		if !ok || len(simplified) == 0 || len(simplified[0]) < 4 {
			// Too small to simplify without collapsing; keep it as is.
			out = append(out, p)
			continue
		}
		out = append(out, simplified)
	}
	return out
}

// dropContainedObstacles removes polygons that lie entirely inside another
// convex, hole-free polygon. Only then is the covered area a strict subset.
func dropContainedObstacles(polygons []orb.Polygon) []orb.Polygon {
	if len(polygons) <= 1 {
		return polygons
	}

	contained := make([]bool, len(polygons))
	for i := range polygons {
		if contained[i] {
			continue
		}
		for j := range polygons {
			if i == j || contained[j] {
				continue
			}
			if isPolygonContainedIn(polygons[i], polygons[j]) {
				contained[i] = true
				break
			}
		}
	}

	result := make([]orb.Polygon, 0, len(polygons))
	for i, p := range polygons {
		if !contained[i] {
			result = append(result, p)
		}
	}
	return result
}

// isPolygonContainedIn checks if every outer-ring vertex of a lies inside b.
// That implies containment only for a convex b without holes, so any other b
// never contains anything.
func isPolygonContainedIn(a, b orb.Polygon) bool {
	if len(a) == 0 || len(b) != 1 || len(a[0]) == 0 {
		return false
	}
	if !isConvexRing(b[0]) {
		return false
	}

	// Quick bounding box check first
	ab, bb := a.Bound(), b.Bound()
	if !bb.Contains(ab.Min) || !bb.Contains(ab.Max) {
		return false
	}

	for _, vertex := range a[0] {
		if !planar.PolygonContains(b, vertex) {
			return false
		}
	}
	return true
}

// isConvexRing reports whether every turn along the ring has the same
// orientation. Collinear vertices are ignored.
func isConvexRing(r orb.Ring) bool {
	n := len(r)
	if n > 1 && r[0] == r[n-1] {
		n--
	}
	if n < 3 {
		return false
	}

	sign := 0
	for i := 0; i < n; i++ {
		a, b, c := r[i], r[(i+1)%n], r[(i+2)%n]
		cross := (b[0]-a[0])*(c[1]-b[1]) - (b[1]-a[1])*(c[0]-b[0])
		switch {
		case cross > 0:
			if sign < 0 {
				return false
			}
			sign = 1
		case cross < 0:
			if sign > 0 {
				return false
			}
			sign = -1
		}
	}
	return sign != 0
}
