package main

import "math"

// Oracle answers obstruction queries against a navigable map.
// Implementations are read-only after construction and must be safe for
// concurrent callers, since the sampler checks segments from several workers.
type Oracle interface {
	// Bounds is the rectangle random samples are drawn from.
	Bounds() BoundingBox
	// IsObstructed reports whether p lies inside an obstacle.
	IsObstructed(p Point) bool
	// IsPathColliding samples steps+1 evenly spaced points on the segment,
	// endpoints included, and reports whether any of them is obstructed.
	IsPathColliding(start, end Point, steps int) bool
}

// CollisionSteps is the number of segment subdivisions used for a connection radius.
func CollisionSteps(radius float64) int {
	return int(math.Max(1, math.Ceil(radius/2)))
}

// segmentColliding walks the segment with the given obstruction test.
// Oracles share it so they agree on the sampling scheme.
func segmentColliding(obstructed func(Point) bool, start, end Point, steps int) bool {
	if steps < 1 {
		steps = 1
	}
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		if obstructed(start.Lerp(end, t)) {
			return true
		}
	}
	return false
}
