package main

import (
	"errors"
	"fmt"
)

var (
	// ErrDisconnected is matched by DisconnectedError.
	ErrDisconnected = errors.New("roadmap is disconnected")

	// ErrOutOfBounds indicates a query coordinate outside the navigable rectangle.
	ErrOutOfBounds = errors.New("coordinate is outside the map bounds")

	// ErrObstructed indicates a query coordinate inside an obstacle.
	ErrObstructed = errors.New("coordinate is inside an obstacle")

	// ErrEmptyGraph is returned by queries against a graph with no vertices.
	ErrEmptyGraph = errors.New("graph has no vertices")

	// ErrNoPathFound means the search exhausted the graph without reaching the target.
	// On a spanning tree this only happens when the tree is stale or disconnected.
	ErrNoPathFound = errors.New("no path found")

	// ErrSamplingExhausted is matched by SamplingExhaustedError.
	ErrSamplingExhausted = errors.New("sampling attempts exhausted")

	// ErrInvalidConfig rejects sampler parameters that cannot produce a roadmap.
	ErrInvalidConfig = errors.New("invalid roadmap configuration")

	// ErrVertexOutOfRange is a caller contract breach: the index names no vertex.
	ErrVertexOutOfRange = errors.New("vertex index out of range")
)

// DisconnectedError reports how many components the roadmap split into.
// Regenerating the roadmap may succeed.
type DisconnectedError struct {
	Components int
}

func (e *DisconnectedError) Error() string {
	return fmt.Sprintf("roadmap is disconnected: %d components", e.Components)
}

func (e *DisconnectedError) Is(target error) bool {
	return target == ErrDisconnected
}

// SamplingExhaustedError is returned when rejection sampling hits its attempt cap.
type SamplingExhaustedError struct {
	Accepted  int
	Requested int
	Attempts  int
}

func (e *SamplingExhaustedError) Error() string {
	return fmt.Sprintf("sampling attempts exhausted: accepted %d of %d points after %d attempts",
		e.Accepted, e.Requested, e.Attempts)
}

func (e *SamplingExhaustedError) Is(target error) bool {
	return target == ErrSamplingExhausted
}
