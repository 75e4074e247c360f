package main

import (
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// walledField has a wall down the middle with a gap near the top.
func walledField() fieldOracle {
	return openField(100, 100,
		BoundingBox{MinX: 48, MinY: 0, MaxX: 52, MaxY: 80},
		BoundingBox{MinX: 10, MinY: 10, MaxX: 30, MaxY: 30},
	)
}

func seeded(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed))
}

func TestBuildRoadmap_ConnectionValidity(t *testing.T) {
	oracle := walledField()
	cfg := SamplerConfig{NumVertices: 150, ConnectionRadius: 20}

	g, err := BuildRoadmap(oracle, cfg, seeded(3))
	require.NoError(t, err)
	require.Equal(t, 150, g.Len())
	require.Len(t, g.Adj, g.Len())

	steps := CollisionSteps(cfg.ConnectionRadius)
	for i, p := range g.Vertices {
		assert.False(t, oracle.IsObstructed(p), "vertex %d is obstructed", i)
		assert.True(t, p.X >= 0 && p.X <= 100 && p.Y >= 0 && p.Y <= 100, "vertex %d out of bounds", i)

		for _, e := range g.Adj[i] {
			q := g.Vertices[e.To]
			assert.LessOrEqual(t, p.Distance(q), cfg.ConnectionRadius)
			assert.Equal(t, p.Distance(q), e.Weight)
			assert.False(t, oracle.IsPathColliding(p, q, steps), "edge %d-%d collides", i, e.To)
			assert.Contains(t, g.Adj[e.To], Edge{To: i, Weight: e.Weight}, "edge %d-%d is one-way", i, e.To)
		}
	}
}

func TestBuildRoadmap_MatchesAllPairsScan(t *testing.T) {
	oracle := walledField()
	cfg := SamplerConfig{NumVertices: 120, ConnectionRadius: 25, Workers: 4}

	g, err := BuildRoadmap(oracle, cfg, seeded(11))
	require.NoError(t, err)

	want := NewGraph(g.Len())
	for _, p := range g.Vertices {
		want.AddVertex(p)
	}
	steps := CollisionSteps(cfg.ConnectionRadius)
	for i := 0; i < want.Len(); i++ {
		for j := i + 1; j < want.Len(); j++ {
			p, q := want.Vertices[i], want.Vertices[j]
			d := p.Distance(q)
			if d <= cfg.ConnectionRadius && !oracle.IsPathColliding(p, q, steps) {
				require.NoError(t, want.AddUndirectedEdge(i, j, d))
			}
		}
	}

	assert.Equal(t, want.Adj, g.Adj)
}

func TestBuildRoadmap_DeterministicForSeedAndWorkers(t *testing.T) {
	oracle := walledField()

	sequential, err := BuildRoadmap(oracle, SamplerConfig{NumVertices: 80, ConnectionRadius: 30, Workers: 1}, seeded(5))
	require.NoError(t, err)
	parallel, err := BuildRoadmap(oracle, SamplerConfig{NumVertices: 80, ConnectionRadius: 30, Workers: 8}, seeded(5))
	require.NoError(t, err)

	assert.Equal(t, sequential, parallel)

	other, err := BuildRoadmap(oracle, SamplerConfig{NumVertices: 80, ConnectionRadius: 30}, seeded(6))
	require.NoError(t, err)
	assert.NotEqual(t, sequential.Vertices, other.Vertices)
}

func TestBuildRoadmap_SamplingExhausted(t *testing.T) {
	blocked := openField(10, 10, BoundingBox{MinX: -1, MinY: -1, MaxX: 11, MaxY: 11})

	_, err := BuildRoadmap(blocked, SamplerConfig{NumVertices: 5, ConnectionRadius: 3, MaxAttempts: 250}, seeded(1))
	require.ErrorIs(t, err, ErrSamplingExhausted)

	var exhausted *SamplingExhaustedError
	require.True(t, errors.As(err, &exhausted))
	assert.Equal(t, 0, exhausted.Accepted)
	assert.Equal(t, 5, exhausted.Requested)
	assert.Equal(t, 250, exhausted.Attempts)
}

func TestBuildRoadmap_DefaultAttemptCap(t *testing.T) {
	blocked := openField(10, 10, BoundingBox{MinX: -1, MinY: -1, MaxX: 11, MaxY: 11})

	_, err := BuildRoadmap(blocked, SamplerConfig{NumVertices: 2, ConnectionRadius: 3}, seeded(1))
	var exhausted *SamplingExhaustedError
	require.True(t, errors.As(err, &exhausted))
	assert.Equal(t, 2*defaultAttemptFactor, exhausted.Attempts)
}

func TestBuildRoadmap_InvalidConfig(t *testing.T) {
	oracle := openField(10, 10)
	for _, cfg := range []SamplerConfig{
		{NumVertices: 10, ConnectionRadius: 0},
		{NumVertices: 10, ConnectionRadius: -1},
		{NumVertices: -1, ConnectionRadius: 5},
		{NumVertices: 10, ConnectionRadius: 5, MaxAttempts: -3},
	} {
		_, err := BuildRoadmap(oracle, cfg, seeded(1))
		assert.ErrorIs(t, err, ErrInvalidConfig, "%+v", cfg)
	}
}

func TestBuildRoadmap_ZeroVertices(t *testing.T) {
	g, err := BuildRoadmap(openField(10, 10), SamplerConfig{ConnectionRadius: 5}, seeded(1))
	require.NoError(t, err)
	assert.Zero(t, g.Len())
}

func TestNewRand_SeedIsReproducible(t *testing.T) {
	assert.Equal(t, NewRand(99).Float64(), NewRand(99).Float64())
}
