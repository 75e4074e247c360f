package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"
)

// MapConfig selects the occupancy source: a bitmap or GeoJSON obstacles.
type MapConfig struct {
	Image             string       `yaml:"image"`
	// Threshold is the channel value below which a pixel is a wall. Zero would
	// mark no pixel at all, so it selects DefaultBlackThreshold instead.
	Threshold         uint8        `yaml:"threshold"`
	Obstacles         string       `yaml:"obstacles"`
	Bounds            *BoundingBox `yaml:"bounds"`
	SimplifyTolerance float64      `yaml:"simplify_tolerance"`
}

// Config is the planner configuration file.
type Config struct {
	Map MapConfig `yaml:"map"`

	Vertices    int     `yaml:"vertices"`
	Radius      float64 `yaml:"radius"`
	MaxAttempts int     `yaml:"max_attempts"`
	Workers     int     `yaml:"workers"`
	Seed        uint64  `yaml:"seed"`
	Retries     int     `yaml:"retries"`

	GraphOut string `yaml:"graph_out"`
	TreeOut  string `yaml:"tree_out"`
	PathOut  string `yaml:"path_out"`

	Listen string `yaml:"listen"`
}

// DefaultConfig returns the settings used when no file is given.
func DefaultConfig() Config {
	return Config{
		Map: MapConfig{
			Image:     "data/map.jpg",
			Threshold: DefaultBlackThreshold,
		},
		Vertices: 300,
		Radius:   80,
		Retries:  3,
		GraphOut: "data/graph.csv",
		TreeOut:  "data/tree.csv",
		PathOut:  "data/path.csv",
		Listen:   ":8080",
	}
}

// LoadConfig reads the YAML configuration file using strict parsing.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig() // Start with defaults

	if path == "" {
		return cfg, nil
	}

	file, err := os.Open(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to open config: %w", err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)

	if err := decoder.Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("YAML syntax error in config: %w", err)
	}

	return cfg, nil
}

// Sampler extracts the roadmap parameters.
func (c Config) Sampler() SamplerConfig {
	return SamplerConfig{
		NumVertices:      c.Vertices,
		ConnectionRadius: c.Radius,
		MaxAttempts:      c.MaxAttempts,
		Workers:          c.Workers,
	}
}

// OpenOracle builds the occupancy oracle named by the map section.
// Obstacles take precedence over an image when both are set.
func (c Config) OpenOracle() (Oracle, error) {
	switch {
	case c.Map.Obstacles != "":
		polygons, err := LoadObstacles(c.Map.Obstacles, c.Map.SimplifyTolerance)
		if err != nil {
			return nil, err
		}
		bounds := ObstacleBounds(polygons)
		if c.Map.Bounds != nil {
			bounds = *c.Map.Bounds
		}
		m := NewPolygonMap(bounds, polygons)
		log.Debug("Using polygon map", "bounds", bounds, "obstacles", len(m.Obstacles()))
		return m, nil
	case c.Map.Image != "":
		threshold := c.Map.Threshold
		if threshold == 0 {
			threshold = DefaultBlackThreshold
		}
		return LoadImageMap(c.Map.Image, threshold)
	default:
		return nil, errors.New("config: map.image or map.obstacles is required")
	}
}
