// Package config loads and validates the YAML run configuration that ties
// a graph file, updater columns, proposal parameters, constraint bounds,
// and chain settings together for one sampling session.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/redistrict/partition"
)

// ErrConfig indicates a missing or invalid configuration value.
var ErrConfig = errors.New("config: invalid configuration")

// Config is the root of the YAML document.
type Config struct {
	Graph       Graph       `yaml:"graph"`
	Elections   []Election  `yaml:"elections,omitempty"`
	ReCom       ReCom       `yaml:"recom"`
	Constraints Constraints `yaml:"constraints"`
	Chain       Chain       `yaml:"chain"`
	Ensemble    Ensemble    `yaml:"ensemble,omitempty"`
}

// Graph locates the adjacency JSON and names the bookkeeping columns.
type Graph struct {
	// Path of the NetworkX JSON adjacency file.
	Path string `yaml:"path"`
	// PopCol is the node attribute holding population counts.
	PopCol string `yaml:"pop_col"`
	// AssignmentCol is the node attribute holding the initial plan.
	AssignmentCol string `yaml:"assignment_col"`
}

// Election configures one election updater.
type Election struct {
	Name    string            `yaml:"name"`
	Parties map[string]string `yaml:"parties"` // party → vote column
}

// ReCom holds the recombination proposal parameters.
type ReCom struct {
	// Epsilon is the allowed fractional population deviation per cut side.
	Epsilon float64 `yaml:"epsilon"`
	// NodeRepeats is the spanning-tree attempts per merged district pair.
	NodeRepeats int `yaml:"node_repeats"`
}

// Constraints holds the validity bounds applied to candidates.
type Constraints struct {
	// PopEpsilon is the allowed fractional deviation from ideal population.
	PopEpsilon float64 `yaml:"pop_epsilon"`
	// CutEdgeFactor bounds cut edges at factor × the initial plan's count;
	// zero disables the compactness bound.
	CutEdgeFactor float64 `yaml:"cut_edge_factor,omitempty"`
}

// Chain holds the driver settings.
type Chain struct {
	TotalSteps  int   `yaml:"total_steps"`
	Seed        int64 `yaml:"seed,omitempty"`
	RetryBudget int   `yaml:"retry_budget,omitempty"`
}

// Ensemble holds the parallel-collection settings.
type Ensemble struct {
	Runs        int `yaml:"runs,omitempty"`
	Parallelism int `yaml:"parallelism,omitempty"`
}

// Load reads and validates the YAML file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %v", ErrConfig, path, err)
	}
	return Parse(data)
}

// Parse decodes and validates a YAML document.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks every required field and value range.
func (c *Config) Validate() error {
	switch {
	case c.Graph.Path == "":
		return fmt.Errorf("%w: graph.path is required", ErrConfig)
	case c.Graph.PopCol == "":
		return fmt.Errorf("%w: graph.pop_col is required", ErrConfig)
	case c.Graph.AssignmentCol == "":
		return fmt.Errorf("%w: graph.assignment_col is required", ErrConfig)
	case c.ReCom.Epsilon < 0:
		return fmt.Errorf("%w: recom.epsilon must be non-negative", ErrConfig)
	case c.ReCom.NodeRepeats < 1:
		return fmt.Errorf("%w: recom.node_repeats must be at least 1", ErrConfig)
	case c.Constraints.PopEpsilon < 0:
		return fmt.Errorf("%w: constraints.pop_epsilon must be non-negative", ErrConfig)
	case c.Constraints.CutEdgeFactor < 0:
		return fmt.Errorf("%w: constraints.cut_edge_factor must be non-negative", ErrConfig)
	case c.Chain.TotalSteps < 1:
		return fmt.Errorf("%w: chain.total_steps must be positive", ErrConfig)
	case c.Chain.RetryBudget < 0:
		return fmt.Errorf("%w: chain.retry_budget must be non-negative", ErrConfig)
	case c.Ensemble.Runs < 0:
		return fmt.Errorf("%w: ensemble.runs must be non-negative", ErrConfig)
	}
	for i, e := range c.Elections {
		if e.Name == "" {
			return fmt.Errorf("%w: elections[%d].name is required", ErrConfig, i)
		}
		if len(e.Parties) == 0 {
			return fmt.Errorf("%w: election %q has no parties", ErrConfig, e.Name)
		}
	}
	return nil
}

// IdealPopulation returns p's total population divided by its district
// count, read from the named Tally updater.
func (c *Config) IdealPopulation(p *partition.Partition, tallyName string) (float64, error) {
	pops, err := p.Tally(tallyName)
	if err != nil {
		return 0, err
	}
	var total float64
	for _, pop := range pops {
		total += pop
	}
	return total / float64(p.NumDistricts()), nil
}
