package search

import "fmt"

// Config tunes one Run. The yaml tags let the config package decode it.
type Config struct {
	// Seed derives every index source and parent selection.
	Seed int64 `yaml:"seed"`
	// Generations is the number of compile, evaluate and cull rounds.
	Generations int `yaml:"generations"`
	// PoolSize is the number of survivors kept after each cull.
	PoolSize int `yaml:"pool_size"`
	// Candidates is the number of compilations per generation.
	Candidates int `yaml:"candidates"`
	// Selection is the probability that a pool member parents a candidate.
	Selection float64 `yaml:"selection"`
	// Inherit is the per-draw probability of reusing a parent's index.
	Inherit float64 `yaml:"inherit"`
	// MaxNodes is the node budget of each compilation.
	MaxNodes int `yaml:"max_nodes"`
	// StepLimit caps each compilation's group attempts; 0 means unlimited.
	StepLimit int `yaml:"step_limit"`
	// MaxFailures is the number of failed compilations tolerated over the run.
	MaxFailures int `yaml:"max_failures"`
	// Workers bounds concurrent compilations.
	Workers int `yaml:"workers"`
}

// DefaultConfig returns the tuning used when a field is left unset.
func DefaultConfig() Config {
	return Config{
		Seed:        1,
		Generations: 4,
		PoolSize:    4,
		Candidates:  8,
		Selection:   0.2,
		Inherit:     0.8,
		MaxNodes:    1024,
		StepLimit:   100_000,
		MaxFailures: 10,
		Workers:     4,
	}
}

// Validate reports the first field out of range, wrapped in ErrBadConfig.
func (c Config) Validate() error {
	switch {
	case c.Generations < 1:
		return fmt.Errorf("%w: generations %d < 1", ErrBadConfig, c.Generations)
	case c.PoolSize < 1:
		return fmt.Errorf("%w: pool_size %d < 1", ErrBadConfig, c.PoolSize)
	case c.Candidates < 1:
		return fmt.Errorf("%w: candidates %d < 1", ErrBadConfig, c.Candidates)
	case c.Selection < 0 || c.Selection > 1:
		return fmt.Errorf("%w: selection %g not in [0, 1]", ErrBadConfig, c.Selection)
	case c.Inherit < 0 || c.Inherit > 1:
		return fmt.Errorf("%w: inherit %g not in [0, 1]", ErrBadConfig, c.Inherit)
	case c.MaxNodes < 1:
		return fmt.Errorf("%w: max_nodes %d < 1", ErrBadConfig, c.MaxNodes)
	case c.StepLimit < 0:
		return fmt.Errorf("%w: step_limit %d < 0", ErrBadConfig, c.StepLimit)
	case c.MaxFailures < 0:
		return fmt.Errorf("%w: max_failures %d < 0", ErrBadConfig, c.MaxFailures)
	case c.Workers < 1:
		return fmt.Errorf("%w: workers %d < 1", ErrBadConfig, c.Workers)
	}

	return nil
}
