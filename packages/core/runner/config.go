package runner

import (
	"errors"
	"fmt"
	"io"
	"time"

	"gopkg.in/yaml.v3"
)

// RunConfig is the declarative run configuration. The engine does not
// touch the filesystem; hosts hand it a reader over whatever source they
// own.
type RunConfig struct {
	Parallel    bool     `yaml:"parallel,omitempty"`
	Concurrency int      `yaml:"concurrency,omitempty"`
	Bail        bool     `yaml:"bail,omitempty"`
	Retries     int      `yaml:"retries,omitempty"`
	Timeout     int      `yaml:"timeout,omitempty"` // milliseconds
	Tags        []string `yaml:"tags,omitempty"`
	NamePattern string   `yaml:"name,omitempty"`
}

// LoadConfig decodes a YAML run configuration. An empty document yields
// the zero config.
func LoadConfig(r io.Reader) (*RunConfig, error) {
	var cfg RunConfig
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return &cfg, nil
		}
		return nil, fmt.Errorf("decoding run config: %w", err)
	}
	return &cfg, nil
}

// Apply folds the configuration onto a builder. Retries count extra
// attempts after the first, matching the usual retry knob.
func (c *RunConfig) Apply(b *Builder) *Builder {
	if c.Parallel {
		b = b.WithParallel(c.Concurrency)
	}
	if c.Bail {
		b = b.WithBail()
	}
	if c.Retries > 0 {
		b = b.WithRetry(c.Retries + 1)
	}
	if c.Timeout > 0 {
		b = b.WithTimeout(time.Duration(c.Timeout) * time.Millisecond)
	}
	if len(c.Tags) > 0 {
		b = b.WithTags(c.Tags...)
	}
	if c.NamePattern != "" {
		b = b.WithNamePattern(c.NamePattern)
	}
	return b
}
