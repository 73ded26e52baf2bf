package main

import (
	"fmt"
	"os"

	yml "gopkg.in/yaml.v3"
)

// Config captures the yaml description of a driver configuration.
type Config struct {
	Filename string `yaml:"-"`

	// Svnlook names the executable to invoke, default "svnlook".
	Svnlook string `yaml:"svnlook,omitempty"`

	// Stderr selects the stderr policy: "suppress" or "inherit".
	Stderr string `yaml:"stderr,omitempty"`

	// Start and Stop bound the revision window walked by 'log'.
	// Stop of -1 means the head revision.
	Start int `yaml:"start-revision,omitempty"`
	Stop  int `yaml:"stop-revision,omitempty"`
}

// NewConfig returns a Config populated from the yaml definition in the
// given file. An empty filename yields the defaults.
func NewConfig(filename string) (*Config, error) {
	cfg := &Config{
		Start: 1,
		Stop:  -1,
	}

	if filename != "" {
		f, err := os.ReadFile(filename)
		if err != nil {
			return nil, err
		}
		if err := yml.Unmarshal(f, cfg); err != nil {
			return nil, fmt.Errorf("%s: %w", filename, err)
		}
	}

	cfg.Filename = filename

	return cfg, nil
}
