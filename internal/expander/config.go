// Package expander is the bundled host integration: it scans template
// files for comp![ ... ] markers, runs the translation pipeline on each
// fragment, and splices the emitted expressions back into Go source.
//
// The expander is deliberately a thin collaborator around the core: models
// the host macro facility as "fragment in, expression or diagnostics out",
// and owns everything the core does not (file I/O, marker delimiters,
// import splicing, configuration).
package expander

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/ShihHsuanChen/gocomp/internal/config"
	"github.com/ShihHsuanChen/gocomp/internal/emitter"
)

// Config represents the top-level gocomp.yaml configuration.
type Config struct {
	// ElemType is the element type of every emitted iter.Seq in the
	// project. The translator cannot infer it from opaque expressions,
	// so projects with homogeneous comprehensions can pin it here.
	ElemType string `yaml:"elem_type,omitempty"`

	// Runtime selects the iterator runtime the emitted loops range over.
	Runtime RuntimeConfig `yaml:"runtime,omitempty"`
}

// RuntimeConfig names the runtime package for emitted code.
type RuntimeConfig struct {
	// Import is the package import path. Defaults to the bundled seq
	// runtime.
	Import string `yaml:"import,omitempty"`

	// Alias is the package name emitted code refers to the runtime by.
	// Only needed when it differs from the import path's base name.
	Alias string `yaml:"alias,omitempty"`
}

// LoadConfig reads gocomp.yaml from dir. A missing file is not an error:
// it yields the zero config, i.e. all defaults.
func LoadConfig(dir string) (*Config, error) {
	path := filepath.Join(dir, config.ConfigFileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &cfg, nil
}

// EmitterOptions maps the file configuration onto emitter knobs.
func (c *Config) EmitterOptions() emitter.Options {
	return emitter.Options{
		ElemType:      c.ElemType,
		RuntimeImport: c.Runtime.Import,
		RuntimeAlias:  c.Runtime.Alias,
	}
}
