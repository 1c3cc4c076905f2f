package config

import (
	"errors"
	"fmt"

	"dario.cat/mergo"
)

// layer is one configuration source. name only shows up in errors.
type layer struct {
	name string
	cfg  *StructuredConfig
}

type configBuilder struct {
	args    []string
	environ map[string]string

	layers   []layer
	defaults *StructuredConfig
	errs     []error
}

// newConfigBuilder reads flags from args and variables from environ. A nil
// environ means the process environment.
func newConfigBuilder(args []string, environ map[string]string) *configBuilder {
	return &configBuilder{args: args, environ: environ}
}

func (b *configBuilder) add(name string, cfg *StructuredConfig, err error) *configBuilder {
	if err != nil {
		b.errs = append(b.errs, fmt.Errorf("%s: %w", name, err))
		return b
	}
	b.layers = append(b.layers, layer{name: name, cfg: cfg})
	return b
}

func (b *configBuilder) withEnv() *configBuilder {
	cfg := new(StructuredConfig)
	return b.add("env", cfg, parseEnvFrom(cfg, b.environ))
}

func (b *configBuilder) withFlags() *configBuilder {
	cfg, err := parseFlags(b.args)
	return b.add("flags", cfg, err)
}

// withJSON loads the file named by the last layer that sets a path.
func (b *configBuilder) withJSON() *configBuilder {
	path := b.jsonPath()
	if path == "" {
		return b
	}
	cfg, err := parseJSON(path)
	return b.add("json "+path, cfg, err)
}

func (b *configBuilder) withDefaults() *configBuilder {
	b.defaults = defaultConfig()
	return b
}

func (b *configBuilder) jsonPath() string {
	var path string
	for _, l := range b.layers {
		if l.cfg.JSONFilePath != "" {
			path = l.cfg.JSONFilePath
		}
	}
	return path
}

// build merges the layers in order with later non-zero fields winning, lets
// the defaults fill whatever is still zero and validates the result.
func (b *configBuilder) build() (*StructuredConfig, error) {
	if len(b.errs) > 0 {
		return nil, fmt.Errorf("error occurred during building config: %w", errors.Join(b.errs...))
	}

	cfg := new(StructuredConfig)
	for _, l := range b.layers {
		if err := mergo.Merge(cfg, l.cfg, mergo.WithOverride); err != nil {
			return nil, fmt.Errorf("error merging %s configs: %w", l.name, err)
		}
	}

	if b.defaults != nil {
		if err := mergo.Merge(cfg, b.defaults); err != nil {
			return nil, fmt.Errorf("error merging default configs: %w", err)
		}
	}

	return cfg, cfg.validate()
}
