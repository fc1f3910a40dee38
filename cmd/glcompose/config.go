package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/soypat/glcompose"
	"gopkg.in/yaml.v3"
)

// config is the YAML configuration file layout. Relative directories in a
// file are relative to the file's own directory.
type config struct {
	Version   string            `yaml:"version"`
	Chunks    string            `yaml:"chunks"`
	Materials string            `yaml:"materials"`
	Defines   map[string]string `yaml:"defines"`
	Output    string            `yaml:"output"`
}

func readConfig(path string) (cfg config, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	err = yaml.Unmarshal(data, &cfg)
	if err != nil {
		return cfg, fmt.Errorf("parsing %s: %w", path, err)
	}
	dir := filepath.Dir(path)
	for _, p := range []*string{&cfg.Chunks, &cfg.Materials, &cfg.Output} {
		if *p != "" && !filepath.IsAbs(*p) {
			*p = filepath.Join(dir, *p)
		}
	}
	return cfg, nil
}

// override replaces the fields of cfg with the non-zero fields of flags.
// Defines are merged with flags taking precedence.
func (cfg config) override(flags config) config {
	if flags.Version != "" {
		cfg.Version = flags.Version
	}
	if flags.Chunks != "" {
		cfg.Chunks = flags.Chunks
	}
	if flags.Materials != "" {
		cfg.Materials = flags.Materials
	}
	if flags.Output != "" {
		cfg.Output = flags.Output
	}
	if len(flags.Defines) > 0 {
		merged := make(map[string]string, len(cfg.Defines)+len(flags.Defines))
		for k, v := range cfg.Defines {
			merged[k] = v
		}
		for k, v := range flags.Defines {
			merged[k] = v
		}
		cfg.Defines = merged
	}
	return cfg
}

func (cfg config) validate() error {
	switch {
	case cfg.Version == "":
		return errors.New("missing shading language version, set \"version\" in the config or --glsl-version")
	case cfg.Chunks == "":
		return errors.New("missing chunk directory, set \"chunks\" in the config or --chunks")
	case cfg.Materials == "":
		return errors.New("missing material directory, set \"materials\" in the config or --materials")
	}
	return nil
}

// defines returns the configured defines sorted by name.
func (cfg config) defines() []glcompose.Define {
	defs := make([]glcompose.Define, 0, len(cfg.Defines))
	for name, value := range cfg.Defines {
		defs = append(defs, glcompose.Define{Name: name, Value: value})
	}
	sort.Slice(defs, func(i, j int) bool { return defs[i].Name < defs[j].Name })
	return defs
}

func (cfg config) catalogConfig() glcompose.CatalogConfig {
	return glcompose.CatalogConfig{
		Version:   cfg.Version,
		Chunks:    os.DirFS(cfg.Chunks),
		Materials: os.DirFS(cfg.Materials),
		Defines:   cfg.defines(),
		Logger:    logger,
	}
}

// mergedConfig merges the config file, if any, with the command line flags.
// The result is not validated.
func mergedConfig() (cfg config, err error) {
	if configPath != "" {
		cfg, err = readConfig(configPath)
		if err != nil {
			return cfg, err
		}
	}
	return cfg.override(flagCfg), nil
}

// resolveConfig returns the merged configuration and validates it.
func resolveConfig() (config, error) {
	cfg, err := mergedConfig()
	if err != nil {
		return cfg, err
	}
	return cfg, cfg.validate()
}
