// Package config provides configuration management for the umlgen CLI.
package config

import (
	"fmt"
	"maps"
	"slices"

	"github.com/syssam/umlgen/compiler/gen"
	"github.com/syssam/umlgen/compiler/load"
)

// Default configuration values.
const (
	DefaultBackend    = "sql"
	DefaultOutput     = ".umlgen"
	DefaultFormat     = "json"
	DefaultPagination = "no"
)

// Config holds all CLI configuration options.
type Config struct {
	Backend string `koanf:"backend"`
	// Editor is used when the exporter of a document cannot be detected.
	Editor      string            `koanf:"editor"`
	Output      string            `koanf:"output"`
	Format      string            `koanf:"format"`
	GoPackage   string            `koanf:"go_package"`
	GoOutput    string            `koanf:"go_output"`
	Pagination  string            `koanf:"pagination"`
	Paginations map[string]string `koanf:"paginations"`
	Features    []string          `koanf:"features"`
	Manifest    bool              `koanf:"manifest"`
	Workers     int               `koanf:"workers"`
	Verbose     bool              `koanf:"verbose"`
}

// FallbackEditor returns the configured editor, zero if none is set.
func (c *Config) FallbackEditor() (load.Editor, error) {
	if c.Editor == "" {
		return 0, nil
	}
	return load.ParseEditor(c.Editor)
}

// GenOptions converts the configuration to generation options.
func (c *Config) GenOptions() ([]gen.Option, error) {
	opts := []gen.Option{
		gen.WithBackend(c.Backend),
		gen.WithTarget(c.Output),
		gen.WithFormat(c.Format),
		gen.WithPagination(c.Pagination),
	}
	for _, entity := range slices.Sorted(maps.Keys(c.Paginations)) {
		opts = append(opts, gen.WithEntityPagination(entity, c.Paginations[entity]))
	}
	for _, name := range c.Features {
		f, ok := feature(name)
		if !ok {
			return nil, fmt.Errorf("unknown feature %q", name)
		}
		opts = append(opts, gen.WithFeatures(f))
	}
	if !c.Manifest {
		opts = append(opts, gen.WithoutFeatures(gen.FeatureOrderManifest.Name))
	}
	if c.GoPackage != "" {
		opts = append(opts, gen.WithPackage(c.GoPackage))
	}
	if c.GoOutput != "" {
		opts = append(opts, gen.WithGoTarget(c.GoOutput))
	}
	if c.Workers > 0 {
		opts = append(opts, gen.WithWorkers(c.Workers))
	}
	return opts, nil
}

func feature(name string) (gen.Feature, bool) {
	for _, f := range gen.AllFeatures {
		if f.Name == name {
			return f, true
		}
	}
	return gen.Feature{}, false
}
