package gen

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/syssam/umlgen/dialect"
)

const defaultHeader = "Code generated by umlgen. DO NOT EDIT."

// Config holds the generation settings shared by the pipeline stages and
// the writers.
type Config struct {
	// Backend is the storage backend the model is checked against.
	Backend string
	// Target is the directory the descriptors are written to.
	Target string
	// Format of the descriptor files.
	Format Format
	// Header is the comment written at the top of generated Go files.
	Header string
	// Package is the name of the Go package holding the generated models.
	// Go models are only generated when it is set.
	Package string
	// GoTarget is the directory of the Go models. Defaults to
	// <Target>/<Package>.
	GoTarget string
	// Pagination is the pagination hint of entities without an entry in
	// Paginations, which is keyed by entity name.
	Pagination  Pagination
	Paginations map[string]Pagination
	// Features holds the enabled feature-flags.
	Features []Feature
	// Workers bounds the number of files written in parallel.
	Workers int
	// Now returns the base time of the entity changelog dates.
	Now func() time.Time
	// Logger receives informational messages of the pipeline.
	Logger *slog.Logger
}

// DefaultConfig returns the configuration used when no option is given.
func DefaultConfig() *Config {
	return &Config{
		Backend:    dialect.SQL,
		Target:     ".umlgen",
		Format:     FormatJSON,
		Header:     defaultHeader,
		Pagination: PaginationNone,
		Features:   defaultFeatures(),
		Now:        time.Now,
		Logger:     slog.New(slog.DiscardHandler),
	}
}

// NewConfig returns the default configuration with opts applied. Every
// invalid option is reported, joined in one error.
func NewConfig(opts ...Option) (*Config, error) {
	c := DefaultConfig()
	if err := c.ApplyAll(opts...); err != nil {
		return nil, err
	}
	return c, nil
}

// OutputConfig groups the settings of the writers.
type OutputConfig struct {
	Target   string
	Format   Format
	Header   string
	Package  string
	GoTarget string
}

// Output returns the output settings.
func (c *Config) Output() OutputConfig {
	goTarget := c.GoTarget
	if goTarget == "" && c.Package != "" {
		goTarget = c.Target + "/" + c.Package
	}
	return OutputConfig{
		Target:   c.Target,
		Format:   c.Format,
		Header:   c.Header,
		Package:  c.Package,
		GoTarget: goTarget,
	}
}

// PaginationOf returns the pagination hint of the named entity.
func (c *Config) PaginationOf(entity string) Pagination {
	if p, ok := c.Paginations[entity]; ok {
		return p
	}
	if c.Pagination == "" {
		return PaginationNone
	}
	return c.Pagination
}

// HasFeature reports whether the named feature is in Features.
func (c *Config) HasFeature(name string) bool {
	return slices.ContainsFunc(c.Features, func(f Feature) bool { return f.Name == name })
}

func (c *Config) logger() *slog.Logger {
	if c == nil || c.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return c.Logger
}

func (c *Config) now() time.Time {
	if c == nil || c.Now == nil {
		return time.Now()
	}
	return c.Now()
}

// Format is the serialization format of the descriptor files.
type Format string

// Descriptor formats.
const (
	FormatJSON    Format = "json"
	FormatYAML    Format = "yaml"
	FormatMsgpack Format = "msgpack"
)

// ParseFormat returns the format with the given name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatJSON, FormatYAML, FormatMsgpack:
		return f, nil
	case "yml":
		return FormatYAML, nil
	default:
		return "", NewConfigError("Format", s, "unsupported format; use json, yaml or msgpack")
	}
}

// Ext returns the file extension of the format, without the dot.
func (f Format) Ext() string { return string(f) }

// Pagination is the pagination hint handed to the downstream generator.
type Pagination string

// Pagination hints.
const (
	PaginationNone     Pagination = "no"
	PaginationPager    Pagination = "pager"
	PaginationLinks    Pagination = "pagination"
	PaginationInfinite Pagination = "infinite-scroll"
)

// ParsePagination returns the pagination hint with the given name.
func ParsePagination(s string) (Pagination, error) {
	switch p := Pagination(strings.ToLower(strings.TrimSpace(s))); p {
	case PaginationNone, PaginationPager, PaginationLinks, PaginationInfinite:
		return p, nil
	case "":
		return PaginationNone, nil
	default:
		return "", NewConfigError("Pagination", s, fmt.Sprintf("unsupported pagination; use %s, %s, %s or %s",
			PaginationNone, PaginationPager, PaginationLinks, PaginationInfinite))
	}
}
