package gen

import (
	"errors"
	"go/token"
	"log/slog"
	"slices"
	"time"

	"github.com/syssam/umlgen/dialect"
)

// Option configures code generation.
type Option func(*Config) error

// WithBackend sets the storage backend.
// Supported backends: "sql", "mongodb", "cassandra".
func WithBackend(backend string) Option {
	return func(c *Config) error {
		catalog, err := dialect.Open(backend)
		if err != nil {
			return NewConfigError("Backend", backend, err.Error())
		}
		c.Backend = catalog.Name()
		return nil
	}
}

// WithTarget sets the output directory of the descriptors.
func WithTarget(dir string) Option {
	return func(c *Config) error {
		if dir == "" {
			return NewConfigError("Target", nil, "target directory cannot be empty")
		}
		c.Target = dir
		return nil
	}
}

// WithFormat sets the descriptor format by name.
func WithFormat(name string) Option {
	return func(c *Config) error {
		f, err := ParseFormat(name)
		if err != nil {
			return err
		}
		c.Format = f
		return nil
	}
}

// WithHeader sets the file header comment.
// The header is added at the top of each generated Go file.
func WithHeader(header string) Option {
	return func(c *Config) error {
		c.Header = header
		return nil
	}
}

// WithPackage sets the package name of the generated Go models and enables
// their generation.
func WithPackage(pkg string) Option {
	return func(c *Config) error {
		if !token.IsIdentifier(pkg) || token.IsKeyword(pkg) {
			return NewConfigError("Package", pkg, "package must be a valid Go identifier")
		}
		c.Package = pkg
		return nil
	}
}

// WithGoTarget sets the output directory of the Go models.
func WithGoTarget(dir string) Option {
	return func(c *Config) error {
		if dir == "" {
			return NewConfigError("GoTarget", nil, "target directory cannot be empty")
		}
		c.GoTarget = dir
		return nil
	}
}

// WithPagination sets the default pagination hint by name.
func WithPagination(name string) Option {
	return func(c *Config) error {
		p, err := ParsePagination(name)
		if err != nil {
			return err
		}
		c.Pagination = p
		return nil
	}
}

// WithEntityPagination sets the pagination hint of one entity.
func WithEntityPagination(entity, name string) Option {
	return func(c *Config) error {
		if entity == "" {
			return NewConfigError("Paginations", nil, "entity name cannot be empty")
		}
		p, err := ParsePagination(name)
		if err != nil {
			return err
		}
		if c.Paginations == nil {
			c.Paginations = make(map[string]Pagination)
		}
		c.Paginations[entity] = p
		return nil
	}
}

// WithFeatures enables specific features.
func WithFeatures(features ...Feature) Option {
	return func(c *Config) error {
		for _, f := range features {
			if !c.HasFeature(f.Name) {
				c.Features = append(c.Features, f)
			}
		}
		return nil
	}
}

// WithoutFeatures disables specific features.
func WithoutFeatures(names ...string) Option {
	return func(c *Config) error {
		kept := c.Features[:0:0]
		for _, f := range c.Features {
			if !slices.Contains(names, f.Name) {
				kept = append(kept, f)
			}
		}
		c.Features = kept
		return nil
	}
}

// WithWorkers sets the number of files written in parallel.
func WithWorkers(n int) Option {
	return func(c *Config) error {
		if n < 1 {
			return NewConfigError("Workers", n, "workers must be positive")
		}
		c.Workers = n
		return nil
	}
}

// WithClock sets the function returning the base changelog time.
func WithClock(now func() time.Time) Option {
	return func(c *Config) error {
		if now == nil {
			return NewConfigError("Now", nil, "clock cannot be nil")
		}
		c.Now = now
		return nil
	}
}

// WithLogger sets the logger of the pipeline.
func WithLogger(l *slog.Logger) Option {
	return func(c *Config) error {
		if l == nil {
			return NewConfigError("Logger", nil, "logger cannot be nil")
		}
		c.Logger = l
		return nil
	}
}

// ApplyAll applies options and collects all errors.
// Returns a joined error if any options failed.
func (c *Config) ApplyAll(opts ...Option) error {
	var errs []error
	for _, opt := range opts {
		if err := opt(c); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
