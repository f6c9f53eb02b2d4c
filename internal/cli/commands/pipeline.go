// Package commands implements the umlgen subcommands.
package commands

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"os"
	"slices"

	"github.com/syssam/umlgen/compiler/gen"
	"github.com/syssam/umlgen/compiler/load"
	"github.com/syssam/umlgen/dialect"
	"github.com/syssam/umlgen/internal/cli/config"
)

// Loader resolves the CLI configuration of a command.
type Loader func(ctx context.Context) *config.Config

// readDocument parses the XMI file at path and resolves its editor. The
// configured editor is used when the exporter cannot be detected.
func readDocument(ctx context.Context, cfg *config.Config, path string) (*load.Document, load.Editor, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, err
	}
	defer f.Close()
	doc, err := load.Parse(f)
	if err != nil {
		return nil, 0, fmt.Errorf("parse %s: %w", path, err)
	}

	editor, err := load.Detect(doc)
	if err == nil {
		return doc, editor, nil
	}
	if !errors.Is(err, load.ErrEditorUnknown) {
		return nil, 0, err
	}
	fallback, ferr := cfg.FallbackEditor()
	if ferr != nil {
		return nil, 0, ferr
	}
	if !fallback.Valid() {
		return nil, 0, fmt.Errorf("%w; set the editor in the configuration", err)
	}
	config.Logger(ctx).Debug("editor not detected, using configured editor", "editor", fallback)
	return doc, fallback, nil
}

// buildGraph runs the whole pipeline over the XMI file at path.
func buildGraph(ctx context.Context, cfg *config.Config, path string) (*gen.Graph, error) {
	log := config.Logger(ctx)
	doc, editor, err := readDocument(ctx, cfg, path)
	if err != nil {
		return nil, err
	}
	catalog, err := dialect.Open(cfg.Backend)
	if err != nil {
		return nil, err
	}
	m, err := load.Extract(doc, editor, catalog)
	if err != nil {
		return nil, err
	}
	for _, name := range slices.Sorted(maps.Keys(cfg.Paginations)) {
		if m.ClassByName(name) == nil {
			return nil, fmt.Errorf("pagination set for unknown entity %q", name)
		}
	}
	log.Debug("model extracted",
		"model", m.Name,
		"editor", editor,
		"classes", len(m.ClassOrder),
		"associations", len(m.Associations),
	)

	opts, err := cfg.GenOptions()
	if err != nil {
		return nil, err
	}
	c, err := gen.NewConfig(append(opts, gen.WithLogger(log))...)
	if err != nil {
		return nil, err
	}
	return gen.NewGraph(c, m)
}

// write writes the descriptors of g and, when a package is configured,
// the Go models.
func write(ctx context.Context, g *gen.Graph) error {
	w := gen.NewDescriptorWriter(g)
	if err := w.WriteAll(ctx); err != nil {
		return err
	}
	m := w.Metrics()
	config.Logger(ctx).Debug("descriptor metrics",
		"files", m.FilesGenerated,
		"bytes", m.TotalBytes,
		"generation_id", m.GenerationID,
	)
	if g.Package == "" {
		return nil
	}
	return gen.NewGoGenerator(g).Generate(ctx)
}
