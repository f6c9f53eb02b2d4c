package config

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/umlgen/compiler/gen"
	"github.com/syssam/umlgen/compiler/load"
)

func testFlags() *pflag.FlagSet {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("backend", "", "")
	fs.String("output", "", "")
	fs.String("go-package", "", "")
	fs.StringSlice("features", nil, "")
	fs.Bool("verbose", false, "")
	return fs
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "umlgen.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	cfg, used, err := Load("", nil)
	require.NoError(t, err)
	assert.Empty(t, used)
	assert.Equal(t, DefaultBackend, cfg.Backend)
	assert.Equal(t, DefaultOutput, cfg.Output)
	assert.Equal(t, DefaultFormat, cfg.Format)
	assert.Equal(t, DefaultPagination, cfg.Pagination)
	assert.True(t, cfg.Manifest)
	assert.False(t, cfg.Verbose)
	assert.Empty(t, cfg.Editor)
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
backend: mongodb
editor: Visual Paradigm
format: yaml
go_package: model
pagination: pager
paginations:
  Book: infinite-scroll
features: [validator]
manifest: false
workers: 2
`)
	cfg, used, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, path, used)
	assert.Equal(t, "mongodb", cfg.Backend)
	assert.Equal(t, "yaml", cfg.Format)
	assert.Equal(t, "model", cfg.GoPackage)
	assert.Equal(t, map[string]string{"Book": "infinite-scroll"}, cfg.Paginations)
	assert.Equal(t, []string{"validator"}, cfg.Features)
	assert.False(t, cfg.Manifest)
	assert.Equal(t, 2, cfg.Workers)

	editor, err := cfg.FallbackEditor()
	require.NoError(t, err)
	assert.Equal(t, load.VisualParadigm, editor)
}

func TestLoadPrecedence(t *testing.T) {
	path := writeConfig(t, "backend: mongodb\noutput: from-file\ngo_package: file\n")
	t.Setenv("UMLGEN_OUTPUT", "from-env")
	t.Setenv("UMLGEN_GO_PACKAGE", "env")

	fs := testFlags()
	require.NoError(t, fs.Parse([]string{"--go-package", "flag", "--features", "validator"}))

	cfg, _, err := Load(path, fs)
	require.NoError(t, err)
	assert.Equal(t, "mongodb", cfg.Backend, "file overrides defaults")
	assert.Equal(t, "from-env", cfg.Output, "env overrides file")
	assert.Equal(t, "flag", cfg.GoPackage, "flags override env")
	assert.Equal(t, []string{"validator"}, cfg.Features)
	assert.False(t, cfg.Verbose, "unset flags keep lower layers")
}

func TestLoadErrors(t *testing.T) {
	_, _, err := Load(filepath.Join(t.TempDir(), "missing.yaml"), nil)
	assert.Error(t, err)

	_, _, err = Load(writeConfig(t, "backend: [unclosed\n"), nil)
	assert.Error(t, err)

	_, _, err = Load(writeConfig(t, "editor: rational rose\n"), nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, load.ErrEditorUnknown)
}

func TestGenOptions(t *testing.T) {
	cfg := &Config{
		Backend:     "cassandra",
		Output:      "out",
		Format:      "msgpack",
		Pagination:  "pagination",
		Paginations: map[string]string{"Book": "pager"},
		Features:    []string{"validator"},
		GoPackage:   "model",
		GoOutput:    "models",
		Workers:     4,
	}
	opts, err := cfg.GenOptions()
	require.NoError(t, err)
	c, err := gen.NewConfig(opts...)
	require.NoError(t, err)

	assert.Equal(t, "cassandra", c.Backend)
	assert.Equal(t, "out", c.Target)
	assert.Equal(t, gen.FormatMsgpack, c.Format)
	assert.Equal(t, gen.PaginationLinks, c.PaginationOf("Author"))
	assert.Equal(t, gen.PaginationPager, c.PaginationOf("Book"))
	assert.True(t, c.HasFeature(gen.FeatureValidator.Name))
	assert.False(t, c.HasFeature(gen.FeatureOrderManifest.Name))
	assert.Equal(t, "model", c.Package)
	assert.Equal(t, "models", c.Output().GoTarget)
	assert.Equal(t, 4, c.Workers)
}

func TestGenOptionsErrors(t *testing.T) {
	_, err := (&Config{Features: []string{"graphql"}}).GenOptions()
	assert.ErrorContains(t, err, "graphql")

	opts, err := (&Config{Backend: "oracle", Output: "out", Format: "json"}).GenOptions()
	require.NoError(t, err)
	_, err = gen.NewConfig(opts...)
	assert.True(t, gen.IsConfigError(err))
}

func TestLogger(t *testing.T) {
	assert.NotNil(t, Logger(context.Background()))

	var buf bytes.Buffer
	l := NewLogger(&buf, false)
	ctx := WithLogger(context.Background(), l)
	assert.Same(t, l, Logger(ctx))

	Logger(ctx).Debug("hidden")
	Logger(ctx).Info("shown", "entities", 3)
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "entities=3")

	buf.Reset()
	NewLogger(&buf, true).Debug("details")
	assert.Contains(t, buf.String(), "details")
}
