package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/syssam/umlgen/compiler/gen"
	"github.com/syssam/umlgen/internal/cli/config"
	"github.com/syssam/umlgen/internal/testutil"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return buf.String(), err
}

func TestRootGenerate(t *testing.T) {
	t.Chdir(t.TempDir())
	path := testutil.WriteFile(t, ".", "library.xmi", testutil.LibraryXMI)

	out, err := run(t, "generate", path, "--format", "yaml", "--go-package", "model", "--features", "validator")
	require.NoError(t, err)
	assert.Contains(t, out, "Generated 3 entities in "+config.DefaultOutput)

	data, err := os.ReadFile(filepath.Join(config.DefaultOutput, "order.yaml"))
	require.NoError(t, err)
	var m gen.Manifest
	require.NoError(t, yaml.Unmarshal(data, &m))
	assert.Equal(t, []string{"Author", "Book", "Tag"}, m.Order)

	author, err := os.ReadFile(filepath.Join(config.DefaultOutput, "model", "author.go"))
	require.NoError(t, err)
	assert.Contains(t, string(author), "func (a *Author) Validate() error")
}

func TestRootConfigFile(t *testing.T) {
	t.Chdir(t.TempDir())
	path := testutil.WriteFile(t, ".", "library.xmi", testutil.LibraryXMI)
	testutil.WriteFile(t, ".", "umlgen.yaml", "output: descriptors\nformat: msgpack\nmanifest: false\n")

	_, err := run(t, "generate", path)
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join("descriptors", "Author.msgpack"))
	assert.NoFileExists(t, filepath.Join("descriptors", "order.msgpack"))
}

func TestRootErrors(t *testing.T) {
	t.Chdir(t.TempDir())
	path := testutil.WriteFile(t, ".", "library.xmi", testutil.LibraryXMI)

	_, err := run(t, "generate", path, "--format", "xml")
	assert.True(t, gen.IsConfigError(err))

	_, err = run(t, "generate", path, "--editor", "rose")
	assert.Error(t, err)

	_, err = run(t, "order", path, "--backend", "cassandra")
	require.NoError(t, err, "the library model only uses types cassandra supports")
}

func TestRootVersion(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "umlgen v"+Version)
}

func TestGetConfigDefault(t *testing.T) {
	cfg := GetConfig(context.Background())
	assert.Equal(t, config.DefaultBackend, cfg.Backend)
	assert.True(t, cfg.Manifest)
}
