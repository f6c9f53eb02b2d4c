package gen

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/umlgen/dialect"
)

func writerGraph(t *testing.T, opts ...Option) *Graph {
	t.Helper()
	m := loadModel(t, "genmymodel.xmi", dialect.Relational())
	g, err := NewGraph(testConfig(opts...), m)
	require.NoError(t, err)
	return g
}

func TestDescriptorWriterRoundTrip(t *testing.T) {
	for _, format := range []string{"json", "yaml", "msgpack"} {
		t.Run(format, func(t *testing.T) {
			dir := t.TempDir()
			g := writerGraph(t, WithTarget(dir), WithFormat(format))
			w := NewDescriptorWriter(g).WithWorkers(2)
			require.NoError(t, w.WriteAll(context.Background()))
			assert.Equal(t, 4, w.Metrics().FilesGenerated)
			assert.Positive(t, w.Metrics().TotalBytes)

			for _, want := range g.Nodes {
				data, err := os.ReadFile(filepath.Join(dir, want.Name+"."+format))
				require.NoError(t, err)
				got := &Entity{}
				require.NoError(t, decode(Format(format), data, got))
				got.ID = want.ID
				assert.Equal(t, want, got)
			}

			data, err := os.ReadFile(filepath.Join(dir, "order."+format))
			require.NoError(t, err)
			var m Manifest
			require.NoError(t, decode(Format(format), data, &m))
			assert.Equal(t, []string{"Author", "Book", "Tag"}, m.Order)
			assert.Equal(t, dialect.SQL, m.Backend)
			assert.Equal(t, "library", m.Model)
			assert.Equal(t, "genmymodel", m.Editor)
			_, err = uuid.Parse(m.GenerationID)
			assert.NoError(t, err)
			assert.Equal(t, w.Metrics().GenerationID, m.GenerationID)
		})
	}
}

func TestDescriptorWriterJSONLayout(t *testing.T) {
	dir := t.TempDir()
	g := writerGraph(t, WithTarget(dir))
	require.NoError(t, NewDescriptorWriter(g).WriteAll(context.Background()))

	data, err := os.ReadFile(filepath.Join(dir, "Book.json"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"relationshipType": "many-to-one"`)
	assert.Contains(t, string(data), `"changelogDate": "20240301103001"`)
	assert.Contains(t, string(data), `"fieldsContainBigDecimal": true`)
	assert.NotContains(t, string(data), "class_book")
}

func TestDescriptorWriterManifestDisabled(t *testing.T) {
	dir := t.TempDir()
	stale := filepath.Join(dir, "order.yaml")
	require.NoError(t, os.WriteFile(stale, []byte("order: []\n"), 0o644))

	g := writerGraph(t, WithTarget(dir), WithoutFeatures(FeatureOrderManifest.Name))
	w := NewDescriptorWriter(g)
	require.NoError(t, w.WriteAll(context.Background()))
	assert.Equal(t, 3, w.Metrics().FilesGenerated)
	assert.Empty(t, w.Metrics().GenerationID)

	assert.NoFileExists(t, stale)
	assert.NoFileExists(t, filepath.Join(dir, "order.json"))
	assert.FileExists(t, filepath.Join(dir, "Author.json"))
}

func TestDescriptorWriterCanceled(t *testing.T) {
	g := writerGraph(t, WithTarget(t.TempDir()), WithoutFeatures(FeatureOrderManifest.Name))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := NewDescriptorWriter(g).WriteAll(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestEncodeUnsupportedFormat(t *testing.T) {
	_, err := Encode("xml", &Entity{})
	assert.True(t, IsConfigError(err))
	assert.True(t, IsConfigError(decode("xml", nil, &Entity{})))
}

func TestCardinalityEncoding(t *testing.T) {
	r := newRelationship("books", "Book", OneToMany)
	for _, f := range []Format{FormatJSON, FormatYAML, FormatMsgpack} {
		data, err := Encode(f, r)
		require.NoError(t, err, f)
		got := &Relationship{}
		require.NoError(t, decode(f, data, got), f)
		assert.Equal(t, OneToMany, got.RelationshipType, f)
	}

	_, err := Encode(FormatJSON, newRelationship("x", "X", Unknown))
	assert.Error(t, err)
}
