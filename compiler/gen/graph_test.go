package gen

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/umlgen"
	"github.com/syssam/umlgen/compiler/load"
	"github.com/syssam/umlgen/dialect"
)

// loadModel extracts a model from the xmi test data of the load package.
func loadModel(t *testing.T, name string, catalog dialect.Catalog) *load.Model {
	t.Helper()
	f, err := os.Open(filepath.Join("..", "load", "testdata", "xmi", name))
	require.NoError(t, err)
	defer f.Close()
	doc, err := load.Parse(f)
	require.NoError(t, err)
	editor, err := load.Detect(doc)
	require.NoError(t, err)
	m, err := load.Extract(doc, editor, catalog)
	require.NoError(t, err)
	return m
}

func TestNewGraph(t *testing.T) {
	m := loadModel(t, "genmymodel.xmi", dialect.Relational())
	g, err := NewGraph(testConfig(), m)
	require.NoError(t, err)

	assert.Equal(t, []string{"class_author", "class_book", "class_tag"}, g.Order)
	assert.Equal(t, []string{"Author", "Book", "Tag"}, g.OrderNames())
	require.Len(t, g.Nodes, 3)
	assert.Same(t, g.Entities["class_book"], g.Entity("Book"))
	assert.Nil(t, g.Entity("Publisher"))
	assert.Equal(t, OneToMany, g.Cardinalities["author_books"])

	author := g.Entity("Author")
	assert.Equal(t, "A writer of books.", author.Javadoc)
	assert.True(t, author.FieldsContainOneToMany)
	assert.True(t, author.FieldsContainLocalDate)
	assert.True(t, author.Validation)
	books := author.Relationship("books")
	require.NotNil(t, books)
	assert.Equal(t, OneToMany, books.RelationshipType)
	assert.Equal(t, "book", books.OtherEntityName)
	assert.Equal(t, "writer", books.OtherEntityRelationshipName)

	book := g.Entity("Book")
	assert.True(t, book.FieldsContainBigDecimal)
	writer := book.Relationship("writer")
	require.NotNil(t, writer)
	assert.Equal(t, ManyToOne, writer.RelationshipType)
	assert.Equal(t, "author", writer.OtherEntityName)
	assert.Equal(t, DefaultForeignKey, writer.OtherEntityField)
	assert.True(t, book.Field("language").FieldIsEnum)

	assert.Equal(t, "20240301103000", author.ChangelogDate)
	assert.Equal(t, "20240301103001", book.ChangelogDate)
}

func TestNewGraphOrder(t *testing.T) {
	m := newModelBuilder().
		class("Customer", "Cart").
		relate("Customer", "cart", "Cart", false, "owner", false).
		build()
	g, err := NewGraph(testConfig(), m)
	require.NoError(t, err)
	assert.Equal(t, []string{"Cart", "Customer"}, g.OrderNames())
	// Changelog dates follow document order, not creation order.
	assert.Equal(t, "20240301103000", g.Entity("Customer").ChangelogDate)
}

func TestNewGraphErrors(t *testing.T) {
	t.Run("nil config", func(t *testing.T) {
		_, err := NewGraph(nil, newModelBuilder().build())
		assert.True(t, IsConfigError(err))
	})

	t.Run("nil model", func(t *testing.T) {
		_, err := NewGraph(testConfig(), nil)
		assert.True(t, IsSchemaError(err))
	})

	t.Run("backend mismatch", func(t *testing.T) {
		m := newModelBuilder().class("A").build()
		m.Backend = dialect.MongoDB
		_, err := NewGraph(testConfig(), m)
		assert.True(t, IsConfigError(err))
		assert.Contains(t, err.Error(), dialect.MongoDB)
	})

	t.Run("duplicate class name", func(t *testing.T) {
		m := newModelBuilder().class("A", "B").build()
		m.Classes["B"].Name = "A"
		_, err := NewGraph(testConfig(), m)
		require.Error(t, err)
		assert.True(t, IsSchemaError(err))
		assert.Contains(t, err.Error(), "duplicate class name")
	})

	t.Run("duplicate field name", func(t *testing.T) {
		m := newModelBuilder().
			class("A").
			field("A", "name", "String", nil).
			build()
		m.Fields["A.other"] = &load.Field{ID: "A.other", Name: "name", Type: "String"}
		m.Classes["A"].Fields = append(m.Classes["A"].Fields, "A.other")
		_, err := NewGraph(testConfig(), m)
		assert.True(t, IsSchemaError(err))
	})

	t.Run("unnamed class", func(t *testing.T) {
		m := newModelBuilder().class("A").build()
		m.Classes["A"].Name = ""
		_, err := NewGraph(testConfig(), m)
		assert.True(t, IsSchemaError(err))
	})

	t.Run("circular dependency", func(t *testing.T) {
		m := newModelBuilder().
			class("A", "B").
			relate("A", "b", "B", false, "fromA", false).
			relate("B", "a", "A", false, "fromB", false).
			build()
		g, err := NewGraph(testConfig(), m)
		assert.Nil(t, g)
		assert.True(t, umlgen.IsCircularDependency(err))
	})

	t.Run("dangling association", func(t *testing.T) {
		m := newModelBuilder().
			class("A", "B").
			relate("A", "b", "B", false, "a", false).
			build()
		m.InjectedFields["A.b"].Association = "missing"
		_, err := NewGraph(testConfig(), m)
		assert.True(t, umlgen.IsDanglingAssociation(err))
	})
}

func TestNewGraphMemberClash(t *testing.T) {
	tests := []struct {
		name  string
		model func() *load.Model
		want  string
	}{
		{
			name: "unnamed mirrors",
			model: func() *load.Model {
				return newModelBuilder().
					class("A", "B").
					relate("A", "first", "B", false, "", false).
					relate("A", "second", "B", false, "", false).
					build()
			},
			want: "umlgen: schema error on entity B field a: relationship name already used by a relationship",
		},
		{
			name: "relationship named like a field",
			model: func() *load.Model {
				return newModelBuilder().
					class("A", "B").
					field("B", "owner", "String", nil).
					relate("A", "b", "B", false, "owner", false).
					build()
			},
			want: "umlgen: schema error on entity B field owner: relationship name already used by a field",
		},
		{
			name: "same Go identifier",
			model: func() *load.Model {
				return newModelBuilder().
					class("A").
					field("A", "first_name", "String", nil).
					field("A", "firstName", "String", nil).
					build()
			},
			want: "maps to Go identifier FirstName",
		},
		{
			name: "primary key identifier",
			model: func() *load.Model {
				return newModelBuilder().
					class("A").
					field("A", "ID", "String", nil).
					build()
			},
			want: "already used by the primary key",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := NewGraph(testConfig(), tt.model())
			assert.Nil(t, g)
			require.Error(t, err)
			assert.True(t, IsSchemaError(err))
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
