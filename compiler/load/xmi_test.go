package load

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/umlgen/dialect"
)

func parseFile(t *testing.T, name string) *Document {
	t.Helper()
	f, err := os.Open(filepath.Join("testdata", "xmi", name))
	require.NoError(t, err)
	defer f.Close()
	doc, err := Parse(f)
	require.NoError(t, err)
	return doc
}

func parseString(t *testing.T, s string) *Document {
	t.Helper()
	doc, err := Parse(strings.NewReader(s))
	require.NoError(t, err)
	return doc
}

func TestParse(t *testing.T) {
	doc := parseFile(t, "genmymodel.xmi")
	require.NotNil(t, doc.Root)
	assert.Equal(t, "XMI", doc.Root.Local)

	model := doc.Model()
	require.NotNil(t, model)
	assert.Equal(t, "library", model.Name())
	assert.Equal(t, "model", model.ID())
	assert.Equal(t, "Model", model.Local)

	var classes []string
	model.Walk(func(e *Element) bool {
		if e.Kind() == "Class" {
			classes = append(classes, e.Name())
			return false
		}
		return true
	})
	assert.Equal(t, []string{"Author", "Book", "Tag"}, classes)

	doc2 := doc.Documentation()
	require.NotNil(t, doc2)
	assert.Equal(t, "GenMyModel", doc2.Attr("exporter"))
}

func TestParseElementTree(t *testing.T) {
	doc := parseString(t, `<root xmlns:xmi="http://www.omg.org/spec/XMI/20131001">
		<a xmi:id="1" name="first"><b/><b/><c>text</c></a>
	</root>`)
	a := doc.Root.Child("a")
	require.NotNil(t, a)
	assert.Equal(t, "1", a.ID())
	assert.Equal(t, "first", a.Name())
	assert.Empty(t, a.Attr("id"), "qualified attributes are not returned by Attr")
	assert.Len(t, a.ChildrenNamed("b"), 2)
	assert.Equal(t, "text", a.Child("c").Text)
	assert.Nil(t, doc.Model())
	assert.Nil(t, doc.Documentation())
}

func TestParseErrors(t *testing.T) {
	t.Run("empty input", func(t *testing.T) {
		_, err := Parse(strings.NewReader("  "))
		require.Error(t, err)
		assert.True(t, errors.Is(err, io.ErrUnexpectedEOF))
	})
	t.Run("malformed", func(t *testing.T) {
		_, err := Parse(strings.NewReader("<a><b></a>"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "load: parse xmi")
	})
	t.Run("second root", func(t *testing.T) {
		_, err := Parse(strings.NewReader("<a/><b/>"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "after document end")
	})
	t.Run("text after root", func(t *testing.T) {
		_, err := Parse(strings.NewReader("<a/>trailing"))
		require.Error(t, err)
	})
}

func TestParseDeclaredEncoding(t *testing.T) {
	doc := parseFile(t, "latin1.xmi")
	assert.Equal(t, "école", doc.Model().Name())

	m, err := Extract(doc, GenMyModel, dialect.Relational())
	require.NoError(t, err)
	c := m.Class("class_eleve")
	require.NotNil(t, c)
	assert.Equal(t, "Élève", c.Name)
	require.Len(t, c.Fields, 1)
	assert.Equal(t, "prénom", m.Fields[c.Fields[0]].Name)

	t.Run("windows-1252", func(t *testing.T) {
		doc := parseString(t, "<?xml version=\"1.0\" encoding=\"windows-1252\"?>\n<a name=\"Caf\xe9 \x80\"/>")
		assert.Equal(t, "Café €", doc.Root.Name())
	})
	t.Run("unknown encoding", func(t *testing.T) {
		_, err := Parse(strings.NewReader(`<?xml version="1.0" encoding="x-no-such-charset"?><a/>`))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown encoding")
	})
}

func TestKindStripsPrefix(t *testing.T) {
	doc := parseString(t, `<uml:Model xmlns:uml="http://www.eclipse.org/uml2/5.0.0/UML" xmlns:xmi="http://www.omg.org/XMI" xmi:id="m">
		<packagedElement xmi:type="uml:Class" xmi:id="c"/>
		<packagedElement xmi:type="Class" xmi:id="d"/>
	</uml:Model>`)
	require.Same(t, doc.Root, doc.Model())
	for _, e := range doc.Root.Children {
		assert.Equal(t, "Class", e.Kind())
	}
}
