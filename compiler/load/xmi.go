package load

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"
	"unicode"

	"golang.org/x/text/encoding/ianaindex"
)

// Document is the element tree of an XMI file.
type Document struct {
	Root *Element
}

// Element is one XML element of the document. Namespaces are kept as
// resolved by the decoder, attribute values are kept verbatim.
type Element struct {
	Space    string
	Local    string
	Attrs    []xml.Attr
	Children []*Element
	Text     string
}

// charsetReader decodes documents declaring a non UTF-8 encoding in the
// prolog, e.g. ISO-8859-1 or windows-1252.
func charsetReader(label string, input io.Reader) (io.Reader, error) {
	enc, err := ianaindex.IANA.Encoding(label)
	if err != nil {
		return nil, fmt.Errorf("load: unknown encoding %q: %w", label, err)
	}
	if enc == nil {
		return nil, fmt.Errorf("load: unsupported encoding %q", label)
	}
	return enc.NewDecoder().Reader(input), nil
}

// Parse builds the element tree from XMI input.
func Parse(r io.Reader) (*Document, error) {
	decoder := xml.NewDecoder(r)
	decoder.CharsetReader = charsetReader

	var stack []*Element
	var root *Element
	rootClosed := false

	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("load: parse xmi: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if rootClosed {
				return nil, fmt.Errorf("load: unexpected element %s after document end", t.Name.Local)
			}
			elem := &Element{
				Space: t.Name.Space,
				Local: t.Name.Local,
				Attrs: t.Copy().Attr,
			}
			if len(stack) > 0 {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, elem)
			} else {
				root = elem
			}
			stack = append(stack, elem)

		case xml.EndElement:
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
				if len(stack) == 0 && root != nil {
					rootClosed = true
				}
			}

		case xml.CharData:
			if len(stack) == 0 {
				if !isIgnorableOutsideRoot(string(t)) {
					return nil, fmt.Errorf("load: unexpected character data outside root element")
				}
				continue
			}
			stack[len(stack)-1].Text += string(t)
		}
	}

	if root == nil {
		return nil, fmt.Errorf("load: parse xmi: %w", io.ErrUnexpectedEOF)
	}
	return &Document{Root: root}, nil
}

func isIgnorableOutsideRoot(data string) bool {
	for _, r := range data {
		if r == '\uFEFF' {
			continue
		}
		if !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}

// Attr returns the value of the unqualified attribute with the given name.
func (e *Element) Attr(local string) string {
	for _, a := range e.Attrs {
		if a.Name.Space == "" && a.Name.Local == local {
			return a.Value
		}
	}
	return ""
}

// XMIAttr returns the value of the xmi-qualified attribute with the given
// name (xmi:id, xmi:type, ...). The XMI namespace URI changes between
// versions, so any namespace mentioning XMI is accepted.
func (e *Element) XMIAttr(local string) string {
	for _, a := range e.Attrs {
		if a.Name.Local == local && isXMISpace(a.Name.Space) {
			return a.Value
		}
	}
	return ""
}

func isXMISpace(space string) bool {
	return space == "xmi" || strings.Contains(strings.ToLower(space), "xmi")
}

// ID returns the xmi:id of the element.
func (e *Element) ID() string { return e.XMIAttr("id") }

// Kind returns the xmi:type of the element without its prefix, e.g.
// "Class" for xmi:type="uml:Class".
func (e *Element) Kind() string {
	t := e.XMIAttr("type")
	if i := strings.LastIndexByte(t, ':'); i >= 0 {
		return t[i+1:]
	}
	return t
}

// Name returns the name attribute of the element.
func (e *Element) Name() string { return e.Attr("name") }

// Child returns the first direct child with the given local name.
func (e *Element) Child(local string) *Element {
	for _, c := range e.Children {
		if c.Local == local {
			return c
		}
	}
	return nil
}

// ChildrenNamed returns the direct children with the given local name.
func (e *Element) ChildrenNamed(local string) []*Element {
	var out []*Element
	for _, c := range e.Children {
		if c.Local == local {
			out = append(out, c)
		}
	}
	return out
}

// Walk visits e and all its descendants in document order. Returning
// false from fn skips the children of the visited element.
func (e *Element) Walk(fn func(*Element) bool) {
	if !fn(e) {
		return
	}
	for _, c := range e.Children {
		c.Walk(fn)
	}
}

// Model returns the uml:Model element of the document: either the root
// itself or its first Model child.
func (d *Document) Model() *Element {
	if d == nil || d.Root == nil {
		return nil
	}
	if d.Root.Local == "Model" {
		return d.Root
	}
	return d.Root.Child("Model")
}

// Documentation returns the xmi:Documentation element, if any.
func (d *Document) Documentation() *Element {
	if d == nil || d.Root == nil {
		return nil
	}
	return d.Root.Child("Documentation")
}
