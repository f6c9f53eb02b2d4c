package load

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/syssam/umlgen"
	"github.com/syssam/umlgen/dialect"
)

// Extract reads the classes, fields, enumerations, associations and
// validations of doc. Types and validations are checked against catalog.
//
// Extraction runs in two phases: the structure (types, associations,
// classes and their attributes) is read first, then the validation
// constraints are attached to the fields created by the first phase.
func Extract(doc *Document, editor Editor, catalog dialect.Catalog) (*Model, error) {
	if !editor.Valid() {
		return nil, fmt.Errorf("%w: %s", ErrEditorUnknown, editor)
	}
	if catalog == nil {
		return nil, errors.New("load: nil type catalog")
	}
	root := doc.Model()
	if root == nil {
		return nil, errors.New("load: document has no uml:Model element")
	}
	x := &extractor{
		doc:      doc,
		editor:   editor,
		catalog:  catalog,
		model:    newModel(),
		index:    make(map[string]*Element),
		classIDs: make(map[string]bool),
		nearEnd:  make(map[string]string),
		farEnds:  make(map[string]bool),
	}
	x.model.Name = root.Name()
	x.model.Editor = editor
	x.model.Backend = catalog.Name()
	if err := x.structure(root); err != nil {
		return nil, err
	}
	if err := x.constraints(); err != nil {
		return nil, err
	}
	return x.model, nil
}

type extractor struct {
	doc     *Document
	editor  Editor
	catalog dialect.Catalog
	model   *Model
	index   map[string]*Element
	classes []*Element
	// classIDs is filled before any attribute is read, so forward
	// references between classes resolve.
	classIDs map[string]bool
	// nearEnd maps an association without ownedEnd to the member end
	// that becomes the injected field.
	nearEnd map[string]string
	// farEnds holds the member ends read as association far ends.
	farEnds map[string]bool
}

func (x *extractor) structure(root *Element) error {
	var assocs []*Element
	x.doc.Root.Walk(func(e *Element) bool {
		id := e.ID()
		if id != "" {
			if _, dup := x.index[id]; !dup {
				x.index[id] = e
			}
		}
		switch e.Kind() {
		case "PrimitiveType", "DataType":
			if id != "" {
				x.model.PrimitiveTypes[id] = x.editor.typeName(e.Name())
			}
		case "Enumeration":
			x.enum(e)
			return false
		case "Association":
			assocs = append(assocs, e)
		}
		return true
	})
	root.Walk(func(e *Element) bool {
		if e.Kind() != "Class" {
			return true
		}
		if id := e.ID(); id != "" && !x.classIDs[id] {
			x.classIDs[id] = true
			x.classes = append(x.classes, e)
		}
		return false
	})
	for _, a := range assocs {
		if err := x.association(a); err != nil {
			return err
		}
	}
	for _, c := range x.classes {
		if err := x.class(c); err != nil {
			return err
		}
	}
	return nil
}

func (x *extractor) enum(e *Element) {
	en := &Enum{ID: e.ID(), Name: e.Name()}
	for _, lit := range e.ChildrenNamed("ownedLiteral") {
		if name := strings.TrimSpace(lit.Name()); name != "" {
			en.Values = append(en.Values, name)
		}
	}
	x.model.Enums[en.ID] = en
}

func (x *extractor) association(e *Element) error {
	id := e.ID()
	if end := e.Child("ownedEnd"); end != nil {
		ref, _ := typeRef(end)
		x.model.Associations[id] = &Association{
			ID:         id,
			Name:       end.Name(),
			Type:       ref,
			UpperBound: upperBound(end),
		}
		return nil
	}
	// Both ends are owned by classes: the first member end is the injected
	// field, the second one is read as the far end of the association.
	ends := memberEnds(e)
	if len(ends) < 2 {
		return umlgen.NewBrokenReferenceError("association end", id, e.Name())
	}
	far := x.index[ends[1]]
	if far == nil {
		return umlgen.NewBrokenReferenceError("association end", ends[1], id)
	}
	ref, _ := typeRef(far)
	x.model.Associations[id] = &Association{
		ID:         id,
		Name:       far.Name(),
		Type:       ref,
		UpperBound: upperBound(far),
	}
	x.nearEnd[id] = ends[0]
	x.farEnds[ends[1]] = true
	return nil
}

func (x *extractor) class(e *Element) error {
	c := &Class{ID: e.ID(), Name: e.Name(), Comment: comment(e)}
	x.model.Classes[c.ID] = c
	x.model.ClassOrder = append(x.model.ClassOrder, c.ID)
	for _, attr := range e.ChildrenNamed("ownedAttribute") {
		id := attr.ID()
		if x.farEnds[id] {
			continue
		}
		ref, href := typeRef(attr)
		assoc := attr.Attr("association")
		if assoc != "" || x.classIDs[ref] {
			if near, ok := x.nearEnd[assoc]; ok && near != id {
				continue
			}
			if !x.classIDs[ref] {
				return umlgen.NewBrokenReferenceError("class", ref, c.Name+"."+attr.Name())
			}
			x.model.InjectedFields[id] = &InjectedField{
				ID:          id,
				Name:        attr.Name(),
				Type:        ref,
				Association: assoc,
				Class:       c.ID,
				UpperBound:  upperBound(attr),
			}
			c.InjectedFields = append(c.InjectedFields, id)
			continue
		}
		f, err := x.field(c, attr, ref, href)
		if err != nil {
			return err
		}
		x.model.Fields[id] = f
		c.Fields = append(c.Fields, id)
	}
	return nil
}

func (x *extractor) field(c *Class, attr *Element, ref, href string) (*Field, error) {
	f := &Field{
		ID:          attr.ID(),
		Name:        attr.Name(),
		Comment:     comment(attr),
		Validations: make(map[string]string),
	}
	check := ""
	switch {
	case x.model.Enums[ref] != nil:
		f.Type, f.Enum = x.model.Enums[ref].Name, ref
		check = dialect.EnumType
	case ref != "":
		name, ok := x.model.PrimitiveTypes[ref]
		if !ok {
			return nil, umlgen.NewBrokenReferenceError("type", ref, c.Name+"."+f.Name)
		}
		f.Type = name
	case href != "":
		f.Type = x.editor.typeName(href)
	default:
		return nil, umlgen.NewBrokenReferenceError("type", "", c.Name+"."+f.Name)
	}
	if check == "" {
		check = f.Type
	}
	if !x.catalog.SupportsType(check) {
		return nil, umlgen.NewUnsupportedTypeError(f.Type, f.Name, x.catalog.Name())
	}
	return f, nil
}

func (x *extractor) constraints() error {
	var rules []*Element
	x.doc.Root.Walk(func(e *Element) bool {
		if e.Local == "ownedRule" && (e.Kind() == "Constraint" || e.Kind() == "") {
			rules = append(rules, e)
		}
		return true
	})
	for _, r := range rules {
		name := strings.ToLower(strings.TrimSpace(r.Name()))
		value := x.constraintValue(r)
		for _, id := range constrained(r) {
			if _, ok := x.model.InjectedFields[id]; ok {
				continue
			}
			f := x.model.Fields[id]
			if f == nil {
				return umlgen.NewBrokenReferenceError("field", id, name)
			}
			check := f.Type
			if f.IsEnum() {
				check = dialect.EnumType
			}
			if !x.catalog.IsValidationSupported(check, name) {
				return umlgen.NewUnsupportedValidationError(name, f.Type, f.Name, x.catalog.Name())
			}
			f.Validations[name] = value
		}
	}
	return nil
}

func (x *extractor) constraintValue(rule *Element) string {
	vs := rule.Child("specification")
	if vs == nil {
		return ""
	}
	for _, attr := range x.editor.valueAttrs() {
		if v := vs.Attr(attr); v != "" {
			return strings.TrimSpace(v)
		}
	}
	if body := vs.Child("body"); body != nil {
		return strings.TrimSpace(body.Text)
	}
	return ""
}

// typeRef returns the type of a property: either the id of a type declared
// in the document, or the fragment of an href into a type library.
func typeRef(e *Element) (ref, href string) {
	if v := e.Attr("type"); v != "" {
		return v, ""
	}
	t := e.Child("type")
	if t == nil {
		return "", ""
	}
	if v := t.XMIAttr("idref"); v != "" {
		return v, ""
	}
	h := t.Attr("href")
	if i := strings.LastIndexByte(h, '#'); i >= 0 {
		h = h[i+1:]
	}
	return "", h
}

// upperBound reports whether the property is collection typed, that is has
// an upper value of "*", -1 or more than 1. A missing value attribute is the
// EMF default of 0.
func upperBound(e *Element) bool {
	uv := e.Child("upperValue")
	if uv == nil {
		return false
	}
	v := strings.TrimSpace(uv.Attr("value"))
	if v == "*" {
		return true
	}
	n, err := strconv.Atoi(v)
	return err == nil && (n == -1 || n > 1)
}

func memberEnds(e *Element) []string {
	if v := e.Attr("memberEnd"); v != "" {
		return strings.Fields(v)
	}
	var ends []string
	for _, m := range e.ChildrenNamed("memberEnd") {
		if v := m.XMIAttr("idref"); v != "" {
			ends = append(ends, v)
		}
	}
	return ends
}

func constrained(rule *Element) []string {
	if v := rule.Attr("constrainedElement"); v != "" {
		return strings.Fields(v)
	}
	var ids []string
	for _, c := range rule.ChildrenNamed("constrainedElement") {
		if v := c.XMIAttr("idref"); v != "" {
			ids = append(ids, v)
		}
	}
	return ids
}

func comment(e *Element) string {
	c := e.Child("ownedComment")
	if c == nil {
		return ""
	}
	if v := c.Attr("body"); v != "" {
		return strings.TrimSpace(v)
	}
	if b := c.Child("body"); b != nil {
		return strings.TrimSpace(b.Text)
	}
	return ""
}
