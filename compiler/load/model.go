// Package load reads UML class diagrams exported as XMI by Modelio, UML
// Designer, GenMyModel and Visual Paradigm into a Model.
package load

// Model is the snapshot extracted from an XMI document. It is built once by
// Extract and only read afterwards; the maps are keyed by xmi:id.
type Model struct {
	// Name of the uml:Model element.
	Name string
	// Editor the document was read with.
	Editor Editor
	// Backend of the catalog the model was checked against.
	Backend string

	PrimitiveTypes map[string]string
	Enums          map[string]*Enum
	Classes        map[string]*Class
	// ClassOrder holds the class ids in document order.
	ClassOrder     []string
	Fields         map[string]*Field
	Associations   map[string]*Association
	InjectedFields map[string]*InjectedField
}

// Class is a uml:Class of the model.
type Class struct {
	ID      string
	Name    string
	Comment string
	// Fields and InjectedFields hold ids in declaration order.
	Fields         []string
	InjectedFields []string
}

// Field is a regular (scalar or enum) attribute of a class.
type Field struct {
	ID      string
	Name    string
	Type    string
	Comment string
	// Enum is the id of the enumeration typing the field, if any.
	Enum        string
	Validations map[string]string
}

// IsEnum reports whether the field is typed by an enumeration.
func (f *Field) IsEnum() bool { return f.Enum != "" }

// Enum is a uml:Enumeration and its literals.
type Enum struct {
	ID     string
	Name   string
	Values []string
}

// Association is the far end of a uml:Association as seen from the class
// declaring the injected field. Type is the id of the class at that end.
type Association struct {
	ID         string
	Name       string
	Type       string
	UpperBound bool
}

// InjectedField is an attribute of Class pointing at the class Type through
// Association.
type InjectedField struct {
	ID          string
	Name        string
	Type        string
	Association string
	Class       string
	UpperBound  bool
}

// Class returns the class with the given id, nil if there is none.
func (m *Model) Class(id string) *Class {
	if m == nil {
		return nil
	}
	return m.Classes[id]
}

// ClassByName returns the first class in document order with the given name.
func (m *Model) ClassByName(name string) *Class {
	if m == nil {
		return nil
	}
	for _, id := range m.ClassOrder {
		if c := m.Classes[id]; c != nil && c.Name == name {
			return c
		}
	}
	return nil
}

func newModel() *Model {
	return &Model{
		PrimitiveTypes: make(map[string]string),
		Enums:          make(map[string]*Enum),
		Classes:        make(map[string]*Class),
		Fields:         make(map[string]*Field),
		Associations:   make(map[string]*Association),
		InjectedFields: make(map[string]*InjectedField),
	}
}
