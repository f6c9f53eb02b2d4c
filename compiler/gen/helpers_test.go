package gen

import (
	"time"

	"github.com/syssam/umlgen/compiler/load"
)

// modelBuilder builds load models by hand. Ids are derived from names:
// a class id is its name, a field id is "<class>.<field>".
type modelBuilder struct {
	m *load.Model
}

func newModelBuilder() *modelBuilder {
	return &modelBuilder{m: &load.Model{
		Name:           "test",
		PrimitiveTypes: map[string]string{},
		Enums:          map[string]*load.Enum{},
		Classes:        map[string]*load.Class{},
		Fields:         map[string]*load.Field{},
		Associations:   map[string]*load.Association{},
		InjectedFields: map[string]*load.InjectedField{},
	}}
}

func (b *modelBuilder) class(names ...string) *modelBuilder {
	for _, name := range names {
		b.m.Classes[name] = &load.Class{ID: name, Name: name}
		b.m.ClassOrder = append(b.m.ClassOrder, name)
	}
	return b
}

func (b *modelBuilder) field(class, name, typ string, validations map[string]string) *modelBuilder {
	id := class + "." + name
	if validations == nil {
		validations = map[string]string{}
	}
	b.m.Fields[id] = &load.Field{ID: id, Name: name, Type: typ, Validations: validations}
	c := b.m.Classes[class]
	c.Fields = append(c.Fields, id)
	return b
}

func (b *modelBuilder) enumField(class, name, enum string, values ...string) *modelBuilder {
	enumID := "enum." + enum
	b.m.Enums[enumID] = &load.Enum{ID: enumID, Name: enum, Values: values}
	b.field(class, name, enum, nil)
	b.m.Fields[class+"."+name].Enum = enumID
	return b
}

// relate adds an injected field class.name pointing at target. near and far
// are the collection flags of the two ends, assoc the far-end role name.
func (b *modelBuilder) relate(class, name, target string, near bool, assoc string, far bool) *modelBuilder {
	id := class + "." + name
	assocID := "assoc." + id
	b.m.Associations[assocID] = &load.Association{ID: assocID, Name: assoc, Type: class, UpperBound: far}
	b.m.InjectedFields[id] = &load.InjectedField{
		ID:          id,
		Name:        name,
		Type:        target,
		Association: assocID,
		Class:       class,
		UpperBound:  near,
	}
	c := b.m.Classes[class]
	c.InjectedFields = append(c.InjectedFields, id)
	return b
}

func (b *modelBuilder) build() *load.Model { return b.m }

var testNow = time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC)

func testConfig(opts ...Option) *Config {
	c := DefaultConfig()
	c.Now = func() time.Time { return testNow }
	if err := c.ApplyAll(opts...); err != nil {
		panic(err)
	}
	return c
}
