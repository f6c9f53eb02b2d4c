package gen

import (
	"fmt"

	"github.com/syssam/umlgen/compiler/load"
)

// Graph holds the entities of a model and the order they must be created
// in. It is the input of the writers.
type Graph struct {
	*Config
	// Model the graph was built from.
	Model *load.Model
	// Nodes holds the entities in creation order.
	Nodes []*Entity
	// Entities holds the entities keyed by class id.
	Entities map[string]*Entity
	// Order holds the class ids in creation order.
	Order []string
	// Cardinalities holds the cardinality of every injected field.
	Cardinalities map[string]Cardinality
}

// NewGraph runs the resolver, the assembler and the scheduler over m.
// Any error aborts the whole build; no partial graph is returned.
func NewGraph(c *Config, m *load.Model) (*Graph, error) {
	if c == nil {
		return nil, NewConfigError("Config", nil, "config cannot be nil")
	}
	if m == nil {
		return nil, NewSchemaError("", "", "nil model", nil)
	}
	if m.Backend != "" && m.Backend != c.Backend {
		return nil, NewConfigError("Backend", c.Backend, fmt.Sprintf("model was extracted for backend %q", m.Backend))
	}
	if err := checkNames(m); err != nil {
		return nil, err
	}
	log := c.logger()

	d, err := DeriveRelationships(m)
	if err != nil {
		return nil, err
	}
	log.Debug("relationships derived", "classes", len(m.ClassOrder), "injected_fields", len(d.Cardinalities))

	entities, err := Assemble(c, m, d.Relations)
	if err != nil {
		return nil, err
	}
	for _, id := range m.ClassOrder {
		if err := checkMembers(entities[id]); err != nil {
			return nil, err
		}
	}

	edges, err := EdgesFor(m, d.Cardinalities)
	if err != nil {
		return nil, err
	}
	order, err := Schedule(m.ClassOrder, edges)
	if err != nil {
		return nil, err
	}
	log.Debug("creation order computed", "entities", len(order), "edges", len(edges))

	g := &Graph{
		Config:        c,
		Model:         m,
		Entities:      entities,
		Order:         order,
		Cardinalities: d.Cardinalities,
		Nodes:         make([]*Entity, 0, len(order)),
	}
	for _, id := range order {
		g.Nodes = append(g.Nodes, entities[id])
	}
	return g, nil
}

// OrderNames returns the entity names in creation order.
func (g *Graph) OrderNames() []string {
	names := make([]string, len(g.Nodes))
	for i, n := range g.Nodes {
		names[i] = n.Name
	}
	return names
}

// Entity returns the entity with the given name, nil if there is none.
func (g *Graph) Entity(name string) *Entity {
	for _, n := range g.Nodes {
		if n.Name == name {
			return n
		}
	}
	return nil
}

// checkNames rejects models whose entity or field names cannot be used as
// file and member names.
func checkNames(m *load.Model) error {
	classes := make(map[string]bool, len(m.ClassOrder))
	for _, id := range m.ClassOrder {
		c := m.Classes[id]
		if c == nil {
			continue
		}
		if c.Name == "" {
			return NewSchemaError(id, "", "class has no name", nil)
		}
		if classes[c.Name] {
			return NewSchemaError(c.Name, "", "duplicate class name", nil)
		}
		classes[c.Name] = true
		fields := make(map[string]bool, len(c.Fields))
		for _, fid := range c.Fields {
			f := m.Fields[fid]
			if f == nil {
				continue
			}
			if f.Name == "" {
				return NewSchemaError(c.Name, fid, "field has no name", nil)
			}
			if fields[f.Name] {
				return NewSchemaError(c.Name, f.Name, "duplicate field name", nil)
			}
			fields[f.Name] = true
		}
	}
	return nil
}

// checkMembers rejects entities where two members, fields or relationships,
// end up with the same name or the same Go identifier. The identifier ID is
// taken by the generated primary key.
func checkMembers(e *Entity) error {
	names := make(map[string]string, len(e.Fields)+len(e.Relationships))
	idents := map[string]string{"ID": "the primary key"}
	add := func(kind, name string) error {
		if prev, ok := names[name]; ok {
			return NewSchemaError(e.Name, name, fmt.Sprintf("%s name already used by a %s", kind, prev), nil)
		}
		names[name] = kind
		id := pascal(name)
		if prev, ok := idents[id]; ok {
			return NewSchemaError(e.Name, name, fmt.Sprintf("%s maps to Go identifier %s, already used by %s", kind, id, prev), nil)
		}
		idents[id] = kind + " " + name
		return nil
	}
	for _, f := range e.Fields {
		if err := add("field", f.FieldName); err != nil {
			return err
		}
	}
	for _, r := range e.Relationships {
		if err := add("relationship", r.RelationshipName); err != nil {
			return err
		}
	}
	return nil
}
