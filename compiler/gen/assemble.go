package gen

import (
	"slices"
	"time"

	"github.com/syssam/umlgen"
	"github.com/syssam/umlgen/compiler/load"
)

// ChangelogLayout is the layout of Entity.ChangelogDate.
const ChangelogLayout = "20060102150405"

// Assemble builds one entity per class of m from its fields and the
// relationships in relations, keyed by class id. Relationships and their
// flags are taken as derived; only the field flags are computed here.
//
// Changelog dates start at the configured clock and advance one second per
// entity in document order, so that every entity gets a distinct one.
func Assemble(cfg *Config, m *load.Model, relations map[string]*Relations) (map[string]*Entity, error) {
	base := cfg.now().UTC().Truncate(time.Second)
	entities := make(map[string]*Entity, len(m.ClassOrder))
	for i, id := range m.ClassOrder {
		c := m.Classes[id]
		if c == nil {
			return nil, umlgen.NewBrokenReferenceError("class", id, m.Name)
		}
		e, err := assemble(m, c, relations[id])
		if err != nil {
			return nil, err
		}
		e.ChangelogDate = base.Add(time.Duration(i) * time.Second).Format(ChangelogLayout)
		e.Pagination = cfg.PaginationOf(c.Name)
		entities[id] = e
	}
	return entities, nil
}

func assemble(m *load.Model, c *load.Class, rs *Relations) (*Entity, error) {
	e := &Entity{
		ID:            c.ID,
		Name:          c.Name,
		Javadoc:       c.Comment,
		Fields:        make([]*Field, 0, len(c.Fields)),
		Relationships: []*Relationship{},
	}
	for i, fid := range c.Fields {
		f := m.Fields[fid]
		if f == nil {
			return nil, umlgen.NewBrokenReferenceError("field", fid, c.Name)
		}
		fd := newField(i+1, f, m)
		e.Fields = append(e.Fields, fd)
		e.Validation = e.Validation || fd.FieldValidate
		flagField(e, fd)
	}
	if rs != nil {
		e.Relationships = slices.Clone(rs.Relationships)
		e.FieldsContainOwnerOneToOne = rs.OwnerOneToOne
		e.FieldsContainOwnerManyToMany = rs.OwnerManyToMany
		e.FieldsContainOneToMany = rs.OneToMany
	}
	if e.Relationships == nil {
		e.Relationships = []*Relationship{}
	}
	return e, nil
}

// flagField raises the entity flags matching the field type.
func flagField(e *Entity, f *Field) {
	if f.FieldIsEnum {
		return
	}
	switch f.FieldType {
	case "LocalDate":
		e.FieldsContainLocalDate = true
		e.FieldsContainCustomTime = true
	case "ZonedDateTime":
		e.FieldsContainZonedDateTime = true
		e.FieldsContainCustomTime = true
	case "Date":
		e.FieldsContainDate = true
		e.FieldsContainCustomTime = true
	case "BigDecimal":
		e.FieldsContainBigDecimal = true
	default:
		if f.IsBlob() {
			e.FieldsContainBlob = true
		}
	}
}
