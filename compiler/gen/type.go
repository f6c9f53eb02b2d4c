package gen

// Entity is the descriptor of one class, handed to the downstream code
// generator. It is serialized as is by the DescriptorWriter.
type Entity struct {
	// ID is the xmi:id of the class the entity is built from.
	ID            string          `json:"-" yaml:"-" msgpack:"-"`
	Name          string          `json:"name" yaml:"name" msgpack:"name"`
	Javadoc       string          `json:"javadoc,omitempty" yaml:"javadoc,omitempty" msgpack:"javadoc,omitempty"`
	Fields        []*Field        `json:"fields" yaml:"fields" msgpack:"fields"`
	Relationships []*Relationship `json:"relationships" yaml:"relationships" msgpack:"relationships"`
	// ChangelogDate is a timestamp (yyyyMMddHHmmss), unique per entity.
	ChangelogDate string `json:"changelogDate" yaml:"changelogDate" msgpack:"changelogDate"`
	// Pagination and Validation are hints for the downstream generator.
	Pagination Pagination `json:"pagination" yaml:"pagination" msgpack:"pagination"`
	Validation bool       `json:"validation" yaml:"validation" msgpack:"validation"`

	FieldsContainOwnerOneToOne   bool `json:"fieldsContainOwnerOneToOne" yaml:"fieldsContainOwnerOneToOne" msgpack:"fieldsContainOwnerOneToOne"`
	FieldsContainOwnerManyToMany bool `json:"fieldsContainOwnerManyToMany" yaml:"fieldsContainOwnerManyToMany" msgpack:"fieldsContainOwnerManyToMany"`
	FieldsContainOneToMany       bool `json:"fieldsContainOneToMany" yaml:"fieldsContainOneToMany" msgpack:"fieldsContainOneToMany"`
	FieldsContainLocalDate       bool `json:"fieldsContainLocalDate" yaml:"fieldsContainLocalDate" msgpack:"fieldsContainLocalDate"`
	FieldsContainZonedDateTime   bool `json:"fieldsContainZonedDateTime" yaml:"fieldsContainZonedDateTime" msgpack:"fieldsContainZonedDateTime"`
	FieldsContainDate            bool `json:"fieldsContainDate" yaml:"fieldsContainDate" msgpack:"fieldsContainDate"`
	FieldsContainCustomTime      bool `json:"fieldsContainCustomTime" yaml:"fieldsContainCustomTime" msgpack:"fieldsContainCustomTime"`
	FieldsContainBigDecimal      bool `json:"fieldsContainBigDecimal" yaml:"fieldsContainBigDecimal" msgpack:"fieldsContainBigDecimal"`
	FieldsContainBlob            bool `json:"fieldsContainBlob" yaml:"fieldsContainBlob" msgpack:"fieldsContainBlob"`
}

// FileName returns the base name (without extension) of the files written
// for the entity.
func (e *Entity) FileName() string { return e.Name }

// Relationship returns the relationship with the given name, nil if there
// is none.
func (e *Entity) Relationship(name string) *Relationship {
	for _, r := range e.Relationships {
		if r.RelationshipName == name {
			return r
		}
	}
	return nil
}

// Field returns the field with the given name, nil if there is none.
func (e *Entity) Field(name string) *Field {
	for _, f := range e.Fields {
		if f.FieldName == name {
			return f
		}
	}
	return nil
}
