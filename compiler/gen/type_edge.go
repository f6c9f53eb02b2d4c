package gen

import (
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
)

// =============================================================================
// Cardinality
// =============================================================================

// Cardinality is the relation type of a relationship.
type Cardinality int

// Relation types.
const (
	Unknown    Cardinality = iota // Unknown.
	OneToOne                      // One to one.
	OneToMany                     // One to many.
	ManyToOne                     // Many to one (mirror side of OneToMany).
	ManyToMany                    // Many to many.
	// Reflexive tags a scheduling edge whose source and destination are the
	// same class. Relationships never carry it.
	Reflexive
)

// String returns the relation name.
func (c Cardinality) String() string {
	s := "unknown"
	switch c {
	case OneToOne:
		s = "one-to-one"
	case OneToMany:
		s = "one-to-many"
	case ManyToOne:
		s = "many-to-one"
	case ManyToMany:
		s = "many-to-many"
	case Reflexive:
		s = "reflexive"
	}
	return s
}

// parseCardinality returns the cardinality with the given name.
func parseCardinality(s string) (Cardinality, error) {
	for c := OneToOne; c <= Reflexive; c++ {
		if c.String() == s {
			return c, nil
		}
	}
	return Unknown, fmt.Errorf("gen: unknown cardinality %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (c Cardinality) MarshalText() ([]byte, error) {
	if c == Unknown {
		return nil, fmt.Errorf("gen: cannot marshal unknown cardinality")
	}
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Cardinality) UnmarshalText(text []byte) error {
	v, err := parseCardinality(string(text))
	if err != nil {
		return err
	}
	*c = v
	return nil
}

// EncodeMsgpack implements msgpack.CustomEncoder.
func (c Cardinality) EncodeMsgpack(enc *msgpack.Encoder) error {
	return enc.EncodeString(c.String())
}

// DecodeMsgpack implements msgpack.CustomDecoder.
func (c *Cardinality) DecodeMsgpack(dec *msgpack.Decoder) error {
	s, err := dec.DecodeString()
	if err != nil {
		return err
	}
	return c.UnmarshalText([]byte(s))
}

// cardinalityOf is the truth table over the two collection flags of an
// association: the near end (injected field) and the far end.
func cardinalityOf(near, far bool) Cardinality {
	switch {
	case near && far:
		return ManyToMany
	case near || far:
		return OneToMany
	default:
		return OneToOne
	}
}

// =============================================================================
// Relationship
// =============================================================================

// DefaultForeignKey is the field name recorded on to-many and owning
// many-to-many sides.
const DefaultForeignKey = "id"

// Relationship is one side of an association as registered on an entity.
type Relationship struct {
	// RelationshipID is the 1-based position of the relationship in its entity.
	RelationshipID              int         `json:"relationshipId" yaml:"relationshipId" msgpack:"relationshipId"`
	RelationshipName            string      `json:"relationshipName" yaml:"relationshipName" msgpack:"relationshipName"`
	RelationshipNameCapitalized string      `json:"relationshipNameCapitalized" yaml:"relationshipNameCapitalized" msgpack:"relationshipNameCapitalized"`
	RelationshipFieldName       string      `json:"relationshipFieldName" yaml:"relationshipFieldName" msgpack:"relationshipFieldName"`
	RelationshipType            Cardinality `json:"relationshipType" yaml:"relationshipType" msgpack:"relationshipType"`
	// OtherEntityName is the entity the relationship points at, with its
	// first letter lower-cased.
	OtherEntityName             string `json:"otherEntityName" yaml:"otherEntityName" msgpack:"otherEntityName"`
	OtherEntityNameCapitalized  string `json:"otherEntityNameCapitalized" yaml:"otherEntityNameCapitalized" msgpack:"otherEntityNameCapitalized"`
	OtherEntityRelationshipName string `json:"otherEntityRelationshipName,omitempty" yaml:"otherEntityRelationshipName,omitempty" msgpack:"otherEntityRelationshipName,omitempty"`
	OtherEntityField            string `json:"otherEntityField,omitempty" yaml:"otherEntityField,omitempty" msgpack:"otherEntityField,omitempty"`
	OwnerSide                   bool   `json:"ownerSide" yaml:"ownerSide" msgpack:"ownerSide"`
}

// ToMany reports whether the relationship holds a collection.
func (r *Relationship) ToMany() bool {
	return r.RelationshipType == OneToMany || r.RelationshipType == ManyToMany
}

// newRelationship fills the naming fields of a relationship.
func newRelationship(name, otherEntity string, typ Cardinality) *Relationship {
	return &Relationship{
		RelationshipName:            name,
		RelationshipNameCapitalized: capitalize(name),
		RelationshipFieldName:       lowerFirst(name),
		RelationshipType:            typ,
		OtherEntityName:             lowerFirst(otherEntity),
		OtherEntityNameCapitalized:  capitalize(otherEntity),
	}
}

// Relations holds the relationships registered on one entity and the
// flags raised while registering them.
type Relations struct {
	Relationships   []*Relationship
	OwnerOneToOne   bool
	OwnerManyToMany bool
	OneToMany       bool
}

// add appends r and assigns its positional id.
func (rs *Relations) add(r *Relationship) {
	r.RelationshipID = len(rs.Relationships) + 1
	rs.Relationships = append(rs.Relationships, r)
}
