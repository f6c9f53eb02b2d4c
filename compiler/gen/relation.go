package gen

import (
	"github.com/syssam/umlgen"
	"github.com/syssam/umlgen/compiler/load"
)

// ResolveCardinality returns the cardinality of an injected field from the
// collection flags of its two ends. The association must be the one the
// field refers to; a nil association is reported as dangling.
func ResolveCardinality(f *load.InjectedField, a *load.Association) (Cardinality, error) {
	if f == nil {
		return Unknown, umlgen.NewDanglingAssociationError("", "")
	}
	if a == nil || a.ID != f.Association {
		return Unknown, umlgen.NewDanglingAssociationError(f.Name, f.Association)
	}
	return cardinalityOf(f.UpperBound, a.UpperBound), nil
}

// Derivation is the output of DeriveRelationships.
type Derivation struct {
	// Relations holds the relationships of every class, keyed by class id.
	Relations map[string]*Relations
	// Cardinalities holds the resolved cardinality of every injected field,
	// keyed by injected-field id.
	Cardinalities map[string]Cardinality
}

// DeriveRelationships builds, for every injected field of m, the owner-side
// relationship on the declaring class and the mirror-side relationship on
// the target class. Classes and injected fields are visited in document
// order, which fixes the relationship ids.
func DeriveRelationships(m *load.Model) (*Derivation, error) {
	d := &Derivation{
		Relations:     make(map[string]*Relations, len(m.ClassOrder)),
		Cardinalities: make(map[string]Cardinality, len(m.InjectedFields)),
	}
	for _, id := range m.ClassOrder {
		if m.Classes[id] == nil {
			return nil, umlgen.NewBrokenReferenceError("class", id, m.Name)
		}
		d.Relations[id] = &Relations{}
	}
	for _, id := range m.ClassOrder {
		c := m.Classes[id]
		for _, fid := range c.InjectedFields {
			f := m.InjectedFields[fid]
			if f == nil {
				return nil, umlgen.NewBrokenReferenceError("injected field", fid, c.Name)
			}
			if err := d.derive(m, f); err != nil {
				return nil, err
			}
		}
	}
	return d, nil
}

func (d *Derivation) derive(m *load.Model, f *load.InjectedField) error {
	assoc := m.Associations[f.Association]
	card, err := ResolveCardinality(f, assoc)
	if err != nil {
		return err
	}
	d.Cardinalities[f.ID] = card

	owner, ok := d.Relations[f.Class]
	if !ok {
		return umlgen.NewBrokenReferenceError("class", f.Class, f.Name)
	}
	target := m.Classes[f.Type]
	if target == nil {
		return umlgen.NewBrokenReferenceError("class", f.Type, f.Name)
	}
	far := m.Classes[assoc.Type]
	if far == nil {
		return umlgen.NewBrokenReferenceError("class", assoc.Type, assoc.ID)
	}
	mirrorName := assoc.Name
	if mirrorName == "" {
		mirrorName = lower(far.Name)
	}

	own := newRelationship(f.Name, target.Name, card)
	var mirror *Relationship
	switch card {
	case OneToOne:
		own.OwnerSide = true
		owner.OwnerOneToOne = true
		mirror = newRelationship(mirrorName, far.Name, OneToOne)
		mirror.OtherEntityRelationshipName = f.Name
	case OneToMany:
		own.OtherEntityRelationshipName = mirrorName
		owner.OneToMany = true
		mirror = newRelationship(mirrorName, far.Name, ManyToOne)
		mirror.OtherEntityField = DefaultForeignKey
	case ManyToMany:
		own.OwnerSide = true
		own.OtherEntityField = DefaultForeignKey
		owner.OwnerManyToMany = true
		mirror = newRelationship(mirrorName, far.Name, ManyToMany)
		mirror.OtherEntityRelationshipName = f.Name
	}
	owner.add(own)
	// A self-reference is registered once, from the declaring side.
	if own.OtherEntityName == mirror.OtherEntityName {
		return nil
	}
	rs, ok := d.Relations[target.ID]
	if !ok {
		return umlgen.NewBrokenReferenceError("class", target.ID, f.Name)
	}
	rs.add(mirror)
	return nil
}
