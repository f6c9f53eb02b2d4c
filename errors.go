// Package umlgen turns UML class diagrams exported as XMI into entity
// descriptors and a dependency-safe creation order for them.
//
// The errors declared here are shared by the extraction (compiler/load),
// the relationship resolver and the scheduler (compiler/gen). All of them
// are fatal: a run that hits one of them stops and reports it.
package umlgen

import (
	"errors"
	"fmt"
	"strings"
)

// Standard sentinel errors for the failure classes of a generation run.
var (
	// ErrBrokenReference is returned when an id referenced by the model
	// (class, association, injected field) cannot be resolved.
	ErrBrokenReference = errors.New("umlgen: broken reference")

	// ErrDanglingAssociation is returned when the cardinality of an
	// injected field cannot be classified because its association is missing.
	ErrDanglingAssociation = errors.New("umlgen: dangling association")

	// ErrCircularDependency is returned when the scheduler cannot make
	// progress in a full pass.
	ErrCircularDependency = errors.New("umlgen: circular dependency")

	// ErrUnsupportedType is returned when a primitive type is not part of
	// the type catalog of the selected backend.
	ErrUnsupportedType = errors.New("umlgen: unsupported type")

	// ErrUnsupportedValidation is returned when a validation is not allowed
	// for a type in the selected backend.
	ErrUnsupportedValidation = errors.New("umlgen: unsupported validation")
)

// BrokenReferenceError reports an id that could not be resolved.
type BrokenReferenceError struct {
	Kind string // Kind of the missing element ("class", "association", ...)
	ID   string // The unresolved id
	From string // Element holding the reference, if known
}

// Error returns the error string.
func (e *BrokenReferenceError) Error() string {
	var b strings.Builder
	b.WriteString("umlgen: broken reference to ")
	if e.Kind != "" {
		b.WriteString(e.Kind)
		b.WriteString(" ")
	}
	fmt.Fprintf(&b, "%q", e.ID)
	if e.From != "" {
		fmt.Fprintf(&b, " from %q", e.From)
	}
	return b.String()
}

// Is reports whether the target error matches BrokenReferenceError.
func (e *BrokenReferenceError) Is(err error) bool {
	return err == ErrBrokenReference
}

// NewBrokenReferenceError returns a new BrokenReferenceError.
func NewBrokenReferenceError(kind, id, from string) *BrokenReferenceError {
	return &BrokenReferenceError{Kind: kind, ID: id, From: from}
}

// IsBrokenReference returns true if the error is a BrokenReferenceError.
func IsBrokenReference(err error) bool {
	if err == nil {
		return false
	}
	var e *BrokenReferenceError
	return errors.As(err, &e) || errors.Is(err, ErrBrokenReference)
}

// DanglingAssociationError reports an injected field whose association
// could not be resolved while classifying its cardinality.
type DanglingAssociationError struct {
	Field       string // Injected field id
	Association string // Association id the field points to
}

// Error returns the error string.
func (e *DanglingAssociationError) Error() string {
	if e.Association == "" {
		return fmt.Sprintf("umlgen: injected field %q has no association", e.Field)
	}
	return fmt.Sprintf("umlgen: injected field %q references unknown association %q", e.Field, e.Association)
}

// Is reports whether the target error matches DanglingAssociationError.
func (e *DanglingAssociationError) Is(err error) bool {
	return err == ErrDanglingAssociation
}

// NewDanglingAssociationError returns a new DanglingAssociationError.
func NewDanglingAssociationError(field, association string) *DanglingAssociationError {
	return &DanglingAssociationError{Field: field, Association: association}
}

// IsDanglingAssociation returns true if the error is a DanglingAssociationError.
func IsDanglingAssociation(err error) bool {
	if err == nil {
		return false
	}
	var e *DanglingAssociationError
	return errors.As(err, &e) || errors.Is(err, ErrDanglingAssociation)
}

// StuckEdge is an edge that was still open when the scheduler gave up.
type StuckEdge struct {
	Source      string
	Destination string
	Type        string
}

// CircularDependencyError reports that no class could be scheduled in a
// full pass. Edges holds the edge pool at that point.
type CircularDependencyError struct {
	Edges []StuckEdge
}

// Error returns the error string.
func (e *CircularDependencyError) Error() string {
	if len(e.Edges) == 0 {
		return "umlgen: circular dependency detected"
	}
	var b strings.Builder
	b.WriteString("umlgen: circular dependency detected between: ")
	for i, edge := range e.Edges {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%s -> %s (%s)", edge.Source, edge.Destination, edge.Type)
	}
	return b.String()
}

// Is reports whether the target error matches CircularDependencyError.
func (e *CircularDependencyError) Is(err error) bool {
	return err == ErrCircularDependency
}

// NewCircularDependencyError returns a new CircularDependencyError.
func NewCircularDependencyError(edges ...StuckEdge) *CircularDependencyError {
	return &CircularDependencyError{Edges: edges}
}

// IsCircularDependency returns true if the error is a CircularDependencyError.
func IsCircularDependency(err error) bool {
	if err == nil {
		return false
	}
	var e *CircularDependencyError
	return errors.As(err, &e) || errors.Is(err, ErrCircularDependency)
}

// UnsupportedTypeError reports a primitive type missing from the catalog.
type UnsupportedTypeError struct {
	Type    string // Type name
	Field   string // Field declaring the type, if known
	Backend string // Catalog the type was looked up in
}

// Error returns the error string.
func (e *UnsupportedTypeError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "umlgen: type %q", e.Type)
	if e.Field != "" {
		fmt.Fprintf(&b, " of field %q", e.Field)
	}
	b.WriteString(" is not supported")
	if e.Backend != "" {
		fmt.Fprintf(&b, " by %s", e.Backend)
	}
	return b.String()
}

// Is reports whether the target error matches UnsupportedTypeError.
func (e *UnsupportedTypeError) Is(err error) bool {
	return err == ErrUnsupportedType
}

// NewUnsupportedTypeError returns a new UnsupportedTypeError.
func NewUnsupportedTypeError(typ, field, backend string) *UnsupportedTypeError {
	return &UnsupportedTypeError{Type: typ, Field: field, Backend: backend}
}

// IsUnsupportedType returns true if the error is an UnsupportedTypeError.
func IsUnsupportedType(err error) bool {
	if err == nil {
		return false
	}
	var e *UnsupportedTypeError
	return errors.As(err, &e) || errors.Is(err, ErrUnsupportedType)
}

// UnsupportedValidationError reports a validation that is not allowed for
// the type of the field it is attached to.
type UnsupportedValidationError struct {
	Validation string
	Type       string
	Field      string
	Backend    string
}

// Error returns the error string.
func (e *UnsupportedValidationError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "umlgen: validation %q is not supported for type %q", e.Validation, e.Type)
	if e.Field != "" {
		fmt.Fprintf(&b, " (field %q)", e.Field)
	}
	if e.Backend != "" {
		fmt.Fprintf(&b, " by %s", e.Backend)
	}
	return b.String()
}

// Is reports whether the target error matches UnsupportedValidationError.
func (e *UnsupportedValidationError) Is(err error) bool {
	return err == ErrUnsupportedValidation
}

// NewUnsupportedValidationError returns a new UnsupportedValidationError.
func NewUnsupportedValidationError(validation, typ, field, backend string) *UnsupportedValidationError {
	return &UnsupportedValidationError{Validation: validation, Type: typ, Field: field, Backend: backend}
}

// IsUnsupportedValidation returns true if the error is an UnsupportedValidationError.
func IsUnsupportedValidation(err error) bool {
	if err == nil {
		return false
	}
	var e *UnsupportedValidationError
	return errors.As(err, &e) || errors.Is(err, ErrUnsupportedValidation)
}
