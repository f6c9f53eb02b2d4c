package dialect

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// Backend identifiers.
const (
	SQL       = "sql"
	MongoDB   = "mongodb"
	Cassandra = "cassandra"
)

// Validation names understood by the catalogs.
const (
	Required  = "required"
	MinLength = "minlength"
	MaxLength = "maxlength"
	Pattern   = "pattern"
	Min       = "min"
	Max       = "max"
	MinBytes  = "minbytes"
	MaxBytes  = "maxbytes"
)

// EnumType is the catalog name every enumeration declared in a model is
// checked as.
const EnumType = "Enum"

// ErrUnknownBackend is returned by Open for an unrecognized backend.
var ErrUnknownBackend = errors.New("dialect: unknown backend")

// Catalog is the capability surface a backend exposes to the extractor.
type Catalog interface {
	// Name returns the backend identifier.
	Name() string
	// SupportsType reports whether the primitive type exists in the backend.
	SupportsType(name string) bool
	// ValidationsFor returns the validations allowed for the type, sorted.
	// It returns nil for an unsupported type.
	ValidationsFor(name string) []string
	// IsValidationSupported reports whether the validation may be attached
	// to a field of the given type.
	IsValidationSupported(name, validation string) bool
}

// Open returns the catalog of the given backend.
func Open(backend string) (Catalog, error) {
	switch strings.ToLower(strings.TrimSpace(backend)) {
	case SQL:
		return Relational(), nil
	case MongoDB:
		return Document(), nil
	case Cassandra:
		return Columnar(), nil
	default:
		return nil, fmt.Errorf("%w %q: use %s, %s or %s", ErrUnknownBackend, backend, SQL, MongoDB, Cassandra)
	}
}

// Backends returns the identifiers accepted by Open.
func Backends() []string {
	return []string{SQL, MongoDB, Cassandra}
}

// ContainsType is a shorthand for c.SupportsType used by callers that only
// hold the catalog as a lookup function.
func ContainsType(c Catalog, name string) bool {
	return c != nil && c.SupportsType(name)
}

// validation sets shared by the backends.
var (
	stringRules  = []string{Required, MinLength, MaxLength, Pattern}
	numericRules = []string{Required, Min, Max}
	blobRules    = []string{Required, MinBytes, MaxBytes}
	plainRules   = []string{Required}
)

// typeTable maps a type name to the validations allowed for it.
type typeTable map[string][]string

func (t typeTable) supports(name string) bool {
	_, ok := t[name]
	return ok
}

func (t typeTable) validations(name string) []string {
	rules, ok := t[name]
	if !ok {
		return nil
	}
	out := slices.Clone(rules)
	slices.Sort(out)
	return out
}

func (t typeTable) allows(name, validation string) bool {
	return slices.Contains(t[name], validation)
}
