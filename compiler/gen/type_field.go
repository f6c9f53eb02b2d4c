package gen

import (
	"maps"
	"slices"

	"github.com/syssam/umlgen/compiler/load"
)

// Field is the descriptor of a regular field of an entity.
type Field struct {
	// FieldID is the 1-based position of the field in its entity.
	FieldID              int    `json:"fieldId" yaml:"fieldId" msgpack:"fieldId"`
	FieldName            string `json:"fieldName" yaml:"fieldName" msgpack:"fieldName"`
	FieldNameCapitalized string `json:"fieldNameCapitalized" yaml:"fieldNameCapitalized" msgpack:"fieldNameCapitalized"`
	FieldNameUnderscored string `json:"fieldNameUnderscored" yaml:"fieldNameUnderscored" msgpack:"fieldNameUnderscored"`
	FieldType            string `json:"fieldType" yaml:"fieldType" msgpack:"fieldType"`
	Javadoc              string `json:"javadoc,omitempty" yaml:"javadoc,omitempty" msgpack:"javadoc,omitempty"`
	// FieldValues holds the literals of an enum field.
	FieldValues []string `json:"fieldValues,omitempty" yaml:"fieldValues,omitempty" msgpack:"fieldValues,omitempty"`
	FieldIsEnum bool     `json:"fieldIsEnum,omitempty" yaml:"fieldIsEnum,omitempty" msgpack:"fieldIsEnum,omitempty"`
	// FieldValidateRules holds the validation names, sorted. The values of
	// the validations that take one are in FieldValidateValues.
	FieldValidate       bool              `json:"fieldValidate" yaml:"fieldValidate" msgpack:"fieldValidate"`
	FieldValidateRules  []string          `json:"fieldValidateRules,omitempty" yaml:"fieldValidateRules,omitempty" msgpack:"fieldValidateRules,omitempty"`
	FieldValidateValues map[string]string `json:"fieldValidateValues,omitempty" yaml:"fieldValidateValues,omitempty" msgpack:"fieldValidateValues,omitempty"`
}

// Validation returns the value of the named validation and whether it is
// set on the field.
func (f *Field) Validation(name string) (string, bool) {
	if !slices.Contains(f.FieldValidateRules, name) {
		return "", false
	}
	return f.FieldValidateValues[name], true
}

// IsTime reports whether the field holds a date or a timestamp.
func (f *Field) IsTime() bool {
	if f.FieldIsEnum {
		return false
	}
	switch f.FieldType {
	case "LocalDate", "ZonedDateTime", "Date":
		return true
	}
	return false
}

// IsBlob reports whether the field holds binary or large text content.
func (f *Field) IsBlob() bool {
	if f.FieldIsEnum {
		return false
	}
	switch f.FieldType {
	case "Blob", "AnyBlob", "ImageBlob", "TextBlob":
		return true
	}
	return false
}

// newField returns the descriptor of a model field at position id.
func newField(id int, f *load.Field, m *load.Model) *Field {
	fd := &Field{
		FieldID:              id,
		FieldName:            f.Name,
		FieldNameCapitalized: capitalize(f.Name),
		FieldNameUnderscored: underscore(f.Name),
		FieldType:            f.Type,
		Javadoc:              f.Comment,
	}
	if en := m.Enums[f.Enum]; f.IsEnum() && en != nil {
		fd.FieldIsEnum = true
		fd.FieldValues = slices.Clone(en.Values)
	}
	if len(f.Validations) > 0 {
		fd.FieldValidate = true
		fd.FieldValidateRules = slices.Sorted(maps.Keys(f.Validations))
		for _, name := range fd.FieldValidateRules {
			if v := f.Validations[name]; v != "" {
				if fd.FieldValidateValues == nil {
					fd.FieldValidateValues = make(map[string]string)
				}
				fd.FieldValidateValues[name] = v
			}
		}
	}
	return fd
}
