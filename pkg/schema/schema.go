package schema

import (
	"fmt"
	"strings"
)

// Field describes one declared field of a module
type Field struct {
	Name        string
	Type        string
	Kind        Kind
	Description string
	Multiple    bool
	Visible     bool
	Languages   []string
	Values      Options
	Precision   *int
	Format      string

	// RelSkel is the structure of the record a relation or file field points to.
	RelSkel *Schema
	// Using is the structure of a nested record field.
	Using *Schema
}

// HasLanguages reports whether the field holds one value per language
func (f *Field) HasLanguages() bool {
	return len(f.Languages) > 0
}

// HasLanguage reports whether lang is one of the field's declared languages
func (f *Field) HasLanguage(lang string) bool {
	for _, l := range f.Languages {
		if l == lang {
			return true
		}
	}
	return false
}

// Option is one entry of a select field's value table
type Option struct {
	Key   string
	Label string
}

// Options is the ordered value table of a select field
type Options []Option

// Label returns the display label for key
func (o Options) Label(key string) (string, bool) {
	for _, opt := range o {
		if opt.Key == key {
			return opt.Label, true
		}
	}
	return "", false
}

// Schema is an ordered set of uniquely named fields
type Schema struct {
	fields []*Field
	index  map[string]int
}

// New builds a schema from fields in declaration order
func New(fields ...Field) (*Schema, error) {
	s := &Schema{index: make(map[string]int, len(fields))}
	for i := range fields {
		if err := s.add(fields[i]); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// MustNew is like New but panics on duplicate field names
func MustNew(fields ...Field) *Schema {
	s, err := New(fields...)
	if err != nil {
		panic(err)
	}
	return s
}

func (s *Schema) add(f Field) error {
	if f.Name == "" {
		return fmt.Errorf("field without name")
	}
	if _, dup := s.index[f.Name]; dup {
		return fmt.Errorf("duplicate field %q", f.Name)
	}
	if f.Kind == KindUnknown {
		f.Kind = ParseKind(f.Type)
	}
	s.index[f.Name] = len(s.fields)
	s.fields = append(s.fields, &f)
	return nil
}

// Field looks up a field by name. A nil schema has no fields.
func (s *Schema) Field(name string) (*Field, bool) {
	if s == nil {
		return nil, false
	}
	i, ok := s.index[name]
	if !ok {
		return nil, false
	}
	return s.fields[i], true
}

// Fields returns the fields in declaration order
func (s *Schema) Fields() []*Field {
	if s == nil {
		return nil
	}
	return s.fields
}

// Names returns the field names in declaration order
func (s *Schema) Names() []string {
	names := make([]string, 0, s.Len())
	for _, f := range s.Fields() {
		names = append(names, f.Name)
	}
	return names
}

// Len returns the number of fields
func (s *Schema) Len() int {
	if s == nil {
		return 0
	}
	return len(s.fields)
}

func (s *Schema) String() string {
	return fmt.Sprintf("Schema(%s)", strings.Join(s.Names(), ", "))
}

// Record is one entry as delivered by the backend
type Record map[string]any

// Key returns the record's backend key, or "" when it has none
func (r Record) Key() string {
	switch k := r["key"].(type) {
	case string:
		return k
	case nil:
		return ""
	default:
		return fmt.Sprint(k)
	}
}
