package format

import (
	"sort"
	"strings"

	"github.com/arthur-debert/viur/pkg/schema"
)

// maxDepth bounds recursion for hand-built data that refers to itself.
const maxDepth = 64

// Separator joins multiple values inside one rendered string
const Separator = ", "

// Placeholder returns the literal placeholder for a traversal path
func Placeholder(path ...string) string {
	return "$(" + strings.Join(path, ".") + ")"
}

// Substitute replaces every resolvable placeholder of template with values
// from data. Scalar data is returned as is; absent data leaves the template
// untouched. s may be nil, in which case only plain nested-map substitution
// happens. language selects one entry of language-map fields.
func Substitute(template string, data any, s *schema.Schema, language string) string {
	e := engine{language: language}
	return e.substitute(template, data, s, nil, 0)
}

type engine struct {
	language string
}

func (e engine) substitute(tmpl string, data any, s *schema.Schema, prefix []string, depth int) string {
	if depth > maxDepth {
		return tmpl
	}

	if items, ok := asList(data); ok {
		parts := make([]string, 0, len(items))
		for _, item := range items {
			parts = append(parts, e.substitute(tmpl, item, s, prefix, depth+1))
		}
		return strings.Join(parts, Separator)
	}

	m, ok := asMap(data)
	if !ok {
		if data == nil {
			return tmpl
		}
		return Stringify(data)
	}
	if len(m) == 0 {
		return tmpl
	}

	res := tmpl
	for _, key := range sortedKeys(m) {
		path := appendPath(prefix, key)
		if field, ok := s.Field(key); ok {
			res = e.schemaAware(res, tmpl, m[key], field, s, path, depth)
		} else {
			res = e.generic(res, m[key], s, path, depth)
		}
	}
	return res
}

// generic handles a key the schema knows nothing about.
// Nested maps keep the current schema; the first element of a list of
// records is substituted schema-free.
func (e engine) generic(res string, val any, s *schema.Schema, path []string, depth int) string {
	if m, ok := asMap(val); ok {
		res = e.substitute(res, m, s, path, depth+1)
		return replacePath(res, path, val)
	}

	if items, ok := asList(val); ok {
		if len(items) > 0 {
			if first, ok := asMap(items[0]); ok {
				res = e.substitute(res, first, nil, path, depth+1)
				return replacePath(res, path, val)
			}
		}
		return replacePath(res, path, JoinValues(items))
	}

	return replacePath(res, path, val)
}

// schemaAware handles a key with a schema entry. tmpl is the template this
// level was called with; relation wrappers without their own format reuse it.
func (e engine) schemaAware(res, tmpl string, val any, f *schema.Field, s *schema.Schema, path []string, depth int) string {
	ph := Placeholder(path...)

	if m, ok := asMap(val); ok {
		if strings.Contains(res, ph) {
			if !f.HasLanguages() {
				return res
			}
			val = e.languageValue(m, f)
		} else {
			res = e.substitute(res, m, s, path, depth+1)
		}
	} else if items, ok := asList(val); ok {
		if len(items) > 0 {
			if first, ok := asMap(items[0]); ok {
				if isRelationWrapper(first) {
					format := tmpl
					if f.Format != "" && f.RelSkel != nil {
						format = f.Format
					}
					parts := make([]string, 0, len(items))
					for _, item := range items {
						parts = append(parts, e.substitute(format, item, f.RelSkel, nil, depth+1))
					}
					return strings.ReplaceAll(res, ph, strings.Join(parts, Separator))
				}
				res = e.substitute(res, first, nestedOf(f), path, depth+1)
			} else {
				val = JoinValues(items)
			}
		} else {
			val = ""
		}
	}

	// Labels are looked up after lists were flattened, so a multi-valued
	// select only resolves when the joined text itself is a key.
	if f.Kind == schema.KindSelect && len(f.Values) > 0 && isScalar(val) {
		if label, found := f.Values.Label(Stringify(val)); found {
			val = label
		}
	}

	return replacePath(res, path, val)
}

// languageValue picks the preferred language or joins all of them.
func (e engine) languageValue(m map[string]any, f *schema.Field) string {
	if e.language != "" && f.HasLanguage(e.language) {
		return Stringify(m[e.language])
	}

	seen := make(map[string]bool, len(m))
	var parts []string
	for _, lang := range f.Languages {
		if v, ok := m[lang]; ok {
			parts = append(parts, Stringify(v))
			seen[lang] = true
		}
	}
	for _, lang := range sortedKeys(m) {
		if !seen[lang] {
			parts = append(parts, Stringify(m[lang]))
		}
	}
	return strings.Join(parts, Separator)
}

// replacePath stringifies val only when its placeholder occurs in res.
func replacePath(res string, path []string, val any) string {
	ph := Placeholder(path...)
	if !strings.Contains(res, ph) {
		return res
	}
	return strings.ReplaceAll(res, ph, Stringify(val))
}

func nestedOf(f *schema.Field) *schema.Schema {
	if f.Using != nil {
		return f.Using
	}
	return f.RelSkel
}

func isRelationWrapper(m map[string]any) bool {
	_, hasDest := m["dest"]
	_, hasRel := m["rel"]
	return hasDest && hasRel
}

func appendPath(prefix []string, key string) []string {
	path := make([]string, len(prefix), len(prefix)+1)
	copy(path, prefix)
	return append(path, key)
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
