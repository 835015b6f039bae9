package format

import (
	"encoding/json"
	"testing"

	"github.com/arthur-debert/viur/pkg/schema"
	"github.com/stretchr/testify/assert"
)

func TestSubstitute_Terminal(t *testing.T) {
	tests := []struct {
		name     string
		template string
		data     any
		want     string
	}{
		{"no_placeholder_map_data", "plain text", map[string]any{"a": "b"}, "plain text"},
		{"no_placeholder_nil_data", "plain text", nil, "plain text"},
		{"string_is_returned_verbatim", "$(name)", "hello", "hello"},
		{"string_is_not_rescanned", "$(name)", "$(name)", "$(name)"},
		{"number_is_returned_verbatim", "$(name)", json.Number("42"), "42"},
		{"nil_keeps_template", "$(name)", nil, "$(name)"},
		{"empty_map_keeps_template", "$(name)", map[string]any{}, "$(name)"},
		{"empty_list_is_empty", "$(name)", []any{}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Substitute(tt.template, tt.data, nil, ""))
		})
	}
}

func TestSubstitute_Generic(t *testing.T) {
	t.Run("nested_paths", func(t *testing.T) {
		data := map[string]any{
			"name":    "Test",
			"subdict": map[string]any{"a": "1", "b": "2"},
		}
		got := Substitute("Name: $(name), subdict.a: $(subdict.a)", data, nil, "")
		assert.Equal(t, "Name: Test, subdict.a: 1", got)
	})

	t.Run("list_data_renders_each_element", func(t *testing.T) {
		data := []any{
			map[string]any{"name": "a"},
			map[string]any{"name": "b"},
		}
		assert.Equal(t, "a, b", Substitute("$(name)", data, nil, ""))
	})

	t.Run("scalar_lists_are_joined", func(t *testing.T) {
		data := map[string]any{"tags": []any{"x", "y", json.Number("3")}}
		assert.Equal(t, "x, y, 3", Substitute("$(tags)", data, nil, ""))
	})

	t.Run("lists_of_records_use_first_element", func(t *testing.T) {
		data := map[string]any{"items": []any{
			map[string]any{"n": "1"},
			map[string]any{"n": "2"},
		}}
		assert.Equal(t, "1", Substitute("$(items.n)", data, nil, ""))
	})

	t.Run("unresolved_placeholders_stay", func(t *testing.T) {
		data := map[string]any{"name": "n"}
		assert.Equal(t, "$(missing) n", Substitute("$(missing) $(name)", data, nil, ""))
	})

	t.Run("repeated_placeholders", func(t *testing.T) {
		data := map[string]any{"x": "1"}
		assert.Equal(t, "1-1", Substitute("$(x)-$(x)", data, nil, ""))
	})

	t.Run("self_referencing_data_terminates", func(t *testing.T) {
		m := map[string]any{"name": "loop"}
		m["self"] = m
		assert.Equal(t, "loop", Substitute("$(name)", m, nil, ""))
	})
}

func TestSubstitute_SchemaAware(t *testing.T) {
	s := schema.MustNew(
		schema.Field{Name: "title", Type: "str", Languages: []string{"en", "de"}},
		schema.Field{Name: "addr", Type: "record"},
		schema.Field{Name: "kind", Type: "select", Values: schema.Options{
			{Key: "a", Label: "Apple"}, {Key: "b", Label: "Banana"},
		}},
		schema.Field{
			Name:    "author",
			Type:    "relational.user",
			Format:  "$(dest.name)",
			RelSkel: schema.MustNew(schema.Field{Name: "name", Type: "str"}),
		},
	)

	t.Run("language_preference", func(t *testing.T) {
		data := map[string]any{"title": map[string]any{"en": "Hello", "de": "Hallo"}}

		assert.Equal(t, "Hallo", Substitute("$(title)", data, s, "de"))
		assert.Equal(t, "Hello, Hallo", Substitute("$(title)", data, s, ""))
		assert.Equal(t, "Hello, Hallo", Substitute("$(title)", data, s, "fr"))
	})

	t.Run("map_without_languages_is_not_flattened", func(t *testing.T) {
		data := map[string]any{"addr": map[string]any{"city": "Dortmund"}}

		assert.Equal(t, "$(addr) $(addr.city)", Substitute("$(addr) $(addr.city)", data, s, ""))
		assert.Equal(t, "Dortmund", Substitute("$(addr.city)", data, s, ""))
	})

	t.Run("select_labels", func(t *testing.T) {
		assert.Equal(t, "Apple", Substitute("$(kind)", map[string]any{"kind": "a"}, s, ""))
		assert.Equal(t, "z", Substitute("$(kind)", map[string]any{"kind": "z"}, s, ""))
	})

	t.Run("numeric_select_keys", func(t *testing.T) {
		status := schema.MustNew(schema.Field{Name: "status", Type: "select", Values: schema.Options{
			{Key: "1", Label: "One"}, {Key: "2", Label: "Two"},
		}})
		tests := []struct {
			name string
			val  any
			want string
		}{
			{"json_number", json.Number("1"), "One"},
			{"float", float64(2), "Two"},
			{"int", 2, "Two"},
			{"unknown_key", json.Number("3"), "3"},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				assert.Equal(t, tt.want, Substitute("$(status)", map[string]any{"status": tt.val}, status, ""))
			})
		}
	})

	t.Run("multi_select_is_flattened_before_lookup", func(t *testing.T) {
		data := map[string]any{"kind": []any{"a", "b"}}
		assert.Equal(t, "a, b", Substitute("$(kind)", data, s, ""))
	})

	t.Run("relation_wrappers_use_field_format", func(t *testing.T) {
		data := map[string]any{"author": []any{
			map[string]any{"dest": map[string]any{"name": "Ann"}, "rel": nil},
			map[string]any{"dest": map[string]any{"name": "Bob"}, "rel": nil},
		}}
		assert.Equal(t, "By Ann, Bob", Substitute("By $(author)", data, s, ""))
	})

	t.Run("language_fields_inside_relations", func(t *testing.T) {
		rel := schema.MustNew(schema.Field{Name: "name", Type: "str", Languages: []string{"en", "de"}})
		data := []any{map[string]any{
			"dest": map[string]any{"name": map[string]any{"en": "Shoe", "de": "Schuh"}},
			"rel":  nil,
		}}
		assert.Equal(t, "Schuh", Substitute("$(dest.name)", data, rel, "de"))
	})
}

func TestPlaceholder(t *testing.T) {
	assert.Equal(t, "$(a)", Placeholder("a"))
	assert.Equal(t, "$(dest.name)", Placeholder("dest", "name"))
}

func TestStringify(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
	}{
		{"nil", nil, ""},
		{"string", "x", "x"},
		{"json_number", json.Number("1.50"), "1.50"},
		{"float", 2.5, "2.5"},
		{"whole_float", float64(3), "3"},
		{"int", 7, "7"},
		{"bool", true, "true"},
		{"map", map[string]any{"a": "b"}, `{"a":"b"}`},
		{"list", []any{"a", json.Number("1")}, `["a",1]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Stringify(tt.in))
		})
	}
}
