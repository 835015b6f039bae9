package format

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/arthur-debert/viur/pkg/schema"
)

// Stringify renders a decoded JSON value as cell text
func Stringify(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case json.Number:
		return x.String()
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32)
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case bool:
		return strconv.FormatBool(x)
	case fmt.Stringer:
		return x.String()
	}

	if _, ok := asMap(v); ok {
		return marshal(v)
	}
	if _, ok := asList(v); ok {
		return marshal(v)
	}
	return fmt.Sprint(v)
}

// JoinValues stringifies each element and joins them with Separator
func JoinValues(items []any) string {
	parts := make([]string, 0, len(items))
	for _, item := range items {
		parts = append(parts, Stringify(item))
	}
	return strings.Join(parts, Separator)
}

func marshal(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}

// AsMap reports whether v is a JSON object and returns it
func AsMap(v any) (map[string]any, bool) {
	return asMap(v)
}

// AsList reports whether v is a JSON array and returns its elements
func AsList(v any) ([]any, bool) {
	return asList(v)
}

func asMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case schema.Record:
		return m, true
	}
	return nil, false
}

func asList(v any) ([]any, bool) {
	switch l := v.(type) {
	case []any:
		return l, true
	case []string:
		items := make([]any, len(l))
		for i, s := range l {
			items[i] = s
		}
		return items, true
	case []map[string]any:
		items := make([]any, len(l))
		for i, m := range l {
			items[i] = m
		}
		return items, true
	case []schema.Record:
		items := make([]any, len(l))
		for i, r := range l {
			items[i] = r
		}
		return items, true
	}
	return nil, false
}

// isScalar reports whether v is a non-nil value other than a mapping or list
func isScalar(v any) bool {
	if v == nil {
		return false
	}
	if _, ok := asMap(v); ok {
		return false
	}
	_, ok := asList(v)
	return !ok
}
