package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

type rawField struct {
	Type      string          `json:"type"`
	Descr     string          `json:"descr"`
	Multiple  bool            `json:"multiple"`
	Visible   *bool           `json:"visible"`
	Languages []string        `json:"languages"`
	Values    Options         `json:"values"`
	Precision *int            `json:"precision"`
	Format    string          `json:"format"`
	RelSkel   json.RawMessage `json:"relskel"`
	Using     json.RawMessage `json:"using"`
}

// UnmarshalJSON accepts both the pair-list and the object representation
func (s *Schema) UnmarshalJSON(data []byte) error {
	names, raws, err := namedEntries(data)
	if err != nil {
		return fmt.Errorf("decode structure: %w", err)
	}

	decoded := Schema{index: make(map[string]int, len(names))}
	for _, name := range names {
		f, err := decodeField(name, raws[name])
		if err != nil {
			return err
		}
		if err := decoded.add(f); err != nil {
			return fmt.Errorf("decode structure: %w", err)
		}
	}

	*s = decoded
	return nil
}

func decodeField(name string, data json.RawMessage) (Field, error) {
	var raw rawField
	if err := json.Unmarshal(data, &raw); err != nil {
		return Field{}, fmt.Errorf("decode field %q: %w", name, err)
	}

	f := Field{
		Name:        name,
		Type:        raw.Type,
		Kind:        ParseKind(raw.Type),
		Description: raw.Descr,
		Multiple:    raw.Multiple,
		Visible:     raw.Visible == nil || *raw.Visible,
		Languages:   raw.Languages,
		Values:      raw.Values,
		Precision:   raw.Precision,
		Format:      raw.Format,
	}
	if f.Description == "" {
		f.Description = name
	}

	var err error
	if f.RelSkel, err = nestedSchema(raw.RelSkel); err != nil {
		return Field{}, fmt.Errorf("decode relskel of %q: %w", name, err)
	}
	if f.Using, err = nestedSchema(raw.Using); err != nil {
		return Field{}, fmt.Errorf("decode using of %q: %w", name, err)
	}
	return f, nil
}

func nestedSchema(data json.RawMessage) (*Schema, error) {
	if isNull(data) {
		return nil, nil
	}
	var s Schema
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// UnmarshalJSON accepts [[key, label], ...] as well as {key: label, ...}
func (o *Options) UnmarshalJSON(data []byte) error {
	if isNull(data) {
		*o = nil
		return nil
	}

	keys, raws, err := namedEntries(data)
	if err != nil {
		return fmt.Errorf("decode values: %w", err)
	}

	opts := make(Options, 0, len(keys))
	for _, key := range keys {
		opts = append(opts, Option{Key: key, Label: scalarText(raws[key])})
	}
	*o = opts
	return nil
}

// namedEntries reads either a list of [name, value] pairs or an object and
// returns the names in document order. A name occurring twice is an error.
func namedEntries(data []byte) ([]string, map[string]json.RawMessage, error) {
	trimmed := bytes.TrimSpace(data)
	if isNull(trimmed) {
		return nil, map[string]json.RawMessage{}, nil
	}

	switch trimmed[0] {
	case '[':
		var pairs []json.RawMessage
		if err := json.Unmarshal(trimmed, &pairs); err != nil {
			return nil, nil, err
		}
		names := make([]string, 0, len(pairs))
		raws := make(map[string]json.RawMessage, len(pairs))
		for i, p := range pairs {
			var pair []json.RawMessage
			if err := json.Unmarshal(p, &pair); err != nil || len(pair) != 2 {
				return nil, nil, fmt.Errorf("entry %d is not a [name, value] pair", i)
			}
			name := scalarText(pair[0])
			if _, dup := raws[name]; dup {
				return nil, nil, fmt.Errorf("duplicate name %q", name)
			}
			names = append(names, name)
			raws[name] = pair[1]
		}
		return names, raws, nil

	case '{':
		dec := json.NewDecoder(bytes.NewReader(trimmed))
		if _, err := dec.Token(); err != nil {
			return nil, nil, err
		}
		var names []string
		raws := make(map[string]json.RawMessage)
		for dec.More() {
			tok, err := dec.Token()
			if err != nil {
				return nil, nil, err
			}
			name, _ := tok.(string)
			var raw json.RawMessage
			if err := dec.Decode(&raw); err != nil {
				return nil, nil, err
			}
			if _, dup := raws[name]; dup {
				return nil, nil, fmt.Errorf("duplicate name %q", name)
			}
			names = append(names, name)
			raws[name] = raw
		}
		return names, raws, nil

	default:
		return nil, nil, fmt.Errorf("expected list or object, got %.20s", trimmed)
	}
}

// scalarText renders a JSON scalar as plain text; strings lose their quotes.
func scalarText(data json.RawMessage) string {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		return s
	}
	if isNull(data) {
		return ""
	}
	return strings.TrimSpace(string(data))
}

func isNull(data []byte) bool {
	trimmed := bytes.TrimSpace(data)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

// DecodeStructure parses the body of a module's view/structure response
func DecodeStructure(body []byte) (*Schema, error) {
	var envelope struct {
		Structure json.RawMessage `json:"structure"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("decode structure response: %w", err)
	}
	if isNull(envelope.Structure) {
		return nil, fmt.Errorf("structure response has no structure")
	}

	var s Schema
	if err := json.Unmarshal(envelope.Structure, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// DecodeRecord decodes a JSON object keeping numbers as json.Number
func DecodeRecord(data []byte) (Record, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var rec Record
	if err := dec.Decode(&rec); err != nil {
		return nil, err
	}
	return rec, nil
}
