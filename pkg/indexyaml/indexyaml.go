// Package indexyaml sorts the datastore index definitions of an index.yaml.
//
// Entries of the top-level indexes list are ordered by their kind and every
// entry is preceded by a blank line. The file is processed as a yaml.v3 node
// tree, so the order of keys inside the entries is kept.
package indexyaml

import (
	"bytes"
	"sort"
	"strings"

	"github.com/arthur-debert/viur/pkg/errors"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// DefaultFile is the file sorted when none is given
const DefaultFile = "index.yaml"

// Sort returns src with its indexes list sorted by kind
func Sort(src []byte) ([]byte, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(src, &doc); err != nil {
		return nil, errors.Wrap(err, errors.ErrInvalidInput, "cannot parse YAML")
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 || doc.Content[0].Kind != yaml.MappingNode {
		return nil, errors.New(errors.ErrInvalidInput, "document is not a mapping")
	}

	indexes := lookup(doc.Content[0], "indexes")
	if indexes == nil {
		return nil, errors.New(errors.ErrInvalidInput, "there is no indexes list")
	}
	if indexes.Kind != yaml.SequenceNode {
		return nil, errors.New(errors.ErrInvalidInput, "indexes is not a list")
	}

	sort.SliceStable(indexes.Content, func(i, j int) bool {
		return sortKey(indexes.Content[i]) < sortKey(indexes.Content[j])
	})

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&doc); err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "cannot encode YAML")
	}
	if err := enc.Close(); err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "cannot encode YAML")
	}
	return []byte(separateEntries(buf.String())), nil
}

// SortFile sorts src on fs and writes the result to dst, or back to src when
// dst is empty
func SortFile(fs afero.Fs, src, dst string) error {
	if dst == "" {
		dst = src
	}
	data, err := afero.ReadFile(fs, src)
	if err != nil {
		return errors.Wrap(err, errors.ErrFileAccess, "cannot read index file").WithDetail("path", src)
	}
	sorted, err := Sort(data)
	if err != nil {
		if viurErr, ok := err.(*errors.ViurError); ok {
			return viurErr.WithDetail("path", src)
		}
		return err
	}
	if err := afero.WriteFile(fs, dst, sorted, 0644); err != nil {
		return errors.Wrap(err, errors.ErrFileWrite, "cannot write index file").WithDetail("path", dst)
	}
	return nil
}

func lookup(mapping *yaml.Node, key string) *yaml.Node {
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		if mapping.Content[i].Value == key {
			return mapping.Content[i+1]
		}
	}
	return nil
}

// sortKey is an entry's kind, or its scalar value for plain entries
func sortKey(n *yaml.Node) string {
	if n.Kind == yaml.MappingNode {
		if kind := lookup(n, "kind"); kind != nil {
			return kind.Value
		}
	}
	return n.Value
}

// separateEntries puts a blank line before every "- kind:" entry
func separateEntries(s string) string {
	lines := strings.Split(s, "\n")
	out := make([]string, 0, len(lines)*2)
	for _, line := range lines {
		if strings.HasPrefix(strings.TrimLeft(line, " "), "- kind: ") {
			out = append(out, "")
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}
