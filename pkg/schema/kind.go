package schema

import "strings"

// Kind is the rendering family of a field type
type Kind int

const (
	KindUnknown Kind = iota
	KindText
	KindSelect
	KindNumeric
	KindRelational
	KindFile
	KindRecord
)

var kindNames = map[Kind]string{
	KindUnknown:    "unknown",
	KindText:       "text",
	KindSelect:     "select",
	KindNumeric:    "numeric",
	KindRelational: "relational",
	KindFile:       "file",
	KindRecord:     "record",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// kindPrefixes is checked in order; file references are relational types in
// newer backends, so they must win over the plain relational prefix.
var kindPrefixes = []struct {
	prefix string
	kind   Kind
}{
	{"treeitem.file", KindFile},
	{"relational.tree.leaf.file", KindFile},
	{"relational", KindRelational},
	{"str", KindText},
	{"text", KindText},
	{"select", KindSelect},
	{"numeric", KindNumeric},
	{"record", KindRecord},
}

// ParseKind maps a backend type tag to its Kind. A tag matches a prefix
// exactly or as a dotted sub-variant, so "numeric.precision2" is numeric
// while "strange" is not text.
func ParseKind(typ string) Kind {
	for _, p := range kindPrefixes {
		if typ == p.prefix || strings.HasPrefix(typ, p.prefix+".") {
			return p.kind
		}
	}
	return KindUnknown
}
