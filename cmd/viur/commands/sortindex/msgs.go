package sortindex

// Message constants
const (
	MsgShort = "Sort the indexes of an index.yaml file"
	MsgLong  = `Sort the entries below "indexes" of a datastore index.yaml by kind, keeping
the order of equal kinds, and separate the entries by a blank line.
The file is rewritten in place unless --output is given; --dry-run prints the
sorted file instead.`
	MsgExample = `  viur sort-index
  viur sort-index deploy/index.yaml -o sorted.yaml`

	MsgFlagOutput = "Write the sorted file here instead of in place"
)
