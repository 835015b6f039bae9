package port

import "strings"

// Replacement renames one legacy symbol
type Replacement struct {
	Old string
	New string
}

// renames are the hook and module renames of the 3.x backend
var renames = []Replacement{
	{"onItemAdded", "onAdded"},
	{"onItemEdited", "onEdited"},
	{"onItemDeleted", "onDeleted"},
	{"addItemSuccess", "addSuccess"},
	{"editItemSuccess", "editSuccess"},
	{"from server import", "from viur.core import"},
}

// bones are the legacy lower-case bone class names. selectcountry must come
// before select.
var bones = []string{
	"base", "boolean", "captcha", "color", "credential", "date", "email", "file",
	"key", "numeric", "password", "randomslice", "raw", "record", "relational",
	"selectcountry", "select", "sortindex", "spatial", "string", "text",
	"treeleaf", "treenode", "user",
}

// Lookup is the ordered replacement table
var Lookup = buildLookup()

func buildLookup() []Replacement {
	table := append([]Replacement(nil), renames...)
	for _, name := range bones {
		table = append(table, Replacement{
			Old: name + "Bone",
			New: strings.ToUpper(name[:1]) + name[1:] + "Bone",
		})
	}
	return table
}

// Apply runs the lookup table over content in order and returns the result
// and the number of table entries that matched
func Apply(content string) (string, int) {
	count := 0
	for _, r := range Lookup {
		if strings.Contains(content, r.Old) {
			content = strings.ReplaceAll(content, r.Old, r.New)
			count++
		}
	}
	return content, count
}
