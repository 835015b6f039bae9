// Package format fills $(...) placeholders in display templates with values
// taken from (possibly nested) backend records.
//
// A placeholder names a dot-joined path into the data: "$(name)" or
// "$(dest.name)". Lists of records render the template once per element and
// join the results with ", ". When a schema is supplied, language-map fields
// collapse to one language, relation wrappers render through their own
// format, and select values are replaced by their labels.
//
// There is no escaping: a value that itself contains "$(...)" is
// indistinguishable from a placeholder if it takes part in a further
// enclosing substitution.
package format
