// Package importer loads rows of a CSV file into a ViUR module.
//
// Every row becomes one add request, or one edit request when a key column is
// configured and exactly one existing entry matches the row's value in that
// column. Before a row is sent, translations replace exact cell values and
// rules recompute columns from HCL expressions:
//
//	lastname = lastname == "" ? company : lastname
//	country  = lower(trimspace(country))
//	vip      = vip == "0" ? "1" : "0"
//
// Rules see every column of the row as a variable and, for column names
// that are no valid identifiers, the row object (row["first name"]). They are
// applied in order, so later rules see the results of earlier ones.
package importer
