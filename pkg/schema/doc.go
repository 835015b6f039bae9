// Package schema models the structure description a ViUR module publishes
// for its records: an ordered list of typed fields ("bones").
//
// The backend sends the description either as a list of [name, field] pairs
// or as a JSON object whose key order is the field order; both decode into
// the same Schema. Field types are reduced to a closed set of Kinds that the
// exporter dispatches on.
package schema
