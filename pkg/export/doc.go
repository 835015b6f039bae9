// Package export turns the records of a ViUR module into CSV rows.
//
// A Renderer is built once per export from the module's schema. It decides
// which fields become columns (one per language for translated fields) and
// renders every record into one cell per column, dispatching on the field's
// Kind. The Exporter ties a RecordSource, a Renderer and a Sink together:
//
//	exp := export.New(client, logger, export.Options{OnlyVisible: true})
//	result, err := exp.ExportFile(ctx, afero.NewOsFs(), "customer", "customers.csv", ',')
//
// Every failure aborts the export. A schema that cannot be fetched fails
// before anything is written; a record that lacks a declared field or holds
// a value that cannot be rendered fails with the module, field and record
// key attached to the error.
package export
