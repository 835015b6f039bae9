package export

// Message constants
const (
	MsgShort = "Export a module to a CSV file"
	MsgLong  = `Export every entry of a module to a CSV file.

Columns follow the module's structure: one column per visible field, and one
per language for translated fields. Select fields are written as their labels,
relations and files through their format template, numbers rounded to the
field's precision.`
	MsgExample = `  viur export user -c https://my-app.appspot.com -u admin -p secret
  viur export user -o -                     # write to stdout
  viur export product --columns name,price --empty-value n/a
  viur export order --filter status=paid --filter orderby=creationdate`

	MsgFlagOutput     = "Output file, - for stdout (default export_<module>_<time>.csv)"
	MsgFlagColumns    = "Only export these fields, in this order"
	MsgFlagAll        = "Include fields that are not visible"
	MsgFlagEmptyValue = "Text written for empty values"
	MsgFlagLanguage   = "Only export this language of translated fields"
	MsgFlagDelimiter  = "Value delimiter (\"tab\" for a tab)"
	MsgFlagFilter     = "List parameter key=value passed to the backend, repeatable"

	MsgProgress      = "Exporting %s: %d rows"
	MsgInterrupted   = "export interrupted, output may be incomplete"
	MsgErrBadFilter  = "filter %q is not key=value"
	MsgLabelRows     = "rows"
	MsgLabelColumns  = "columns"
	MsgStartSpinning = "Exporting %s"
	MsgDebugStarting = "Starting export"
)
