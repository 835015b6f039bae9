package importcsv

// Message constants
const (
	MsgShort = "Import a CSV file into a module"
	MsgLong  = `Import the rows of a CSV file into a module.

Every row is added as a new entry. With --key, rows whose key column matches an
existing entry are skipped, or updated when --allow-update is given.

Translations replace exact cell values: --translate column:value:replacement.
Rules compute a column from an expression over the row: --rule 'name=upper(name)'.
Every column is available as a variable, all of them as the "row" object.`
	MsgExample = `  viur import customer.csv -c https://my-app.appspot.com -u admin -p secret
  viur import data.csv -m customer -d , -k email -U
  viur import customer.csv -t "country:Deutschland:de" -r 'name=title(lower(name))'
  viur import customer.csv --dry-run -v`

	MsgFlagDelimiter   = "Value delimiter in the CSV file"
	MsgFlagModule      = "Module to import to (default: file name without extension)"
	MsgFlagKey         = "Column used to find existing entries"
	MsgFlagTranslate   = "Field translation column:value:replacement, repeatable"
	MsgFlagRule        = "Field rule column=expression, repeatable"
	MsgFlagAllowUpdate = "Update entries found by --key instead of skipping them"
)
