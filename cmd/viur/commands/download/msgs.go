package download

// Message constants
const (
	MsgShort = "Download a file repository to a local folder"
	MsgLong  = `Download a complete file repository, folders included, into a local folder.

Folder and file names are used as they are, with "/" replaced by "-".
Files that have no stored content yet are skipped.`
	MsgExample = `  viur download ./files -c https://my-app.appspot.com -l my-login-key
  viur download ./media -r Media`

	MsgFlagRepo   = "Name of the root repository to download"
	MsgFlagModule = "Tree module holding the files"
)
