package port

// Message constants
const (
	MsgShort = "Port a ViUR 2 project to ViUR 3 names"
	MsgLong  = `Rename ViUR 2 symbols to their ViUR 3 names in every source file of a project.

The rename table covers the changed hooks, the "server" package and the bone
classes. Directories containing viur, flare or html5 in their path are left
alone. Every changed file is backed up to <file>.bak first unless
--no-backup is given. With --dry-run a unified diff is printed instead.`
	MsgExample = `  viur port ./my-project --dry-run
  viur port ./my-project -x`

	MsgFlagNoBackup  = "Do not keep .bak copies of changed files"
	MsgFlagExtension = "File extension to rewrite, without dot, repeatable"
	MsgFlagIgnore    = "Skip directories whose path contains this word, repeatable"
)
