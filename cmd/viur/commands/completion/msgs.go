package completion

// Message constants
const (
	MsgShort = "Generate shell completion script"
	MsgLong  = `Generate the completion script for the given shell.

To load completions in the current bash session:

  source <(viur completion bash)

For zsh, write the script to a directory in your $fpath:

  viur completion zsh > "${fpath[1]}/_viur"`
)
