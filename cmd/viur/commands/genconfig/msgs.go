package genconfig

// Message constants
const (
	MsgShort = "Print the default configuration file"
	MsgLong  = `Output the default configuration, every value commented out, ready to be
saved as a config file. With --effective the configuration resolved from the
config file, environment and flags is printed instead. With --write the output
goes to the user config file instead of stdout.`
	MsgExample = `  viur gen-config                         # Output to stdout
  viur gen-config -w                      # Write to $XDG_CONFIG_HOME/viur/config.toml
  viur gen-config --effective -c https://my-app.appspot.com`

	MsgFlagWrite     = "Write the config to the user config file"
	MsgFlagPath      = "Write to this path instead of the user config file"
	MsgFlagEffective = "Print the resolved configuration instead of the defaults"
	MsgFlagForce     = "Overwrite an existing file"

	MsgErrExists = "%s already exists, use --force to overwrite it"
)
