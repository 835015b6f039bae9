package viur

import (
	"embed"
	"strings"
)

// Short messages (one-liners)
const (
	MsgRootShort = "Administration tools for ViUR backends"

	// Flag descriptions
	MsgFlagVerbose  = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagDryRun   = "Preview changes without executing them"
	MsgFlagConfig   = "Config file (default $XDG_CONFIG_HOME/viur/config.toml or ./viur.toml)"
	MsgFlagConnect  = "URL of the ViUR application host"
	MsgFlagUsername = "User name to log in with"
	MsgFlagPassword = "Password to log in with"
	MsgFlagLoginKey = "Login key, used instead of user name and password"
	MsgFlagFormat   = "Output format: auto, term, text or json"

	// Error messages
	MsgErrNoCommand = "no command specified"

	// Debug messages
	MsgDebugCommandStarted = "Command started"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw)
)

// HelpTopics holds the topics shown by "viur help <topic>"
//
//go:embed help
var HelpTopics embed.FS
