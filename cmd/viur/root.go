package viur

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/arthur-debert/viur/cmd/viur/commands/completion"
	"github.com/arthur-debert/viur/cmd/viur/commands/copyblobs"
	"github.com/arthur-debert/viur/cmd/viur/commands/download"
	"github.com/arthur-debert/viur/cmd/viur/commands/export"
	"github.com/arthur-debert/viur/cmd/viur/commands/genconfig"
	"github.com/arthur-debert/viur/cmd/viur/commands/importcsv"
	"github.com/arthur-debert/viur/cmd/viur/commands/port"
	"github.com/arthur-debert/viur/cmd/viur/commands/randomstring"
	"github.com/arthur-debert/viur/cmd/viur/commands/sortindex"
	versioncmd "github.com/arthur-debert/viur/cmd/viur/commands/version"
	"github.com/arthur-debert/viur/internal/cli"
	"github.com/arthur-debert/viur/internal/version"
	"github.com/arthur-debert/viur/pkg/cobrax/topics"
	"github.com/arthur-debert/viur/pkg/config"
	"github.com/arthur-debert/viur/pkg/errors"
	"github.com/arthur-debert/viur/pkg/filesystem"
	"github.com/arthur-debert/viur/pkg/logging"
	"github.com/arthur-debert/viur/pkg/style"
	"github.com/arthur-debert/viur/pkg/ui"
	"github.com/muesli/termenv"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// Options wires the root command to its surroundings. The zero value uses
// the process' stdout, stderr, environment and real filesystem.
type Options struct {
	Out io.Writer
	Err io.Writer
	FS  afero.Fs
	// Environ replaces the process environment for config loading
	Environ []string
	// LogFile is handed to logging.New; "-" disables the log file
	LogFile string
	Now     func() time.Time
}

// flagOverrides maps global flags to the config keys they override
var flagOverrides = map[string]string{
	"connect":   "server.host",
	"username":  "auth.username",
	"password":  "auth.password",
	"login-key": "auth.login_key",
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	return NewRootCmdWithOptions(Options{})
}

// NewRootCmdWithOptions creates the root command with explicit surroundings
func NewRootCmdWithOptions(opts Options) *cobra.Command {
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.Err == nil {
		opts.Err = os.Stderr
	}
	if opts.FS == nil {
		opts.FS = filesystem.NewOS()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	// Initialize custom template formatting functions
	initTemplateFormatting()

	var (
		verbosity  int
		dryRun     bool
		configPath string
		format     string
	)

	rootCmd := &cobra.Command{
		Use:     "viur",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger := logging.New(verbosity, logging.Options{
				Console: opts.Err,
				NoColor: !ui.IsTerminal(opts.Err),
				LogFile: opts.LogFile,
			})
			logger.Debug().Str("command", cmd.Name()).Msg(MsgDebugCommandStarted)

			overrides := map[string]any{}
			for flag, key := range flagOverrides {
				if cmd.Flags().Changed(flag) {
					value, _ := cmd.Flags().GetString(flag)
					overrides[key] = value
				}
			}
			cfg, err := config.Load(config.Options{
				Path:      configPath,
				Overrides: overrides,
				Environ:   opts.Environ,
			})
			if err != nil {
				return err
			}

			outputFormat, err := ui.ParseFormat(format)
			if err != nil {
				return errors.Wrap(err, errors.ErrInvalidInput, "invalid --format")
			}
			if outputFormat == ui.FormatAuto {
				outputFormat = ui.DetectFormat(opts.Out)
			}
			if outputFormat != ui.FormatTerminal {
				style.UseProfile(termenv.Ascii)
			}
			renderer, err := ui.NewRenderer(outputFormat, opts.Out)
			if err != nil {
				return errors.Wrap(err, errors.ErrInternal, "failed to create renderer")
			}

			app := &cli.App{
				Config:   cfg,
				Logger:   logger,
				Out:      opts.Out,
				Err:      opts.Err,
				Renderer: renderer,
				FS:       opts.FS,
				DryRun:   dryRun,
				Now:      opts.Now,
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			cmd.SetContext(cli.WithApp(ctx, app))
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand was provided
			_ = cmd.Help()
			return errors.New(errors.ErrInvalidInput, MsgErrNoCommand)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		DisableAutoGenTag: true,
	}
	rootCmd.SetOut(opts.Out)
	rootCmd.SetErr(opts.Err)

	// Global flags
	flags := rootCmd.PersistentFlags()
	flags.CountVarP(&verbosity, "verbose", "v", MsgFlagVerbose)
	flags.BoolVar(&dryRun, "dry-run", false, MsgFlagDryRun)
	flags.StringVar(&configPath, "config", "", MsgFlagConfig)
	flags.StringVar(&format, "format", "auto", MsgFlagFormat)
	flags.StringP("connect", "c", "", MsgFlagConnect)
	flags.StringP("username", "u", "", MsgFlagUsername)
	flags.StringP("password", "p", "", MsgFlagPassword)
	flags.StringP("login-key", "l", "", MsgFlagLoginKey)

	// Define command groups
	rootCmd.AddGroup(&cobra.Group{
		ID:    "core",
		Title: "COMMANDS:",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "misc",
		Title: "MISC:",
	})

	// Set custom help template
	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	rootCmd.AddCommand(export.NewCommand())
	rootCmd.AddCommand(importcsv.NewCommand())
	rootCmd.AddCommand(download.NewCommand())
	rootCmd.AddCommand(copyblobs.NewCommand())
	rootCmd.AddCommand(port.NewCommand())
	rootCmd.AddCommand(randomstring.NewCommand())
	rootCmd.AddCommand(sortindex.NewCommand())
	rootCmd.AddCommand(genconfig.NewCommand())
	rootCmd.AddCommand(versioncmd.NewCommand())
	rootCmd.AddCommand(completion.NewCommand())

	topicOpts := topics.Options{Renderer: &topics.PlainRenderer{}}
	if ui.IsTerminal(opts.Out) {
		topicOpts.Renderer = topics.NewGlamourRenderer()
	}
	if _, err := topics.InitializeWithOptions(rootCmd, HelpTopics, topicOpts); err != nil {
		fmt.Fprintf(opts.Err, "Warning: help topics unavailable: %v\n", err)
	}
	rootCmd.SetHelpCommandGroupID("misc")

	return rootCmd
}
