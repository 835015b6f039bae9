package port

import (
	"github.com/arthur-debert/viur/internal/cli"
	"github.com/arthur-debert/viur/pkg/port"
	"github.com/arthur-debert/viur/pkg/ui/display"
	"github.com/spf13/cobra"
)

// NewCommand creates the port command
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "port [project-root]",
		Short:   MsgShort,
		Long:    MsgLong,
		Example: MsgExample,
		Args:    cobra.MaximumNArgs(1),
		GroupID: "core",
		RunE:    run,
	}

	cmd.Flags().BoolP("no-backup", "x", false, MsgFlagNoBackup)
	cmd.Flags().StringSlice("ext", nil, MsgFlagExtension)
	cmd.Flags().StringSlice("ignore", nil, MsgFlagIgnore)

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	app, err := cli.FromCommand(cmd)
	if err != nil {
		return err
	}
	cfg := app.Config.Port

	root := "."
	if len(args) == 1 {
		root = args[0]
	}

	result, err := port.Run(app.FS, port.Options{
		Root:       root,
		DryRun:     app.DryRun,
		NoBackup:   cli.Bool(cmd, "no-backup", cfg.NoBackup),
		IgnoreDirs: cli.Strings(cmd, "ignore", cfg.IgnoreDirs),
		Extensions: cli.Strings(cmd, "ext", cfg.Extensions),
		Logger:     app.Logger,
	}, app.Out)
	if err != nil {
		return err
	}

	summary := display.NewSummary("port", root).
		Count("scanned", int64(result.Scanned)).
		Count("modified", int64(len(result.Modified)))
	summary.DryRun = app.DryRun
	return app.Renderer.RenderResult(summary)
}
