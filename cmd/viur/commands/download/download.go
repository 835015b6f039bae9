package download

import (
	"github.com/arthur-debert/viur/internal/cli"
	"github.com/arthur-debert/viur/pkg/download"
	"github.com/arthur-debert/viur/pkg/ui/display"
	"github.com/spf13/cobra"
)

// NewCommand creates the download command
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "download [target]",
		Short:   MsgShort,
		Long:    MsgLong,
		Example: MsgExample,
		Args:    cobra.MaximumNArgs(1),
		GroupID: "core",
		RunE:    run,
	}

	cmd.Flags().StringP("repo", "r", "", MsgFlagRepo)
	cmd.Flags().StringP("module", "m", "", MsgFlagModule)

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	app, err := cli.FromCommand(cmd)
	if err != nil {
		return err
	}
	cfg := app.Config.Download

	target := cfg.Target
	if len(args) == 1 {
		target = args[0]
	}

	ctx := cmd.Context()
	c, closeFn, err := app.Connect(ctx)
	if err != nil {
		return err
	}
	defer closeFn()

	result, err := download.Run(ctx, c, app.FS, download.Options{
		Repo:   cli.String(cmd, "repo", cfg.Repo),
		Module: cli.String(cmd, "module", cfg.Module),
		Target: target,
		Logger: app.Logger,
	})
	if err != nil {
		return err
	}

	summary := display.NewSummary("download", target).
		Count("folders", int64(result.Folders)).
		Count("files", int64(result.Files)).
		Count("bytes", result.Bytes).
		Count("skipped", int64(result.Skipped))
	return app.Renderer.RenderResult(summary)
}
