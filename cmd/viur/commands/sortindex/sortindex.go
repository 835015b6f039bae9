package sortindex

import (
	"github.com/arthur-debert/viur/internal/cli"
	"github.com/arthur-debert/viur/pkg/errors"
	"github.com/arthur-debert/viur/pkg/indexyaml"
	"github.com/arthur-debert/viur/pkg/ui/display"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// NewCommand creates the sort-index command
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "sort-index [file]",
		Short:   MsgShort,
		Long:    MsgLong,
		Example: MsgExample,
		Args:    cobra.MaximumNArgs(1),
		GroupID: "misc",
		RunE:    run,
	}

	cmd.Flags().StringP("output", "o", "", MsgFlagOutput)

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	app, err := cli.FromCommand(cmd)
	if err != nil {
		return err
	}

	src := indexyaml.DefaultFile
	if len(args) == 1 {
		src = args[0]
	}
	dst := cli.String(cmd, "output", src)

	if app.DryRun {
		data, err := afero.ReadFile(app.FS, src)
		if err != nil {
			return errors.Wrap(err, errors.ErrFileAccess, "cannot read index file").WithDetail("path", src)
		}
		sorted, err := indexyaml.Sort(data)
		if err != nil {
			return err
		}
		_, err = app.Out.Write(sorted)
		return err
	}
	if err := indexyaml.SortFile(app.FS, src, dst); err != nil {
		return err
	}
	return app.Renderer.RenderResult(display.NewSummary("sort-index", src).Item(dst))
}
