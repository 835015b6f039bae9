package genconfig

import (
	"path/filepath"

	"github.com/arthur-debert/viur/internal/cli"
	"github.com/arthur-debert/viur/pkg/config"
	"github.com/arthur-debert/viur/pkg/errors"
	"github.com/arthur-debert/viur/pkg/filesystem"
	"github.com/arthur-debert/viur/pkg/ui/display"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// NewCommand creates the gen-config command
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "gen-config",
		Short:   MsgShort,
		Long:    MsgLong,
		Example: MsgExample,
		Args:    cobra.NoArgs,
		GroupID: "misc",
		RunE:    run,
	}

	cmd.Flags().BoolP("write", "w", false, MsgFlagWrite)
	cmd.Flags().String("path", "", MsgFlagPath)
	cmd.Flags().Bool("effective", false, MsgFlagEffective)
	cmd.Flags().BoolP("force", "f", false, MsgFlagForce)

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	app, err := cli.FromCommand(cmd)
	if err != nil {
		return err
	}

	content := []byte(config.Generate())
	if cli.Bool(cmd, "effective", false) {
		content, err = config.Render(app.Config)
		if err != nil {
			return err
		}
	}

	path := cli.String(cmd, "path", "")
	if !cli.Bool(cmd, "write", false) && path == "" {
		_, err := app.Out.Write(content)
		return err
	}
	if path == "" {
		path = config.UserConfigPath()
	}

	exists, err := afero.Exists(app.FS, path)
	if err != nil {
		return errors.Wrap(err, errors.ErrFileAccess, "cannot check config file").WithDetail("path", path)
	}
	if exists && !cli.Bool(cmd, "force", false) {
		return errors.Newf(errors.ErrInvalidInput, MsgErrExists, path).WithDetail("path", path)
	}
	if app.DryRun {
		summary := display.NewSummary("gen-config", path)
		summary.DryRun = true
		return app.Renderer.RenderResult(summary)
	}

	if err := app.FS.MkdirAll(filepath.Dir(path), filesystem.DirPerm); err != nil {
		return errors.Wrap(err, errors.ErrFileWrite, "cannot create config directory").WithDetail("path", path)
	}
	if err := afero.WriteFile(app.FS, path, content, filesystem.FilePerm); err != nil {
		return errors.Wrap(err, errors.ErrFileWrite, "cannot write config file").WithDetail("path", path)
	}
	return app.Renderer.RenderResult(display.NewSummary("gen-config", path).Item(path))
}
