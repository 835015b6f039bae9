package export

import (
	"context"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/viur/internal/cli"
	"github.com/arthur-debert/viur/pkg/config"
	"github.com/arthur-debert/viur/pkg/errors"
	"github.com/arthur-debert/viur/pkg/export"
	"github.com/arthur-debert/viur/pkg/ui/display"
	"github.com/arthur-debert/viur/pkg/ui/spinner"
	"github.com/spf13/cobra"
)

// NewCommand creates the export command
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "export <module>",
		Short:   MsgShort,
		Long:    MsgLong,
		Example: MsgExample,
		Args:    cobra.ExactArgs(1),
		GroupID: "core",
		RunE:    run,
	}

	cmd.Flags().StringP("output", "o", "", MsgFlagOutput)
	cmd.Flags().StringSlice("columns", nil, MsgFlagColumns)
	cmd.Flags().Bool("all", false, MsgFlagAll)
	cmd.Flags().String("empty-value", "", MsgFlagEmptyValue)
	cmd.Flags().String("language", "", MsgFlagLanguage)
	cmd.Flags().StringP("delimiter", "d", "", MsgFlagDelimiter)
	cmd.Flags().StringArray("filter", nil, MsgFlagFilter)

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	app, err := cli.FromCommand(cmd)
	if err != nil {
		return err
	}
	module := args[0]
	cfg := app.Config.Export

	params, err := parseFilters(cli.Strings(cmd, "filter", nil))
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	c, closeFn, err := app.Connect(ctx)
	if err != nil {
		return err
	}
	defer closeFn()

	spin := spinner.New(app.Err)
	app.Logger.Debug().Str("module", module).Bool("spinner", spin.Enabled()).Msg(MsgDebugStarting)
	spin.Start(fmt.Sprintf(MsgStartSpinning, module))
	defer spin.Stop()

	exporter := export.New(c, app.Logger, export.Options{
		Columns:     cli.Strings(cmd, "columns", cfg.Columns),
		OnlyVisible: !cli.Bool(cmd, "all", !cfg.OnlyVisible),
		EmptyValue:  cli.String(cmd, "empty-value", cfg.EmptyValue),
		Language:    cli.String(cmd, "language", cfg.Language),
		Params:      params,
		Progress: func(rows int) {
			spin.Update(fmt.Sprintf(MsgProgress, module, rows))
		},
	})
	delimiter := config.Delimiter(cli.String(cmd, "delimiter", cfg.Delimiter), ',')

	output := cli.String(cmd, "output", "")
	if output == "" {
		output = filepath.Join(cfg.OutputDir, export.DefaultFileName(module, app.Now()))
	}

	var result *export.Result
	if output == "-" {
		sink := export.NewCSVSink(app.Out, delimiter)
		result, err = exporter.Export(ctx, module, sink)
		if flushErr := sink.Flush(); err == nil {
			err = flushErr
		}
	} else {
		result, err = exporter.ExportFile(ctx, app.FS, module, output, delimiter)
	}
	spin.Stop()

	if err != nil {
		if ctx.Err() == context.Canceled {
			app.Logger.Warn().Str("module", module).Msg(MsgInterrupted)
			return errors.Wrap(err, errors.ErrInternal, MsgInterrupted).WithDetail("path", output)
		}
		return err
	}

	if output == "-" {
		return nil
	}
	summary := display.NewSummary("export", module).
		Count(MsgLabelRows, int64(result.Rows)).
		Count(MsgLabelColumns, int64(len(result.Columns))).
		Item(output)
	return app.Renderer.RenderResult(summary)
}

func parseFilters(filters []string) (url.Values, error) {
	params := url.Values{}
	for _, f := range filters {
		key, value, ok := strings.Cut(f, "=")
		if !ok || key == "" {
			return nil, errors.Newf(errors.ErrInvalidInput, MsgErrBadFilter, f)
		}
		params.Add(key, value)
	}
	return params, nil
}
