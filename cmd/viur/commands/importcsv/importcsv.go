package importcsv

import (
	"github.com/arthur-debert/viur/internal/cli"
	"github.com/arthur-debert/viur/pkg/config"
	"github.com/arthur-debert/viur/pkg/importer"
	"github.com/arthur-debert/viur/pkg/ui/display"
	"github.com/spf13/cobra"
)

// NewCommand creates the import command
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "import <file.csv>",
		Short:   MsgShort,
		Long:    MsgLong,
		Example: MsgExample,
		Args:    cobra.ExactArgs(1),
		GroupID: "core",
		RunE:    run,
	}

	cmd.Flags().StringP("delimiter", "d", "", MsgFlagDelimiter)
	cmd.Flags().StringP("module", "m", "", MsgFlagModule)
	cmd.Flags().StringP("key", "k", "", MsgFlagKey)
	cmd.Flags().StringArrayP("translate", "t", nil, MsgFlagTranslate)
	cmd.Flags().StringArrayP("rule", "r", nil, MsgFlagRule)
	cmd.Flags().BoolP("allow-update", "U", false, MsgFlagAllowUpdate)

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	app, err := cli.FromCommand(cmd)
	if err != nil {
		return err
	}
	cfg := app.Config.Import

	var translations []importer.Translation
	for _, raw := range cli.Strings(cmd, "translate", nil) {
		t, err := importer.ParseTranslation(raw)
		if err != nil {
			return err
		}
		translations = append(translations, t)
	}
	var rules []importer.Rule
	for _, raw := range cli.Strings(cmd, "rule", nil) {
		r, err := importer.ParseRule(raw)
		if err != nil {
			return err
		}
		rules = append(rules, r)
	}

	ctx := cmd.Context()
	c, closeFn, err := app.Connect(ctx)
	if err != nil {
		return err
	}
	defer closeFn()

	result, err := importer.Run(ctx, c, app.FS, importer.Options{
		Path:         args[0],
		Module:       cli.String(cmd, "module", ""),
		Delimiter:    config.Delimiter(cli.String(cmd, "delimiter", cfg.Delimiter), ';'),
		KeyColumn:    cli.String(cmd, "key", cfg.KeyColumn),
		AllowUpdate:  cli.Bool(cmd, "allow-update", cfg.AllowUpdate),
		DryRun:       app.DryRun,
		Translations: translations,
		Rules:        rules,
		Logger:       app.Logger,
	})
	if err != nil {
		return err
	}

	summary := display.NewSummary("import", result.Module).
		Count("rows", int64(result.Rows)).
		Count("added", int64(result.Added)).
		Count("updated", int64(result.Updated)).
		Count("skipped", int64(result.Skipped)).
		Count("failed", int64(result.Failed))
	summary.DryRun = app.DryRun
	return app.Renderer.RenderResult(summary)
}
