package copyblobs

import (
	"github.com/arthur-debert/viur/internal/cli"
	"github.com/arthur-debert/viur/pkg/blobcopy"
	"github.com/arthur-debert/viur/pkg/client"
	"github.com/arthur-debert/viur/pkg/errors"
	"github.com/arthur-debert/viur/pkg/ui/display"
	"github.com/spf13/cobra"
)

// NewCommand creates the copy-blobs command
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "copy-blobs",
		Short:   MsgShort,
		Long:    MsgLong,
		Example: MsgExample,
		Args:    cobra.NoArgs,
		GroupID: "core",
		RunE:    run,
	}

	cmd.Flags().String("src-app", "", MsgFlagSrcApp)
	cmd.Flags().String("src-host", "", MsgFlagSrcHost)
	cmd.Flags().String("src-key", "", MsgFlagSrcKey)
	cmd.Flags().String("dst-app", "", MsgFlagDstApp)
	cmd.Flags().String("dst-host", "", MsgFlagDstHost)
	cmd.Flags().String("dst-key", "", MsgFlagDstKey)
	cmd.Flags().String("known-db", "", MsgFlagKnownDB)
	cmd.Flags().Bool("override", false, MsgFlagOverride)
	cmd.Flags().StringSlice("skip-type", nil, MsgFlagSkipType)

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	app, err := cli.FromCommand(cmd)
	if err != nil {
		return err
	}
	cfg := app.Config.Blobs

	src, err := endpoint(cmd, app, "src")
	if err != nil {
		return err
	}
	dst, err := endpoint(cmd, app, "dst")
	if err != nil {
		return err
	}
	srcKey := cli.String(cmd, "src-key", cfg.SourceKey)
	dstKey := cli.String(cmd, "dst-key", cfg.DestinationKey)
	if srcKey == "" {
		return errors.Newf(errors.ErrInvalidInput, MsgErrNoKey, "src")
	}
	if dstKey == "" {
		return errors.Newf(errors.ErrInvalidInput, MsgErrNoKey, "dst")
	}

	var known blobcopy.KnownStore
	if path := cli.String(cmd, "known-db", cfg.KnownDB); path != "" {
		known, err = blobcopy.OpenBoltStore(path)
		if err != nil {
			return err
		}
		defer func() { _ = known.Close() }()
	}

	result, err := blobcopy.Run(cmd.Context(), src, dst, blobcopy.Options{
		SourceKey:        srcKey,
		DestinationKey:   dstKey,
		Override:         cli.Bool(cmd, "override", false),
		SkipContentTypes: cli.Strings(cmd, "skip-type", cfg.SkipContentTypes),
		Known:            known,
		Logger:           app.Logger,
	})
	if err != nil {
		return err
	}

	summary := display.NewSummary("copy-blobs", src.Host()+" -> "+dst.Host()).
		Count("seen", int64(result.Seen)).
		Count("copied", int64(result.Copied)).
		Count("present", int64(result.Present)).
		Count("skipped", int64(result.Skipped)).
		Count("batches", int64(result.Batches))
	return app.Renderer.RenderResult(summary)
}

// endpoint builds the client for side "src" or "dst"
func endpoint(cmd *cobra.Command, app *cli.App, side string) (*client.Client, error) {
	host := cli.String(cmd, side+"-host", "")
	if host == "" {
		appID := cli.String(cmd, side+"-app", "")
		if appID == "" {
			return nil, errors.Newf(errors.ErrInvalidInput, MsgErrNoHost, side, side)
		}
		host = blobcopy.HostURL(appID)
	}
	return app.NewClient(host)
}
