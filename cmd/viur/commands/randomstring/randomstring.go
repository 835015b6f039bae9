package randomstring

import (
	"github.com/arthur-debert/viur/internal/cli"
	"github.com/arthur-debert/viur/pkg/randstr"
	"github.com/spf13/cobra"
)

// NewCommand creates the random-string command
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "random-string",
		Short:   MsgShort,
		Long:    MsgLong,
		Example: MsgExample,
		Args:    cobra.NoArgs,
		GroupID: "misc",
		RunE:    run,
	}

	cmd.Flags().IntP("length", "n", randstr.DefaultLength, MsgFlagLength)
	cmd.Flags().Int("count", 1, MsgFlagCount)

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	app, err := cli.FromCommand(cmd)
	if err != nil {
		return err
	}

	length := cli.Int(cmd, "length", app.Config.Random.Length)
	count, _ := cmd.Flags().GetInt("count")
	for i := 0; i < count; i++ {
		s, err := randstr.Generate(length)
		if err != nil {
			return err
		}
		if err := app.Renderer.RenderMessage(s); err != nil {
			return err
		}
	}
	return nil
}
