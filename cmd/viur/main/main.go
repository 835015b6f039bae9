package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/arthur-debert/viur/cmd/viur"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	rootCmd := viur.NewRootCmd()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		viur.PrintError(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}
