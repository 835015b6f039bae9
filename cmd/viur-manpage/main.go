package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra/doc"

	"github.com/arthur-debert/viur/cmd/viur"
	"github.com/arthur-debert/viur/internal/version"
)

func main() {
	rootCmd := viur.NewRootCmd()

	header := &doc.GenManHeader{
		Title:   "VIUR",
		Section: "1",
		Source:  "viur " + version.Version,
		Manual:  "viur manual",
	}

	err := doc.GenMan(rootCmd, header, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error generating man page: %v\n", err)
		os.Exit(1)
	}
}
