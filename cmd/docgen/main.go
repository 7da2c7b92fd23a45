// Command docgen generates CLI reference documentation from the lectern
// command definitions. Output is written to docs/cli-reference.md.
package main

import (
	"fmt"
	"os"

	docs "github.com/urfave/cli-docs/v3"
	"github.com/urfave/cli/v3"

	"github.com/hay-kot/lectern/internal/commands"
)

func main() {
	flags := &commands.Flags{}

	root := &cli.Command{
		Name:      "lectern",
		Usage:     "Read and annotate documents in the terminal",
		UsageText: "lectern [global options] <document.yaml> | command [command options]",
		Flags:     commands.GlobalFlags(flags),
	}

	openCmd := commands.NewOpenCmd(flags)
	root.Flags = append(root.Flags, openCmd.Flags()...)

	root = openCmd.Register(root)
	root = commands.NewFormatCmd(flags).Register(root)
	root = commands.NewAuthorCmd(flags).Register(root)
	root = commands.NewSettingsCmd(flags).Register(root)
	root = commands.NewConfigValidateCmd(flags).Register(root)

	md, err := docs.ToMarkdown(root)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error generating docs: %v\n", err)
		os.Exit(1)
	}

	outPath := "docs/cli-reference.md"
	if len(os.Args) > 1 {
		outPath = os.Args[1]
	}

	if err := os.WriteFile(outPath, []byte(md), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "error writing %s: %v\n", outPath, err)
		os.Exit(1)
	}

	fmt.Printf("Generated %s\n", outPath)
}
