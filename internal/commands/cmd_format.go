package commands

import (
	"context"
	"fmt"
	"os"

	lipgloss "charm.land/lipgloss/v2"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/hay-kot/lectern/internal/core/textrun"
	"github.com/hay-kot/lectern/pkg/iojson"
)

type FormatCmd struct {
	flags  *Flags
	input  iojson.Reader[[]textrun.Run]
	text   string
	format string
}

// NewFormatCmd creates the text run formatting command.
func NewFormatCmd(flags *Flags) *FormatCmd {
	return &FormatCmd{flags: flags}
}

// Register adds the format command to the application.
func (cmd *FormatCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "format",
		Usage:     "Group extracted text runs into styled fragments",
		UsageText: "lectern format [options] < runs.json",
		Description: `Reads a JSON array of character runs, each {"c": "a", "bold": true,
"italic": false, "url": "", "spaceAfter": false, "lineBreakAfter": false,
"ignorable": false}, and prints the fragments the reader would display.`,
		Flags: []cli.Flag{
			cmd.input.Flag(),
			&cli.StringFlag{
				Name:        "text",
				Usage:       "format an unstyled string instead of reading runs",
				Destination: &cmd.text,
			},
			&cli.StringFlag{
				Name:        "format",
				Usage:       "output format (text, plain, json)",
				Value:       "text",
				Destination: &cmd.format,
			},
		},
		Action: cmd.run,
	})
	return app
}

type fragmentJSON struct {
	textrun.Fragment
	Wrappers []string `json:"wrappers,omitempty"`
}

func (cmd *FormatCmd) run(_ context.Context, c *cli.Command) error {
	runs := textrun.FromString(cmd.text)
	if cmd.text == "" {
		var err error
		if runs, err = cmd.input.Read(); err != nil {
			return err
		}
	}

	frags := textrun.Format(runs)
	w := c.Root().Writer

	switch cmd.format {
	case "json":
		out := make([]fragmentJSON, len(frags))
		for i, f := range frags {
			out[i].Fragment = f
			for _, wr := range f.Wrappers() {
				out[i].Wrappers = append(out[i].Wrappers, wr.String())
			}
		}
		return iojson.Write(w, c.Root().ErrWriter, out)
	case "plain":
		_, err := fmt.Fprintln(w, textrun.PlainText(frags))
		return err
	case "text":
		r := textrun.NewRenderer()
		r.Hyperlinks = w == os.Stdout && term.IsTerminal(int(os.Stdout.Fd()))
		_, err := lipgloss.Fprintln(w, r.Render(frags))
		return err
	default:
		return fmt.Errorf("unknown format %q (want text, plain, or json)", cmd.format)
	}
}
