package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/hay-kot/lectern/internal/core/settings"
	"github.com/hay-kot/lectern/internal/core/styles"
)

type AuthorCmd struct {
	flags *Flags

	// prompter is replaced in tests; nil means a huh form on a terminal.
	prompter settings.Prompter
}

// NewAuthorCmd creates the annotation author command.
func NewAuthorCmd(flags *Flags) *AuthorCmd {
	return &AuthorCmd{flags: flags}
}

// Register adds the author command to the application.
func (cmd *AuthorCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "author",
		Usage: "Show or change the annotation author name",
		Commands: []*cli.Command{
			{
				Name:   "show",
				Usage:  "Print the stored author name",
				Action: cmd.show,
			},
			{
				Name:      "set",
				Usage:     "Store the author name, prompting when none is given",
				UsageText: "lectern author set [name]",
				Action:    cmd.set,
			},
			{
				Name:   "reset",
				Usage:  "Forget the author name so the reader asks again",
				Action: cmd.reset,
			},
		},
	})
	return app
}

func (cmd *AuthorCmd) author() *settings.Author {
	return settings.NewAuthor(cmd.flags.Settings)
}

func (cmd *AuthorCmd) show(ctx context.Context, c *cli.Command) error {
	name, err := cmd.author().Name(ctx)
	if err != nil {
		return err
	}

	p := newPrinter(c.Root().Writer)
	if name == "" {
		p.Infof("No author name set")
		return nil
	}
	p.Printf("%s", name)
	return nil
}

func (cmd *AuthorCmd) set(ctx context.Context, c *cli.Command) error {
	a := cmd.author()
	p := newPrinter(c.Root().Writer)

	if name := c.Args().First(); name != "" {
		if err := a.Set(ctx, name); err != nil {
			return err
		}
		p.Successf("Author set to %s", name)
		return nil
	}

	prompter := cmd.prompter
	if prompter == nil {
		if !settings.Interactive() {
			return fmt.Errorf("no name given and stdin is not a terminal")
		}
		prompter = settings.FormPrompter{Theme: styles.FormTheme()}
	}

	name, err := a.Change(ctx, prompter)
	if err != nil {
		return err
	}
	if name == "" {
		p.Infof("Author name left empty")
		return nil
	}
	p.Successf("Author set to %s", name)
	return nil
}

func (cmd *AuthorCmd) reset(ctx context.Context, c *cli.Command) error {
	if err := cmd.author().Reset(ctx); err != nil {
		return err
	}
	newPrinter(c.Root().Writer).Successf("Author name cleared")
	return nil
}
