package commands

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/hay-kot/lectern/pkg/iojson"
)

type SettingsCmd struct {
	flags  *Flags
	format string
}

// NewSettingsCmd creates the stored preferences command.
func NewSettingsCmd(flags *Flags) *SettingsCmd {
	return &SettingsCmd{flags: flags}
}

// Register adds the settings command to the application.
func (cmd *SettingsCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "settings",
		Usage: "Inspect preferences stored by the reader",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List stored preferences",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:        "format",
						Usage:       "output format (text, json)",
						Value:       "text",
						Destination: &cmd.format,
					},
				},
				Action: cmd.list,
			},
			{
				Name:      "reset",
				Usage:     "Remove a stored preference",
				UsageText: "lectern settings reset <key>",
				Action:    cmd.reset,
			},
		},
	})
	return app
}

type settingJSON struct {
	Key   string          `json:"key"`
	Value json.RawMessage `json:"value"`
}

func (cmd *SettingsCmd) list(ctx context.Context, c *cli.Command) error {
	store := cmd.flags.Settings
	keys, err := store.ListKeys(ctx)
	if err != nil {
		return err
	}

	entries := make([]settingJSON, 0, len(keys))
	for _, k := range keys {
		var v json.RawMessage
		if err := store.Get(ctx, k, &v); err != nil {
			return err
		}
		entries = append(entries, settingJSON{Key: k, Value: v})
	}

	if cmd.format == "json" {
		return iojson.Write(c.Root().Writer, c.Root().ErrWriter, entries)
	}

	p := newPrinter(c.Root().Writer)
	if len(entries) == 0 {
		p.Infof("No stored preferences")
		return nil
	}
	for _, e := range entries {
		p.Printf("%s = %s", e.Key, e.Value)
	}
	return nil
}

func (cmd *SettingsCmd) reset(ctx context.Context, c *cli.Command) error {
	key := c.Args().First()
	if key == "" {
		return fmt.Errorf("missing key. Run 'lectern settings list' to see stored keys")
	}

	ok, err := cmd.flags.Settings.Has(ctx, key)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("no stored preference %q", key)
	}
	if err := cmd.flags.Settings.Delete(ctx, key); err != nil {
		return err
	}
	newPrinter(c.Root().Writer).Successf("Removed %s", key)
	return nil
}
