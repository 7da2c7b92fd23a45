package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/hay-kot/lectern/internal/commands"
	"github.com/hay-kot/lectern/internal/core/config"
	"github.com/hay-kot/lectern/internal/core/kv"
	"github.com/hay-kot/lectern/internal/core/settings"
	"github.com/hay-kot/lectern/internal/core/styles"
	"github.com/hay-kot/lectern/internal/tui"
	"github.com/hay-kot/lectern/pkg/logutils"
)

var (
	// Build information. Populated at build-time via -ldflags flag.
	version = "dev"
	commit  = "HEAD"
	date    = "now"
)

func main() {
	ctx := context.Background()

	var (
		logCloser func()
		database  *settings.DB
	)

	flags := &commands.Flags{Build: tui.ResolveBuild(version, commit, date)}

	app := &cli.Command{
		Name:      "lectern",
		Usage:     "Read and annotate documents in the terminal",
		UsageText: "lectern [global options] <document.yaml> | command [command options]",
		Description: `Lectern opens a document in a full-screen reader with search, highlights,
underlines, comments, tags, and a side-by-side split view.

Run 'lectern <document.yaml>' to open a document.
Run 'lectern author set' to choose the name stored on new annotations.`,
		Version: flags.Build.String(),
		Flags:   commands.GlobalFlags(flags),
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			logOpts := logutils.Options{Level: flags.LogLevel, File: flags.LogFile}
			switch flags.LogFile {
			case "":
				logOpts.File = filepath.Join(flags.DataDir, "lectern.log")
			case commands.LogToStderr:
				flags.Console = logutils.NewDeferred(os.Stderr)
				logOpts.File, logOpts.Console = "", flags.Console
			}

			logger, closer, err := logutils.New(logOpts)
			if err != nil {
				return ctx, fmt.Errorf("setup logger: %w", err)
			}
			log.Logger = logger
			logCloser = closer

			cfg, err := config.Load(flags.ConfigPath, flags.DataDir)
			if err != nil {
				return ctx, fmt.Errorf("load config: %w", err)
			}
			flags.Config = cfg

			database, err = settings.OpenOrRecover(cfg.SettingsPath())
			if err != nil {
				return ctx, fmt.Errorf("open settings: %w", err)
			}
			flags.Settings = settings.NewKVStore(database)

			// A theme picked inside the reader wins over the config file.
			theme, err := kv.NewSetting(flags.Settings, settings.ThemeKey, cfg.Theme).Get(ctx)
			if err != nil {
				log.Warn().Err(err).Msg("failed to read saved theme")
			}
			if !styles.UseTheme(theme) && !styles.UseTheme(cfg.Theme) {
				log.Warn().Str("theme", cfg.Theme).Msg("unknown theme, using default")
			}

			return ctx, nil
		},
		After: func(ctx context.Context, c *cli.Command) error {
			if database != nil {
				if err := database.Close(); err != nil {
					log.Error().Err(err).Msg("failed to close settings database")
					return err
				}
			}

			if flags.Console != nil {
				_ = flags.Console.Release()
			}
			if logCloser != nil {
				logCloser()
			}
			return nil
		},
	}

	openCmd := commands.NewOpenCmd(flags)

	app = openCmd.Register(app)
	app = commands.NewFormatCmd(flags).Register(app)
	app = commands.NewAuthorCmd(flags).Register(app)
	app = commands.NewSettingsCmd(flags).Register(app)
	app = commands.NewConfigValidateCmd(flags).Register(app)

	// Reader flags also work without the open subcommand
	app.Flags = append(app.Flags, openCmd.Flags()...)
	app.Action = openCmd.Run

	exitCode := 0
	if err := app.Run(ctx, os.Args); err != nil {
		fmt.Println()
		fmt.Println(err.Error())
		exitCode = 1
	}

	os.Exit(exitCode)
}
