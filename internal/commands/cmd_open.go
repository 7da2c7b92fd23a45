package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/hay-kot/lectern/internal/core/config"
	"github.com/hay-kot/lectern/internal/core/i18n"
	"github.com/hay-kot/lectern/internal/core/kv"
	"github.com/hay-kot/lectern/internal/core/links"
	"github.com/hay-kot/lectern/internal/core/logging"
	"github.com/hay-kot/lectern/internal/core/reader"
	"github.com/hay-kot/lectern/internal/core/settings"
	"github.com/hay-kot/lectern/internal/document"
	"github.com/hay-kot/lectern/internal/tui"
	"github.com/hay-kot/lectern/pkg/executil"
	"github.com/hay-kot/lectern/pkg/iojson"
	"github.com/hay-kot/lectern/pkg/profiler"
)

type OpenCmd struct {
	flags        *Flags
	readOnly     bool
	author       string
	export       string
	profilerPort int
}

// NewOpenCmd creates the document reader command.
func NewOpenCmd(flags *Flags) *OpenCmd {
	return &OpenCmd{flags: flags}
}

// Flags returns the reader flags for registration on the root command.
func (cmd *OpenCmd) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:        "read-only",
			Usage:       "open the document without allowing edits",
			Sources:     cli.EnvVars("LECTERN_READ_ONLY"),
			Destination: &cmd.readOnly,
		},
		&cli.StringFlag{
			Name:        "author",
			Usage:       "annotation author name, stored for later sessions",
			Sources:     cli.EnvVars("LECTERN_AUTHOR"),
			Destination: &cmd.author,
		},
		&cli.StringFlag{
			Name:        "export",
			Usage:       "write annotations and notes as JSON to this path on exit",
			Destination: &cmd.export,
		},
		&cli.IntFlag{
			Name:        "profiler-port",
			Usage:       "enable pprof HTTP endpoint on specified port (e.g., 6060)",
			Sources:     cli.EnvVars("LECTERN_PROFILER_PORT"),
			Destination: &cmd.profilerPort,
		},
	}
}

// Register adds the open command to the application.
func (cmd *OpenCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "open",
		Usage:     "Open a document in the reader",
		UsageText: "lectern open [options] <document.yaml>",
		Flags:     cmd.Flags(),
		Action:    cmd.Run,
	})
	return app
}

// Run opens the document named by the first argument. Exported for use as
// the default command.
func (cmd *OpenCmd) Run(ctx context.Context, c *cli.Command) error {
	path := c.Args().First()
	if path == "" {
		return fmt.Errorf("missing document path. Run 'lectern --help' for usage")
	}

	fixture, err := document.LoadFixture(path)
	if err != nil {
		return err
	}
	ctx = logging.WithDocumentID(ctx, fixture.ID)

	cfg := cmd.flags.Config
	logger := logging.ComponentOf(log.Logger, "reader")

	author := settings.NewAuthor(cmd.flags.Settings)
	if cmd.author != "" {
		if err := author.Set(ctx, cmd.author); err != nil {
			return err
		}
	}

	var warnings []string
	catalog, err := i18n.New(cfg.Locale)
	if err != nil {
		logger.Warn().Ctx(ctx).Err(err).Msg("load message catalog")
		warnings = append(warnings, "Translations unavailable, using English.")
	}

	if cmd.profilerPort > 0 {
		srv := profiler.New(cmd.profilerPort, logging.ComponentOf(log.Logger, "profiler"))
		if err := srv.Start(ctx); err != nil {
			return fmt.Errorf("start profiler: %w", err)
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				log.Error().Err(err).Msg("failed to shutdown profiler server")
			}
		}()
		logger.Info().Str("url", srv.URL()).Msg("profiler endpoint available")
	}

	session := document.NewSession(document.New(fixture), SessionOptions(cfg, author, cmd.readOnly, logger))

	var saveTheme tui.ThemeSaver
	if cmd.flags.Settings != nil {
		theme := kv.NewSetting(cmd.flags.Settings, settings.ThemeKey, cfg.Theme)
		saveTheme = theme.Set
	}

	m := tui.New(cfg, session, tui.Options{
		Context:   ctx,
		Engine:    document.NewEngine(session),
		Author:    author,
		Opener:    links.NewOpener(&executil.RealExecutor{}, cfg.Links.Command, cfg.Links.Allow),
		Catalog:   catalog,
		SaveTheme: saveTheme,
		Logger:    logging.ComponentOf(log.Logger, "tui"),
		Build:     cmd.flags.Build,
		Warnings:  warnings,
	})

	if cmd.flags.Console != nil {
		cmd.flags.Console.Hold()
		defer func() { _ = cmd.flags.Console.Release() }()
	}

	if _, err := tea.NewProgram(m, tea.WithContext(ctx)).Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("run reader: %w", err)
	}

	if cmd.export == "" {
		return nil
	}
	return exportAnnotations(cmd.export, session.State(), session.Notes())
}

// SessionOptions maps configuration onto the document session.
func SessionOptions(cfg *config.Config, author *settings.Author, readOnly bool, logger zerolog.Logger) document.Options {
	return document.Options{
		ReadOnly:        readOnly || cfg.ReadOnly,
		EnableAddToNote: cfg.EnableAddToNote,
		Mode:            reader.AnnotationType(cfg.TextSelectionMode),
		Palette:         cfg.Palette(),
		Author: func() string {
			name, err := author.Name(context.Background())
			if err != nil {
				logger.Warn().Err(err).Msg("read author name")
			}
			return name
		},
		Logger: logger,
	}
}

type exportFile struct {
	Annotations []reader.Annotation      `json:"annotations"`
	Notes       []reader.AnnotationDraft `json:"notes,omitempty"`
}

func exportAnnotations(path string, st reader.State, notes []reader.AnnotationDraft) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create export: %w", err)
	}
	defer func() { _ = f.Close() }()

	out := exportFile{Annotations: st.Annotations, Notes: notes}
	if out.Annotations == nil {
		out.Annotations = []reader.Annotation{}
	}
	return iojson.Write(f, os.Stderr, out)
}
