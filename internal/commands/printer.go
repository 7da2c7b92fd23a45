package commands

import (
	"fmt"
	"io"

	lipgloss "charm.land/lipgloss/v2"

	"github.com/hay-kot/lectern/internal/core/styles"
)

// printer writes status lines for the non-interactive commands. Colors are
// downsampled to what w supports, so plain files get plain text.
type printer struct {
	w io.Writer
}

func newPrinter(w io.Writer) *printer { return &printer{w: w} }

func (p *printer) line(style lipgloss.Style, mark, format string, args ...any) {
	_, _ = lipgloss.Fprintln(p.w, style.Render(mark)+" "+fmt.Sprintf(format, args...))
}

func (p *printer) Successf(format string, args ...any) {
	p.line(lipgloss.NewStyle().Foreground(styles.ColorSuccess), "✔", format, args...)
}

func (p *printer) Infof(format string, args ...any) {
	p.line(lipgloss.NewStyle().Foreground(styles.ColorWarning), "•", format, args...)
}

func (p *printer) Errorf(format string, args ...any) {
	p.line(lipgloss.NewStyle().Foreground(styles.ColorError), "✘", format, args...)
}

func (p *printer) Printf(format string, args ...any) {
	_, _ = lipgloss.Fprintln(p.w, fmt.Sprintf(format, args...))
}
