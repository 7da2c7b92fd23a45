// Package i18n resolves string ids to localized text.
package i18n

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Catalog looks up localized strings by id. Unknown ids resolve to the id
// itself.
type Catalog struct {
	tag     language.Tag
	printer *message.Printer
}

// Supported lists the locales with bundled strings, in preference order.
var Supported = []language.Tag{language.English, language.German}

// New returns a catalog for locale. Unparseable or unsupported locales fall
// back to English.
func New(locale string) (*Catalog, error) {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	for tag, msgs := range bundled {
		for id, text := range msgs {
			if err := b.SetString(tag, id, text); err != nil {
				return nil, fmt.Errorf("i18n: load %s/%s: %w", tag, id, err)
			}
		}
	}

	tag := language.English
	if locale != "" {
		if parsed, err := language.Parse(locale); err == nil {
			matcher := language.NewMatcher(Supported)
			_, idx, conf := matcher.Match(parsed)
			if conf != language.No {
				tag = Supported[idx]
			}
		}
	}

	return &Catalog{
		tag:     tag,
		printer: message.NewPrinter(tag, message.Catalog(b)),
	}, nil
}

// Must is New that panics on error. Bundled strings always load.
func Must(locale string) *Catalog {
	c, err := New(locale)
	if err != nil {
		panic(err)
	}
	return c
}

// Language returns the resolved locale.
func (c *Catalog) Language() language.Tag { return c.tag }

// T returns the text for id.
func (c *Catalog) T(id string) string {
	return c.printer.Sprintf(id)
}

// Tf returns the text for id formatted with args.
func (c *Catalog) Tf(id string, args ...any) string {
	return c.printer.Sprintf(id, args...)
}
