package document

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/hay-kot/lectern/internal/core/reader"
	"github.com/hay-kot/lectern/internal/core/textrun"
)

// Fixture is the on-disk description of a document: its pages of text, the
// links on them, and the annotations already attached.
type Fixture struct {
	ID          string              `yaml:"id"`
	Title       string              `yaml:"title"`
	ReadOnly    bool                `yaml:"read_only"`
	Password    string              `yaml:"password"`
	Pages       []PageFixture       `yaml:"pages"`
	Annotations []reader.Annotation `yaml:"annotations"`
	Outline     []OutlineItem       `yaml:"outline"`
}

// PageFixture is one page of a fixture.
type PageFixture struct {
	Label string `yaml:"label"`
	Text  string `yaml:"text"`
	Links []Link `yaml:"links"`
}

// Link is a reference, link, or citation anchored on a page.
type Link struct {
	ID     string              `yaml:"id"`
	Kind   reader.OverlayKind  `yaml:"kind"`
	Anchor string              `yaml:"anchor"`
	URL    string              `yaml:"url,omitempty"`
	Dest   *reader.Destination `yaml:"dest,omitempty"`
	// Preview is shown in the overlay popup. Runs take precedence when set.
	Preview string        `yaml:"preview,omitempty"`
	Runs    []textrun.Run `yaml:"runs,omitempty"`
}

// PreviewRuns returns the runs rendered in the overlay popup.
func (l Link) PreviewRuns() []textrun.Run {
	if len(l.Runs) > 0 {
		return l.Runs
	}
	if l.Preview != "" {
		return textrun.FromString(l.Preview)
	}
	return textrun.FromString(l.Anchor)
}

// OutlineItem is an entry of the document outline.
type OutlineItem struct {
	Title     string        `yaml:"title"`
	PageIndex int           `yaml:"page"`
	Items     []OutlineItem `yaml:"items,omitempty"`
}

// LoadFixture reads a fixture from a YAML file.
func LoadFixture(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}
	return ParseFixture(data)
}

// ParseFixture decodes and checks a fixture.
func ParseFixture(data []byte) (*Fixture, error) {
	var f Fixture
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

// Validate checks cross references inside the fixture.
func (f *Fixture) Validate() error {
	if len(f.Pages) == 0 {
		return fmt.Errorf("document has no pages")
	}

	seen := map[string]bool{}
	for i, a := range f.Annotations {
		if a.ID == "" {
			return fmt.Errorf("annotations[%d]: id is required", i)
		}
		if seen[a.ID] {
			return fmt.Errorf("annotations[%d]: duplicate id %q", i, a.ID)
		}
		seen[a.ID] = true
		if !a.Type.Valid() {
			return fmt.Errorf("annotation %q: invalid type %q", a.ID, a.Type)
		}
		if a.PageIndex < 0 || a.PageIndex >= len(f.Pages) {
			return fmt.Errorf("annotation %q: page %d out of range", a.ID, a.PageIndex)
		}
	}

	for p, page := range f.Pages {
		for i, l := range page.Links {
			if l.Anchor == "" {
				return fmt.Errorf("pages[%d].links[%d]: anchor is required", p, i)
			}
			if l.URL == "" && l.Dest == nil {
				return fmt.Errorf("pages[%d].links[%d]: url or dest is required", p, i)
			}
			if l.Dest != nil && (l.Dest.PageIndex < 0 || l.Dest.PageIndex >= len(f.Pages)) {
				return fmt.Errorf("pages[%d].links[%d]: dest page %d out of range", p, i, l.Dest.PageIndex)
			}
		}
	}

	return nil
}
