package reader

import (
	"slices"
	"time"
)

// AnnotationType is the kind of markup an annotation draws.
type AnnotationType string

const (
	AnnotationHighlight AnnotationType = "highlight"
	AnnotationUnderline AnnotationType = "underline"
	AnnotationNote      AnnotationType = "note"
	AnnotationText      AnnotationType = "text"
	AnnotationImage     AnnotationType = "image"
	AnnotationInk       AnnotationType = "ink"
)

// Valid reports whether t is a known annotation type.
func (t AnnotationType) Valid() bool {
	switch t {
	case AnnotationHighlight, AnnotationUnderline, AnnotationNote, AnnotationText, AnnotationImage, AnnotationInk:
		return true
	}
	return false
}

// Tag is a label attached to an annotation.
type Tag struct {
	Name  string `yaml:"name" json:"name"`
	Color string `yaml:"color,omitempty" json:"color,omitempty"`
}

// Annotation is owned by the document layer; the overlay core only reads it.
type Annotation struct {
	ID           string         `yaml:"id" json:"id"`
	Type         AnnotationType `yaml:"type" json:"type"`
	Color        string         `yaml:"color" json:"color"`
	Comment      string         `yaml:"comment,omitempty" json:"comment,omitempty"`
	Tags         []Tag          `yaml:"tags,omitempty" json:"tags,omitempty"`
	ReadOnly     bool           `yaml:"read_only,omitempty" json:"readOnly,omitempty"`
	PageIndex    int            `yaml:"page_index" json:"pageIndex"`
	PageLabel    string         `yaml:"page_label,omitempty" json:"pageLabel,omitempty"`
	Text         string         `yaml:"text,omitempty" json:"text,omitempty"`
	AuthorName   string         `yaml:"author_name,omitempty" json:"authorName,omitempty"`
	DateModified time.Time      `yaml:"date_modified,omitempty" json:"dateModified,omitempty"`
}

// AnnotationDraft is an annotation that has not been created yet, such as the
// payload of a text selection.
type AnnotationDraft struct {
	Type      AnnotationType `yaml:"type,omitempty" json:"type,omitempty"`
	Color     string         `yaml:"color,omitempty" json:"color,omitempty"`
	PageIndex int            `yaml:"page_index" json:"pageIndex"`
	Text      string         `yaml:"text" json:"text"`
	Comment   string         `yaml:"comment,omitempty" json:"comment,omitempty"`
}

// AnnotationPatch is a partial update. Nil fields are left unchanged.
type AnnotationPatch struct {
	ID        string
	Comment   *string
	Color     *string
	Tags      []Tag
	PageLabel *string
}

// Apply returns a copy of a with the patch applied.
func (p AnnotationPatch) Apply(a Annotation) Annotation {
	if p.Comment != nil {
		a.Comment = *p.Comment
	}
	if p.Color != nil {
		a.Color = *p.Color
	}
	if p.Tags != nil {
		a.Tags = slices.Clone(p.Tags)
	}
	if p.PageLabel != nil {
		a.PageLabel = *p.PageLabel
	}
	return a
}

// FindAnnotation looks an annotation up by id.
func FindAnnotation(annotations []Annotation, id string) (Annotation, bool) {
	i := slices.IndexFunc(annotations, func(a Annotation) bool { return a.ID == id })
	if i < 0 {
		return Annotation{}, false
	}
	return annotations[i], true
}
