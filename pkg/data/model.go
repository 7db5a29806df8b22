package data

import "time"

// Chapter is one imported chapter of annotated text. It owns its pages;
// once imported it only changes through content edits made by external
// tooling re-saving the whole document.
type Chapter struct {
	ID         string    `json:"id"`
	Number     int       `json:"number"`
	Title      string    `json:"title"`
	Pages      []Page    `json:"pages"`
	ImportedAt time.Time `json:"importedAt"`
}

// Page is one page of a chapter.
type Page struct {
	Index     int            `json:"index"`
	LineRange string         `json:"lineRange,omitempty"`
	Blocks    []ContentBlock `json:"blocks"`
	ImagePath string         `json:"imagePath,omitempty"`

	// Two-sided margin strips.
	MarginLeftPath  string `json:"marginLeftPath,omitempty"`
	MarginRightPath string `json:"marginRightPath,omitempty"`

	// Legacy single-margin fields kept for documents written before the
	// two-sided split. Resolved through MarginPathFor.
	MarginPath string `json:"marginPath,omitempty"`
	MarginSide string `json:"marginSide,omitempty"`
}

// MarginPathFor resolves the margin strip for one side, preferring the
// two-sided fields and falling back to the legacy single path when its
// side indicator matches.
func (p *Page) MarginPathFor(side string) string {
	switch side {
	case SideLeft:
		if p.MarginLeftPath != "" {
			return p.MarginLeftPath
		}
	case SideRight:
		if p.MarginRightPath != "" {
			return p.MarginRightPath
		}
	}
	if p.MarginPath != "" && p.MarginSide == side {
		return p.MarginPath
	}
	return ""
}

const (
	SideLeft  = "left"
	SideRight = "right"
)

// BlockKind tags the closed ContentBlock variant.
type BlockKind string

const (
	BlockText  BlockKind = "text"
	BlockImage BlockKind = "image"
)

// Block styles for text blocks.
const (
	StylePlain           = "plain"
	StyleItalic          = "italic"
	StyleGrammar         = "grammar"
	StyleGrammarTitle    = "grammarTitle"
	StyleGrammarSubtitle = "grammarSubtitle"
	StyleGrammarLabel    = "grammarLabel"
)

// ContentBlock is either a text block or an image block.
type ContentBlock struct {
	Kind BlockKind `json:"kind"`

	// Text block fields.
	Text        string     `json:"text,omitempty"`
	Style       string     `json:"style,omitempty"`
	Column      string     `json:"column,omitempty"`
	Annotations string     `json:"annotations,omitempty"`
	Table       *TableSpec `json:"table,omitempty"`

	// Image block fields.
	ImagePath string `json:"imagePath,omitempty"`
	Alt       string `json:"alt,omitempty"`
}

// EffectiveColumn returns the column assignment, defaulting to right.
func (b *ContentBlock) EffectiveColumn() string {
	if b.Column == SideLeft {
		return SideLeft
	}
	return SideRight
}

// TableSpec describes a declension/conjugation reference table attached to
// a grammar text block. Paradigms holds one group label per column group;
// it may be empty.
type TableSpec struct {
	Headers   []string   `json:"headers"`
	Paradigms []string   `json:"paradigms,omitempty"`
	Rows      []TableRow `json:"rows"`
}

// TableRow is one table row: an optional numeric/ordinal prefix, a label,
// and one word-token group per column. A token may encode a stem/ending
// split with an internal "|" separator, e.g. "ros|ae".
type TableRow struct {
	Prefix string     `json:"prefix,omitempty"`
	Label  string     `json:"label"`
	Groups [][]string `json:"groups"`
}
