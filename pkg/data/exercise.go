package data

import "time"

// PartKind tags the closed sentence-part variant.
type PartKind string

const (
	PartText PartKind = "text"
	PartGap  PartKind = "gap"
)

// StoredExercise is the on-disk shape of a practice exercise. The
// in-memory shape used during practice lives in pkg/practice; conversion
// between the two is a pure mapping.
type StoredExercise struct {
	Chapter     int              `json:"chapter,omitempty"`
	Sequence    int              `json:"sequence"`
	Type        string           `json:"type"`
	SourceImage string           `json:"sourceImage,omitempty"`
	Sentences   []StoredSentence `json:"sentences"`
	ImportedAt  time.Time        `json:"importedAt"`
}

// StoredSentence is an ordered list of text and gap parts.
type StoredSentence struct {
	Parts []StoredPart `json:"parts"`
}

// StoredPart is either literal text or a fill-in gap. This is also the
// exact shape delivered by the external content-extraction boundary.
type StoredPart struct {
	Kind PartKind   `json:"kind"`
	Text string     `json:"text,omitempty"`
	Gap  *StoredGap `json:"gap,omitempty"`
}

// StoredGap is a fill-in-the-blank cell. Only the raw user answer from the
// session snapshot is ever persisted; correctness is always recomputed.
type StoredGap struct {
	ID       string `json:"id"`
	Stem     string `json:"stem"`
	Ending   string `json:"ending"`
	Lemma    string `json:"lemma,omitempty"`
	WordType string `json:"wordType,omitempty"`
	Genitive string `json:"genitive,omitempty"`
	Gender   string `json:"gender,omitempty"`
	Note     string `json:"note,omitempty"`
}
