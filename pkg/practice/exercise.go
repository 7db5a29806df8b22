package practice

import (
	"time"

	"github.com/tavoli/pensvm/pkg/data"
)

// Gap is a fill-in-the-blank cell with its mutable in-progress answer.
// Correctness is always recomputed from (Answer, Ending), never stored.
type Gap struct {
	ID       string
	Stem     string
	Ending   string
	Lemma    string
	WordType string
	Genitive string
	Gender   string
	Note     string
	Answer   string
}

// Result checks the gap's current answer.
func (g Gap) Result() Result {
	return Check(g.Answer, g.Ending)
}

// Part is a tagged union: literal text or a gap. Gap is valid only when
// Kind is data.PartGap. Recording an answer replaces the part value at
// its index, keeping the sentence a plain value-semantics slice.
type Part struct {
	Kind data.PartKind
	Text string
	Gap  Gap
}

// Sentence is an ordered list of parts.
type Sentence struct {
	Parts []Part
}

// Gaps returns the gap subsequence in order.
func (s Sentence) Gaps() []Gap {
	var gaps []Gap
	for _, p := range s.Parts {
		if p.Kind == data.PartGap {
			gaps = append(gaps, p.Gap)
		}
	}
	return gaps
}

// AllAnswered reports whether every gap holds a non-empty answer.
func (s Sentence) AllAnswered() bool {
	for _, p := range s.Parts {
		if p.Kind == data.PartGap && p.Gap.Answer == "" {
			return false
		}
	}
	return true
}

// SetAnswer records an answer on the gap with the given identity by
// replacing the part at its index. Returns false if no gap matches.
func (s *Sentence) SetAnswer(gapID, answer string) bool {
	for i, p := range s.Parts {
		if p.Kind == data.PartGap && p.Gap.ID == gapID {
			p.Gap.Answer = answer
			s.Parts[i] = p
			return true
		}
	}
	return false
}

// Exercise is the in-memory shape used during practice. It shares its
// logical shape with data.StoredExercise; FromStored and ToStored are the
// pure mappings between the two.
type Exercise struct {
	Chapter     int
	Sequence    int
	Type        string
	SourceImage string
	Sentences   []Sentence
	ImportedAt  time.Time
}

// Gaps returns all gaps across all sentences in order.
func (e *Exercise) Gaps() []Gap {
	var gaps []Gap
	for _, s := range e.Sentences {
		gaps = append(gaps, s.Gaps()...)
	}
	return gaps
}

// SetAnswer records an answer on the first gap with the given identity
// anywhere in the exercise.
func (e *Exercise) SetAnswer(gapID, answer string) bool {
	for i := range e.Sentences {
		if e.Sentences[i].SetAnswer(gapID, answer) {
			return true
		}
	}
	return false
}

// FromStored converts the on-disk shape to the in-memory one. Answers
// start absent; the session layer replays any persisted answers on top.
func FromStored(se *data.StoredExercise) *Exercise {
	e := &Exercise{
		Chapter:     se.Chapter,
		Sequence:    se.Sequence,
		Type:        se.Type,
		SourceImage: se.SourceImage,
		Sentences:   make([]Sentence, len(se.Sentences)),
		ImportedAt:  se.ImportedAt,
	}
	for i, ss := range se.Sentences {
		parts := make([]Part, len(ss.Parts))
		for j, sp := range ss.Parts {
			switch sp.Kind {
			case data.PartGap:
				if sp.Gap == nil {
					parts[j] = Part{Kind: data.PartText}
					continue
				}
				parts[j] = Part{Kind: data.PartGap, Gap: Gap{
					ID:       sp.Gap.ID,
					Stem:     sp.Gap.Stem,
					Ending:   sp.Gap.Ending,
					Lemma:    sp.Gap.Lemma,
					WordType: sp.Gap.WordType,
					Genitive: sp.Gap.Genitive,
					Gender:   sp.Gap.Gender,
					Note:     sp.Gap.Note,
				}}
			default:
				parts[j] = Part{Kind: data.PartText, Text: sp.Text}
			}
		}
		e.Sentences[i] = Sentence{Parts: parts}
	}
	return e
}

// ToStored converts back to the on-disk shape. User answers are not part
// of the stored document.
func (e *Exercise) ToStored() *data.StoredExercise {
	se := &data.StoredExercise{
		Chapter:     e.Chapter,
		Sequence:    e.Sequence,
		Type:        e.Type,
		SourceImage: e.SourceImage,
		Sentences:   make([]data.StoredSentence, len(e.Sentences)),
		ImportedAt:  e.ImportedAt,
	}
	for i, s := range e.Sentences {
		parts := make([]data.StoredPart, len(s.Parts))
		for j, p := range s.Parts {
			switch p.Kind {
			case data.PartGap:
				g := p.Gap
				parts[j] = data.StoredPart{Kind: data.PartGap, Gap: &data.StoredGap{
					ID:       g.ID,
					Stem:     g.Stem,
					Ending:   g.Ending,
					Lemma:    g.Lemma,
					WordType: g.WordType,
					Genitive: g.Genitive,
					Gender:   g.Gender,
					Note:     g.Note,
				}}
			default:
				parts[j] = data.StoredPart{Kind: data.PartText, Text: p.Text}
			}
		}
		se.Sentences[i] = data.StoredSentence{Parts: parts}
	}
	return se
}
