package annotation

// AnnotatedWord is one word of annotated text decoded from the compact
// per-block annotation document. Every field beyond Text is optional;
// partially annotated content is the steady state, not an error.
type AnnotatedWord struct {
	Text      string
	Lemma     string   // empty means identical to Text
	Glosses   []string // first entry is the context-correct sense
	Morph     string   // abbreviated morphological form, e.g. "nom.sg"
	POS       string   // single-letter part-of-speech code
	Genitive  string   // genitive-singular citation form
	Gender    string
	Irregular bool
	GlossNote string // short rationale for why the gloss fits context
}

// HasAnnotations reports whether any optional field is populated.
func (w AnnotatedWord) HasAnnotations() bool {
	return w.Lemma != "" || len(w.Glosses) > 0 || w.Morph != "" ||
		w.POS != "" || w.Genitive != "" || w.Gender != "" ||
		w.Irregular || w.GlossNote != ""
}

// IsPolysemous reports whether the word carries distractor glosses.
func (w AnnotatedWord) IsPolysemous() bool {
	return len(w.Glosses) > 1
}

// EffectiveLemma returns the dictionary head-form, falling back to the
// surface text when no lemma was annotated.
func (w AnnotatedWord) EffectiveLemma() string {
	if w.Lemma != "" {
		return w.Lemma
	}
	return w.Text
}

// Gloss returns the context-correct sense, or "" when unglossed.
func (w AnnotatedWord) Gloss() string {
	if len(w.Glosses) == 0 {
		return ""
	}
	return w.Glosses[0]
}

// Distractors returns the alternative senses used by disambiguation
// drills.
func (w AnnotatedWord) Distractors() []string {
	if len(w.Glosses) < 2 {
		return nil
	}
	return w.Glosses[1:]
}
