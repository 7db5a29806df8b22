// Package align binds the literal tokens of a reference-table description
// to the annotated-word stream produced by transcribing that same table's
// prose in reading order.
package align

import (
	"strings"

	"github.com/tavoli/pensvm/pkg/annotation"
	"github.com/tavoli/pensvm/pkg/data"
)

// EndingSeparator splits a cell token into stem and highlighted ending,
// e.g. "ros|ae".
const EndingSeparator = "|"

// Token is one resolved literal token of the table. Word is nil when no
// annotation matched; such tokens render as plain text.
type Token struct {
	Text   string
	Stem   string
	Ending string
	Word   *annotation.AnnotatedWord
}

// Row is one resolved table row.
type Row struct {
	Prefix *Token
	Label  Token
	Groups [][]Token
}

// Table is the resolved table structure handed to the renderer.
type Table struct {
	Headers   []Token
	Paradigms []Token
	Rows      []Row
}

// Resolve walks the table in its canonical reading order - headers left to
// right, then per row: numeric prefix, row label, and per column group the
// paradigm label (first row only) followed by the cell tokens - and binds
// each literal token against a single forward cursor into words.
//
// On a mismatch the cursor stays put, so one skipped or extra annotation
// does not desynchronize the rest of the table. If more than one
// consecutive token fails to match, a later token can still bind to an
// earlier word; that is a documented limitation of the greedy strategy,
// not corrected here.
func Resolve(spec *data.TableSpec, words []annotation.AnnotatedWord) Table {
	c := &cursor{words: words}

	resolved := Table{
		Headers:   make([]Token, len(spec.Headers)),
		Paradigms: make([]Token, len(spec.Paradigms)),
		Rows:      make([]Row, len(spec.Rows)),
	}

	for i, h := range spec.Headers {
		resolved.Headers[i] = c.bind(h)
	}

	for ri, row := range spec.Rows {
		r := Row{Groups: make([][]Token, len(row.Groups))}
		if row.Prefix != "" {
			tok := c.bind(row.Prefix)
			r.Prefix = &tok
		}
		r.Label = c.bind(row.Label)
		for gi, group := range row.Groups {
			if ri == 0 && gi < len(spec.Paradigms) {
				resolved.Paradigms[gi] = c.bind(spec.Paradigms[gi])
			}
			r.Groups[gi] = make([]Token, len(group))
			for wi, cell := range group {
				r.Groups[gi][wi] = c.bind(cell)
			}
		}
		resolved.Rows[ri] = r
	}

	return resolved
}

type cursor struct {
	words []annotation.AnnotatedWord
	pos   int
}

// bind attempts to match tok against the word at the cursor. On success
// the annotation is attached and the cursor advances; on failure the token
// stays unbound and the cursor does not move.
func (c *cursor) bind(tok string) Token {
	t := Token{Text: tok}
	t.Stem, t.Ending = SplitEnding(tok)

	if c.pos < len(c.words) {
		w := c.words[c.pos]
		if normalize(tok) == normalize(w.Text) {
			t.Word = &c.words[c.pos]
			c.pos++
		}
	}
	return t
}

// SplitEnding splits a cell token at the ending separator. Tokens without
// a separator are all stem.
func SplitEnding(tok string) (stem, ending string) {
	if i := strings.Index(tok, EndingSeparator); i >= 0 {
		return tok[:i], tok[i+len(EndingSeparator):]
	}
	return tok, ""
}

// normalize strips one layer of enclosing straight or curly quotes and any
// internal ending separators before comparison.
func normalize(s string) string {
	s = strings.ReplaceAll(s, EndingSeparator, "")
	return stripQuotes(s)
}

func stripQuotes(s string) string {
	runes := []rune(s)
	if len(runes) < 2 {
		return s
	}
	first := runes[0]
	last := runes[len(runes)-1]
	if isQuote(first) && isQuote(last) {
		return string(runes[1 : len(runes)-1])
	}
	return s
}

func isQuote(r rune) bool {
	switch r {
	case '"', '\'', '“', '”', '‘', '’':
		return true
	}
	return false
}
