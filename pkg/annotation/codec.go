// Package annotation decodes the compact per-word annotation format
// embedded in text content blocks.
//
// A document is a header line declaring an ordered field list with a
// bracketed word count, followed by one comma-separated row per word:
//
//	words[2]{text,lemma,gloss,form,pos}:
//	puella,,girl,nom.sg,n
//	videt,videō,sees|perceives|notices,3.sg.pres,v
//
// The codec is deliberately lenient: a missing or malformed header, or
// fewer rows than the header promises, yields an empty result so the
// plain text still renders; individual malformed rows are skipped.
package annotation

import (
	"regexp"
	"strconv"
	"strings"
)

// Recognized field codes. Unrecognized codes are ignored so newer
// documents still decode on older readers.
const (
	fieldText      = "text"
	fieldLemma     = "lemma"
	fieldGloss     = "gloss"
	fieldForm      = "form"
	fieldPOS       = "pos"
	fieldGenitive  = "genitive"
	fieldGender    = "gender"
	fieldIrregular = "irregular"
	fieldGlossNote = "glossNote"
)

var headerRe = regexp.MustCompile(`\[(\d+)\]\{([^}]*)\}`)

// Decode expands an annotation document into its word records. It never
// returns an error; undecodable input produces an empty result.
func Decode(doc string) []AnnotatedWord {
	lines := strings.Split(doc, "\n")
	if len(lines) == 0 {
		return nil
	}

	m := headerRe.FindStringSubmatch(lines[0])
	if m == nil {
		return nil
	}
	count, _ := strconv.Atoi(m[1])
	fields := splitFields(m[2])
	if count == 0 || len(fields) == 0 {
		return nil
	}

	var rows []string
	for _, line := range lines[1:] {
		if strings.TrimSpace(line) == "" {
			continue
		}
		rows = append(rows, line)
	}
	if len(rows) < count {
		return nil
	}
	rows = rows[:count]

	words := make([]AnnotatedWord, 0, count)
	for _, row := range rows {
		w, ok := wordFromRow(fields, splitRow(row))
		if !ok {
			continue
		}
		words = append(words, w)
	}
	return words
}

// Encode is the inverse construction: it writes all recognized fields so
// that Decode(Encode(words)) reproduces words field for field.
func Encode(words []AnnotatedWord) string {
	fields := []string{
		fieldText, fieldLemma, fieldGloss, fieldForm, fieldPOS,
		fieldGenitive, fieldGender, fieldIrregular, fieldGlossNote,
	}

	var b strings.Builder
	b.WriteString("words[")
	b.WriteString(strconv.Itoa(len(words)))
	b.WriteString("]{")
	b.WriteString(strings.Join(fields, ","))
	b.WriteString("}:\n")

	for _, w := range words {
		vals := []string{
			w.Text,
			w.Lemma,
			strings.Join(w.Glosses, "|"),
			w.Morph,
			w.POS,
			w.Genitive,
			w.Gender,
			boolValue(w.Irregular),
			w.GlossNote,
		}
		for i, v := range vals {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(quoteValue(v))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func splitFields(s string) []string {
	raw := strings.Split(s, ",")
	fields := make([]string, 0, len(raw))
	for _, f := range raw {
		f = strings.TrimSpace(f)
		if f != "" {
			fields = append(fields, f)
		}
	}
	return fields
}

// splitRow splits one data row on commas with minimal quote-escaping: a
// straight quote toggles an inside-quotes mode during a single scan, so
// commas inside quotes do not separate values.
func splitRow(row string) []string {
	var vals []string
	var cur strings.Builder
	inQuotes := false
	for _, r := range row {
		switch {
		case r == '"':
			inQuotes = !inQuotes
		case r == ',' && !inQuotes:
			vals = append(vals, cur.String())
			cur.Reset()
		default:
			cur.WriteRune(r)
		}
	}
	vals = append(vals, cur.String())
	for i := range vals {
		vals[i] = strings.TrimSpace(vals[i])
	}
	return vals
}

// wordFromRow maps row values onto the declared fields. A row without
// surface text is malformed and reported as such; missing trailing values
// simply leave their fields absent.
func wordFromRow(fields, vals []string) (AnnotatedWord, bool) {
	var w AnnotatedWord
	for i, f := range fields {
		if i >= len(vals) {
			break
		}
		v := vals[i]
		if v == "" {
			continue
		}
		switch f {
		case fieldText:
			w.Text = v
		case fieldLemma:
			w.Lemma = v
		case fieldGloss:
			w.Glosses = splitGlosses(v)
		case fieldForm:
			w.Morph = v
		case fieldPOS:
			w.POS = v
		case fieldGenitive:
			w.Genitive = v
		case fieldGender:
			w.Gender = v
		case fieldIrregular:
			w.Irregular = v == "true"
		case fieldGlossNote:
			w.GlossNote = v
		}
	}
	if w.Text == "" {
		return AnnotatedWord{}, false
	}
	return w, true
}

// splitGlosses splits the |-delimited gloss list; the first entry is the
// context-correct sense, the rest are distractors.
func splitGlosses(v string) []string {
	raw := strings.Split(v, "|")
	glosses := make([]string, 0, len(raw))
	for _, g := range raw {
		g = strings.TrimSpace(g)
		if g != "" {
			glosses = append(glosses, g)
		}
	}
	if len(glosses) == 0 {
		return nil
	}
	return glosses
}

func quoteValue(v string) string {
	if strings.ContainsAny(v, ",\"") {
		return `"` + strings.ReplaceAll(v, `"`, "") + `"`
	}
	return v
}

func boolValue(b bool) string {
	if b {
		return "true"
	}
	return ""
}
