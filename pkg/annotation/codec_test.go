package annotation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	doc := "words[2]{text,lemma,gloss,form,pos}:\n" +
		"puella,,girl,nom.sg,n\n" +
		"videt,videō,sees|perceives|notices,3.sg.pres,v\n"

	words := Decode(doc)
	require.Len(t, words, 2)

	assert.Equal(t, "puella", words[0].Text)
	assert.Empty(t, words[0].Lemma)
	assert.Equal(t, "puella", words[0].EffectiveLemma())
	assert.Equal(t, []string{"girl"}, words[0].Glosses)
	assert.Equal(t, "nom.sg", words[0].Morph)
	assert.Equal(t, "n", words[0].POS)
	assert.False(t, words[0].IsPolysemous())

	assert.Equal(t, "videt", words[1].Text)
	assert.Equal(t, "videō", words[1].Lemma)
	assert.Equal(t, "sees", words[1].Gloss())
	assert.Equal(t, []string{"perceives", "notices"}, words[1].Distractors())
	assert.True(t, words[1].IsPolysemous())
}

func TestDecodeQuotedValues(t *testing.T) {
	doc := "words[1]{text,gloss,glossNote}:\n" +
		`amat,"loves, is fond of","literary sense, not romantic"` + "\n"

	words := Decode(doc)
	require.Len(t, words, 1)
	assert.Equal(t, "amat", words[0].Text)
	assert.Equal(t, []string{"loves, is fond of"}, words[0].Glosses)
	assert.Equal(t, "literary sense, not romantic", words[0].GlossNote)
}

func TestDecodeMalformedInput(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"empty document", ""},
		{"no header", "puella,,girl\nvidet,videō,sees\n"},
		{"zero count", "words[0]{text,lemma}:\n"},
		{"no fields", "words[2]{}:\npuella\nvidet\n"},
		{"fewer rows than declared", "words[3]{text,lemma}:\npuella,\nvidet,videō\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Empty(t, Decode(tt.doc))
		})
	}
}

func TestDecodeSkipsTextlessRows(t *testing.T) {
	doc := "words[2]{text,lemma}:\n" +
		",orphan\n" +
		"puella,\n"

	words := Decode(doc)
	require.Len(t, words, 1)
	assert.Equal(t, "puella", words[0].Text)
}

func TestDecodeIgnoresExtraRows(t *testing.T) {
	doc := "words[1]{text,lemma}:\n" +
		"puella,\n" +
		"videt,videō\n"

	words := Decode(doc)
	require.Len(t, words, 1)
	assert.Equal(t, "puella", words[0].Text)
}

func TestDecodeUnknownFieldIgnored(t *testing.T) {
	doc := "words[1]{text,frequency,lemma}:\n" +
		"puella,42,puella\n"

	words := Decode(doc)
	require.Len(t, words, 1)
	assert.Equal(t, "puella", words[0].Text)
	assert.Equal(t, "puella", words[0].Lemma)
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	words := []AnnotatedWord{
		{
			Text:    "puella",
			Glosses: []string{"girl"},
			Morph:   "nom.sg",
			POS:     "n",
		},
		{
			Text:      "magnō",
			Lemma:     "magnus",
			Glosses:   []string{"great", "large", "loud"},
			Morph:     "abl.sg",
			POS:       "a",
			Gender:    "m",
			GlossNote: "of sound here",
		},
		{
			Text:      "fert",
			Lemma:     "ferō",
			Glosses:   []string{"carries, bears"},
			Morph:     "3.sg.pres",
			POS:       "v",
			Irregular: true,
		},
	}

	decoded := Decode(Encode(words))
	require.Len(t, decoded, len(words))
	for i := range words {
		assert.Equal(t, words[i], decoded[i], "word %d", i)
	}
}

func TestExpandMorph(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"nom.sg", "nominative singular"},
		{"3.sg.pres", "3rd person singular present"},
		{"abl.pl", "ablative plural"},
		{"", ""},
		{"mystery", "mystery"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ExpandMorph(tt.in), "morph %q", tt.in)
	}
}

func TestExpandPOS(t *testing.T) {
	assert.Equal(t, "noun", ExpandPOS("n"))
	assert.Equal(t, "verb", ExpandPOS("v"))
	assert.Equal(t, "x", ExpandPOS("x"))
}
