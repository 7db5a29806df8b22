package annotation

import "strings"

// morphTokens expands abbreviated morphological tokens. A form code joins
// tokens with ".", e.g. "nom.sg" or "3.sg.pres".
var morphTokens = map[string]string{
	// cases
	"nom": "nominative",
	"acc": "accusative",
	"gen": "genitive",
	"dat": "dative",
	"abl": "ablative",
	"voc": "vocative",
	"loc": "locative",
	// number
	"sg": "singular",
	"pl": "plural",
	// person
	"1": "1st person",
	"2": "2nd person",
	"3": "3rd person",
	// gender
	"m": "masculine",
	"f": "feminine",
	"n": "neuter",
	// tense
	"pres": "present",
	"impf": "imperfect",
	"fut":  "future",
	"perf": "perfect",
	"plup": "pluperfect",
	// mood and voice
	"ind":  "indicative",
	"imp":  "imperative",
	"subj": "subjunctive",
	"inf":  "infinitive",
	"act":  "active",
	"pass": "passive",
	// degree
	"comp": "comparative",
	"sup":  "superlative",
}

// posCodes expands single-letter part-of-speech codes.
var posCodes = map[string]string{
	"n": "noun",
	"v": "verb",
	"a": "adjective",
	"d": "adverb",
	"p": "preposition",
	"c": "conjunction",
	"i": "interjection",
	"r": "pronoun",
	"m": "numeral",
}

// ExpandMorph turns an abbreviated form code into a human-readable
// phrase. Unknown tokens pass through unchanged.
func ExpandMorph(code string) string {
	if code == "" {
		return ""
	}
	tokens := strings.Split(code, ".")
	out := make([]string, len(tokens))
	for i, tok := range tokens {
		if full, ok := morphTokens[tok]; ok {
			out[i] = full
		} else {
			out[i] = tok
		}
	}
	return strings.Join(out, " ")
}

// ExpandPOS turns a part-of-speech code into its display name. Unknown
// codes pass through unchanged.
func ExpandPOS(code string) string {
	if full, ok := posCodes[code]; ok {
		return full
	}
	return code
}
