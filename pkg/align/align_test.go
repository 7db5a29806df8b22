package align

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tavoli/pensvm/pkg/annotation"
	"github.com/tavoli/pensvm/pkg/data"
)

func word(text string) annotation.AnnotatedWord {
	return annotation.AnnotatedWord{Text: text, Lemma: text, POS: "n"}
}

// declensionSpec is a two-column table in the shape of a noun paradigm:
// headers, a paradigm label per column group, and labeled rows of cells
// with highlighted endings.
func declensionSpec() *data.TableSpec {
	return &data.TableSpec{
		Headers:   []string{"singulāris", "plūrālis"},
		Paradigms: []string{"fēmina"},
		Rows: []data.TableRow{
			{Label: "nom", Groups: [][]string{{"ros|a", "ros|ae"}}},
			{Label: "acc", Groups: [][]string{{"ros|am", "ros|ās"}}},
		},
	}
}

// declensionWords is the same table transcribed in reading order.
func declensionWords() []annotation.AnnotatedWord {
	return []annotation.AnnotatedWord{
		word("singulāris"), word("plūrālis"),
		word("nom"), word("fēmina"), word("rosa"), word("rosae"),
		word("acc"), word("rosam"), word("rosās"),
	}
}

func TestResolveBindsEveryToken(t *testing.T) {
	resolved := Resolve(declensionSpec(), declensionWords())

	require.Len(t, resolved.Headers, 2)
	require.Len(t, resolved.Paradigms, 1)
	require.Len(t, resolved.Rows, 2)

	for i, h := range resolved.Headers {
		assert.NotNil(t, h.Word, "header %d unbound", i)
	}
	assert.NotNil(t, resolved.Paradigms[0].Word)
	for ri, row := range resolved.Rows {
		assert.NotNil(t, row.Label.Word, "row %d label unbound", ri)
		for _, group := range row.Groups {
			for wi, cell := range group {
				assert.NotNil(t, cell.Word, "row %d cell %d unbound", ri, wi)
			}
		}
	}
}

func TestResolveSplitsEndings(t *testing.T) {
	resolved := Resolve(declensionSpec(), declensionWords())

	cell := resolved.Rows[0].Groups[0][0]
	assert.Equal(t, "ros|a", cell.Text)
	assert.Equal(t, "ros", cell.Stem)
	assert.Equal(t, "a", cell.Ending)

	label := resolved.Rows[0].Label
	assert.Equal(t, "nom", label.Stem)
	assert.Empty(t, label.Ending)
}

func TestResolveMissingAnnotationLeavesOneUnbound(t *testing.T) {
	words := declensionWords()
	// Drop the annotation for "rosam"; every other token must still bind.
	dropped := append([]annotation.AnnotatedWord{}, words[:7]...)
	dropped = append(dropped, words[8:]...)

	resolved := Resolve(declensionSpec(), dropped)

	assert.Nil(t, resolved.Rows[1].Groups[0][0].Word, "rosam should be unbound")
	assert.NotNil(t, resolved.Rows[1].Label.Word)
	assert.NotNil(t, resolved.Rows[1].Groups[0][1].Word, "rosās should rebind after the gap")
}

func TestResolveNoWords(t *testing.T) {
	resolved := Resolve(declensionSpec(), nil)

	assert.Nil(t, resolved.Headers[0].Word)
	assert.Equal(t, "singulāris", resolved.Headers[0].Text)
	assert.Nil(t, resolved.Rows[0].Groups[0][0].Word)
}

func TestResolveRowPrefix(t *testing.T) {
	spec := &data.TableSpec{
		Headers: []string{"persōna"},
		Rows: []data.TableRow{
			{Prefix: "1", Label: "amō", Groups: [][]string{{"amā|mus"}}},
		},
	}
	words := []annotation.AnnotatedWord{
		word("persōna"), word("1"), word("amō"), word("amāmus"),
	}

	resolved := Resolve(spec, words)

	require.NotNil(t, resolved.Rows[0].Prefix)
	assert.NotNil(t, resolved.Rows[0].Prefix.Word)
	assert.NotNil(t, resolved.Rows[0].Label.Word)
	assert.NotNil(t, resolved.Rows[0].Groups[0][0].Word)
}

func TestNormalizeQuotesAndSeparators(t *testing.T) {
	spec := &data.TableSpec{
		Headers: []string{`"vōs"`},
		Rows: []data.TableRow{
			{Label: "nom", Groups: [][]string{{"vōbīs|cum"}}},
		},
	}
	words := []annotation.AnnotatedWord{
		word("vōs"), word("nom"), word("“vōbīscum”"),
	}

	resolved := Resolve(spec, words)

	assert.NotNil(t, resolved.Headers[0].Word, "quoted header should bind bare word")
	assert.NotNil(t, resolved.Rows[0].Groups[0][0].Word, "curly-quoted word should bind separator token")
}

func TestSplitEnding(t *testing.T) {
	stem, ending := SplitEnding("ros|ae")
	assert.Equal(t, "ros", stem)
	assert.Equal(t, "ae", ending)

	stem, ending = SplitEnding("et")
	assert.Equal(t, "et", stem)
	assert.Empty(t, ending)
}
