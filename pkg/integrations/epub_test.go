package integrations

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tavoli/pensvm/pkg/data"
)

func TestExport(t *testing.T) {
	assetRoot := t.TempDir()
	outputDir := filepath.Join(t.TempDir(), "exports")

	ch := &data.Chapter{
		Number: 5,
		Title:  "Vīlla et Hortus",
		Pages: []data.Page{
			{Index: 0, Blocks: []data.ContentBlock{
				{Kind: data.BlockText, Style: data.StyleGrammarTitle, Text: "GRAMMATICA LATĪNA"},
				{Kind: data.BlockText, Text: "In vīllā est hortus."},
			}},
			{Index: 1, Blocks: []data.ContentBlock{
				{Kind: data.BlockText, Table: &data.TableSpec{
					Headers: []string{"singulāris", "plūrālis"},
					Rows: []data.TableRow{
						{Label: "nom", Groups: [][]string{{"hort|us", "hort|ī"}}},
					},
				}},
			}},
		},
	}

	path, err := NewChapterExporter(assetRoot, outputDir).Export(ch)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(outputDir, "Vīlla et Hortus.epub"), path)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestExportEmptyChapter(t *testing.T) {
	_, err := NewChapterExporter(t.TempDir(), t.TempDir()).Export(&data.Chapter{Number: 1})
	assert.Error(t, err)
}

func TestExportUntitledChapterFallsBackToNumber(t *testing.T) {
	outputDir := t.TempDir()
	ch := &data.Chapter{
		Number: 7,
		Pages: []data.Page{
			{Blocks: []data.ContentBlock{{Kind: data.BlockText, Text: "Salvē."}}},
		},
	}

	path, err := NewChapterExporter(t.TempDir(), outputDir).Export(ch)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(outputDir, "Chapter 7.epub"), path)
}

func TestRenderTextBlockStyles(t *testing.T) {
	tests := []struct {
		style string
		want  string
	}{
		{data.StyleGrammarTitle, "<h2>exemplum</h2>\n"},
		{data.StyleGrammarSubtitle, "<h3>exemplum</h3>\n"},
		{data.StyleItalic, "<p><em>exemplum</em></p>\n"},
		{data.StylePlain, "<p>exemplum</p>\n"},
	}
	for _, tt := range tests {
		block := data.ContentBlock{Kind: data.BlockText, Style: tt.style, Text: "exemplum"}
		assert.Equal(t, tt.want, renderTextBlock(&block), "style %q", tt.style)
	}
}

func TestRenderTableHighlightsEndings(t *testing.T) {
	out := renderTable(&data.TableSpec{
		Headers: []string{"sg", "pl"},
		Rows: []data.TableRow{
			{Prefix: "1", Label: "nom", Groups: [][]string{{"ros|a"}, {"ros|ae"}}},
		},
	})

	assert.Contains(t, out, "<th>sg</th>")
	assert.Contains(t, out, "<td>1 nom</td>")
	assert.Contains(t, out, "ros<b>a</b>")
	assert.Contains(t, out, "ros<b>ae</b>")
}

func TestSanitizeFilename(t *testing.T) {
	assert.Equal(t, "a_b_c", sanitizeFilename("a/b:c"))
	assert.Equal(t, "titulus", sanitizeFilename(" titulus. "))
}
