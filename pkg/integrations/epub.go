// Package integrations exports stored content to external formats.
package integrations

import (
	"fmt"
	"html"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-shiori/go-epub"

	"github.com/tavoli/pensvm/pkg/data"
)

// ChapterExporter compiles a chapter's text blocks and images into an
// EPUB file.
type ChapterExporter struct {
	assetRoot string // store root, resolves store-relative asset paths
	outputDir string
}

func NewChapterExporter(assetRoot, outputDir string) *ChapterExporter {
	return &ChapterExporter{assetRoot: assetRoot, outputDir: outputDir}
}

// Export writes one chapter as an EPUB and returns the output path.
func (x *ChapterExporter) Export(ch *data.Chapter) (string, error) {
	if len(ch.Pages) == 0 {
		return "", fmt.Errorf("chapter %d has no pages", ch.Number)
	}

	if err := os.MkdirAll(x.outputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	title := ch.Title
	if title == "" {
		title = fmt.Sprintf("Chapter %d", ch.Number)
	}

	e, err := epub.NewEpub(title)
	if err != nil {
		return "", fmt.Errorf("failed to create EPUB: %w", err)
	}
	e.SetLang("la")

	for _, page := range ch.Pages {
		body, err := x.renderPage(e, &page)
		if err != nil {
			return "", fmt.Errorf("failed to render page %d: %w", page.Index, err)
		}
		sectionTitle := fmt.Sprintf("Page %d", page.Index+1)
		if _, err := e.AddSection(body, sectionTitle, "", ""); err != nil {
			return "", fmt.Errorf("failed to add page %d: %w", page.Index, err)
		}
	}

	outputPath := filepath.Join(x.outputDir, sanitizeFilename(title)+".epub")
	if err := e.Write(outputPath); err != nil {
		return "", fmt.Errorf("failed to write EPUB: %w", err)
	}
	return outputPath, nil
}

func (x *ChapterExporter) renderPage(e *epub.Epub, page *data.Page) (string, error) {
	var b strings.Builder
	for _, block := range page.Blocks {
		switch block.Kind {
		case data.BlockImage:
			if block.ImagePath == "" {
				continue
			}
			abs := filepath.Join(x.assetRoot, filepath.FromSlash(block.ImagePath))
			internal, err := e.AddImage(abs, "")
			if err != nil {
				return "", fmt.Errorf("failed to add image %s: %w", block.ImagePath, err)
			}
			fmt.Fprintf(&b, `<div class="illustration"><img src="%s" alt="%s"/></div>%s`,
				internal, html.EscapeString(block.Alt), "\n")
		case data.BlockText:
			b.WriteString(renderTextBlock(&block))
		}
	}
	return b.String(), nil
}

func renderTextBlock(block *data.ContentBlock) string {
	text := html.EscapeString(block.Text)
	switch block.Style {
	case data.StyleGrammarTitle:
		return fmt.Sprintf("<h2>%s</h2>\n", text)
	case data.StyleGrammarSubtitle:
		return fmt.Sprintf("<h3>%s</h3>\n", text)
	case data.StyleGrammarLabel:
		return fmt.Sprintf(`<p class="label"><b>%s</b></p>%s`, text, "\n")
	case data.StyleItalic:
		return fmt.Sprintf("<p><em>%s</em></p>\n", text)
	default:
		if block.Table != nil {
			return renderTable(block.Table)
		}
		return fmt.Sprintf("<p>%s</p>\n", text)
	}
}

// renderTable flattens a reference table to plain HTML. Cell tokens keep
// their stem/ending split, with the ending emphasized.
func renderTable(spec *data.TableSpec) string {
	var b strings.Builder
	b.WriteString("<table>\n<tr>")
	for _, h := range spec.Headers {
		fmt.Fprintf(&b, "<th>%s</th>", html.EscapeString(h))
	}
	b.WriteString("</tr>\n")
	for _, row := range spec.Rows {
		b.WriteString("<tr>")
		label := row.Label
		if row.Prefix != "" {
			label = row.Prefix + " " + label
		}
		fmt.Fprintf(&b, "<td>%s</td>", html.EscapeString(label))
		for _, group := range row.Groups {
			b.WriteString("<td>")
			for i, cell := range group {
				if i > 0 {
					b.WriteString(" ")
				}
				stem, ending, found := strings.Cut(cell, "|")
				if found {
					fmt.Fprintf(&b, "%s<b>%s</b>", html.EscapeString(stem), html.EscapeString(ending))
				} else {
					b.WriteString(html.EscapeString(cell))
				}
			}
			b.WriteString("</td>")
		}
		b.WriteString("</tr>\n")
	}
	b.WriteString("</table>\n")
	return b.String()
}

// sanitizeFilename removes characters that are invalid in filenames.
func sanitizeFilename(name string) string {
	invalid := []string{"/", "\\", ":", "*", "?", "\"", "<", ">", "|"}
	result := name
	for _, char := range invalid {
		result = strings.ReplaceAll(result, char, "_")
	}
	result = strings.TrimSpace(result)
	result = strings.Trim(result, ".")
	return result
}
