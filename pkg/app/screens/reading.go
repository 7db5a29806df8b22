package screens

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tavoli/pensvm/pkg/align"
	"github.com/tavoli/pensvm/pkg/annotation"
	"github.com/tavoli/pensvm/pkg/app/styles"
	"github.com/tavoli/pensvm/pkg/data"
	"github.com/tavoli/pensvm/pkg/session"
	"github.com/tavoli/pensvm/pkg/store"
)

// ReadingScreen walks the pages of the selected chapter. Word annotations
// are expanded lazily per block; grammar tables go through the aligner.
type ReadingScreen struct {
	engine  *session.Engine
	store   *store.Store
	chapter *data.Chapter
	err     error
}

func NewReadingScreen(engine *session.Engine, st *store.Store) *ReadingScreen {
	return &ReadingScreen{engine: engine, store: st}
}

func (s *ReadingScreen) Init() tea.Cmd {
	return s.loadChapter
}

func (s *ReadingScreen) Update(msg tea.Msg) (screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if s.chapter == nil {
			return s, nil
		}
		switch msg.String() {
		case "left", "h":
			if s.engine.PageIndex() > 0 {
				s.engine.SetPage(s.engine.PageIndex() - 1)
			}
		case "right", "l", " ":
			if s.engine.PageIndex()+1 < len(s.chapter.Pages) {
				s.engine.SetPage(s.engine.PageIndex() + 1)
			}
		}

	case readingLoadedMsg:
		s.chapter = msg.chapter
		s.err = msg.err
	}
	return s, nil
}

func (s *ReadingScreen) View() string {
	if s.err != nil {
		return styles.StatusError.Render(fmt.Sprintf("Error: %s", s.err)) +
			styles.HelpStyle.Render("\nesc: back")
	}
	if s.chapter == nil {
		return styles.MutedStyle.Render("Loading...")
	}

	pageIdx := s.engine.PageIndex()
	if pageIdx >= len(s.chapter.Pages) {
		pageIdx = len(s.chapter.Pages) - 1
	}
	page := &s.chapter.Pages[pageIdx]

	header := styles.TitleStyle.Render(fmt.Sprintf("Cap. %d  %s", s.chapter.Number, s.chapter.Title))
	pos := styles.MutedStyle.Render(fmt.Sprintf("page %d / %d", pageIdx+1, len(s.chapter.Pages)))

	var b strings.Builder
	for _, block := range page.Blocks {
		b.WriteString(renderBlock(&block))
		b.WriteString("\n")
	}

	help := styles.HelpStyle.Render("←/→: turn page • esc: back • q: quit")
	return fmt.Sprintf("%s\n%s\n\n%s%s", header, pos, b.String(), help)
}

func renderBlock(block *data.ContentBlock) string {
	if block.Kind == data.BlockImage {
		return styles.MutedStyle.Render(fmt.Sprintf("[illustration: %s]", block.Alt))
	}

	if block.Table != nil {
		words := annotation.Decode(block.Annotations)
		return renderAlignedTable(align.Resolve(block.Table, words))
	}

	text := block.Text
	switch block.Style {
	case data.StyleGrammarTitle:
		text = styles.TitleStyle.Render(text)
	case data.StyleGrammarSubtitle:
		text = styles.SubtitleStyle.Render(text)
	case data.StyleGrammarLabel:
		text = styles.SelectedStyle.Render(text)
	case data.StyleItalic:
		text = styles.ItalicStyle.Render(text)
	default:
		text = styles.TextStyle.Render(text)
	}

	if words := annotation.Decode(block.Annotations); len(words) > 0 {
		poly := 0
		for _, w := range words {
			if w.IsPolysemous() {
				poly++
			}
		}
		note := fmt.Sprintf("%d annotated words", len(words))
		if poly > 0 {
			note += fmt.Sprintf(", %d polysemous", poly)
		}
		text += "\n" + styles.MutedStyle.Render("· "+note)
	}
	return text
}

// renderAlignedTable draws a resolved grammar table. Bound cell tokens
// show their ending highlighted; unbound tokens stay plain.
func renderAlignedTable(t align.Table) string {
	var b strings.Builder

	if len(t.Paradigms) > 0 {
		labels := make([]string, len(t.Paradigms))
		for i, p := range t.Paradigms {
			labels[i] = styles.SubtitleStyle.Render(p.Text)
		}
		b.WriteString(strings.Join(labels, "    "))
		b.WriteString("\n")
	}

	headers := make([]string, len(t.Headers))
	for i, h := range t.Headers {
		headers[i] = styles.SelectedStyle.Render(h.Text)
	}
	b.WriteString(strings.Join(headers, "  "))
	b.WriteString("\n")

	for _, row := range t.Rows {
		label := row.Label.Text
		if row.Prefix != nil {
			label = row.Prefix.Text + " " + label
		}
		b.WriteString(styles.MutedStyle.Render(label))
		for _, group := range row.Groups {
			for _, cell := range group {
				b.WriteString("  ")
				b.WriteString(renderCell(cell))
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}

func renderCell(cell align.Token) string {
	if cell.Ending != "" {
		return styles.TextStyle.Render(cell.Stem) + styles.GapStyle.Render(cell.Ending)
	}
	if cell.Word == nil {
		return styles.MutedStyle.Render(cell.Stem)
	}
	return styles.TextStyle.Render(cell.Stem)
}

type readingLoadedMsg struct {
	chapter *data.Chapter
	err     error
}

func (s *ReadingScreen) loadChapter() tea.Msg {
	ch, err := s.store.LoadChapter(s.engine.Chapter())
	return readingLoadedMsg{chapter: ch, err: err}
}
