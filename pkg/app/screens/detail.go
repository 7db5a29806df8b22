package screens

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tavoli/pensvm/pkg/app/styles"
	"github.com/tavoli/pensvm/pkg/data"
	"github.com/tavoli/pensvm/pkg/session"
	"github.com/tavoli/pensvm/pkg/store"
)

// DetailScreen shows one chapter and the entry points into reading and
// practice.
type DetailScreen struct {
	engine  *session.Engine
	store   *store.Store
	chapter *data.Chapter
	err     error
}

func NewDetailScreen(engine *session.Engine, st *store.Store) *DetailScreen {
	return &DetailScreen{engine: engine, store: st}
}

func (s *DetailScreen) Init() tea.Cmd {
	return s.loadChapter
}

func (s *DetailScreen) Update(msg tea.Msg) (screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "r", "enter":
			if s.chapter != nil {
				s.engine.StartReading()
			}
		case "e":
			s.engine.BrowseExercises()
		}

	case chapterLoadedMsg:
		s.chapter = msg.chapter
		s.err = msg.err
	}
	return s, nil
}

func (s *DetailScreen) View() string {
	if s.err != nil {
		return styles.StatusError.Render(fmt.Sprintf("Error: %s", s.err)) +
			styles.HelpStyle.Render("\nesc: back")
	}
	if s.chapter == nil {
		return styles.MutedStyle.Render("Loading...")
	}

	header := styles.TitleStyle.Render(fmt.Sprintf("Cap. %d  %s", s.chapter.Number, s.chapter.Title))
	exercises, _ := s.store.ListExercises(s.chapter.Number)

	info := fmt.Sprintf("%d pages · %d exercises · imported %s",
		len(s.chapter.Pages), len(exercises), s.chapter.ImportedAt.Format("2006-01-02"))

	help := styles.HelpStyle.Render("enter/r: read • e: exercises • esc: back")
	return fmt.Sprintf("%s\n%s\n%s", header, styles.MutedStyle.Render(info), help)
}

type chapterLoadedMsg struct {
	chapter *data.Chapter
	err     error
}

func (s *DetailScreen) loadChapter() tea.Msg {
	ch, err := s.store.LoadChapter(s.engine.Chapter())
	return chapterLoadedMsg{chapter: ch, err: err}
}
