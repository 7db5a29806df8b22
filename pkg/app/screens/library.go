package screens

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tavoli/pensvm/pkg/app/components"
	"github.com/tavoli/pensvm/pkg/app/styles"
	"github.com/tavoli/pensvm/pkg/session"
	"github.com/tavoli/pensvm/pkg/store"
)

// LibraryScreen lists the chapter library from the index, without loading
// full chapter content.
type LibraryScreen struct {
	engine *session.Engine
	store  *store.Store
	list   *components.ChapterList
	err    error
}

func NewLibraryScreen(engine *session.Engine, st *store.Store) *LibraryScreen {
	return &LibraryScreen{
		engine: engine,
		store:  st,
		list:   components.NewChapterList(),
	}
}

func (s *LibraryScreen) Init() tea.Cmd {
	return s.loadLibrary
}

func (s *LibraryScreen) Update(msg tea.Msg) (screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.list.Width = msg.Width - 4
		s.list.Height = msg.Height - 8

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			s.list.Prev()
		case "down", "j":
			s.list.Next()
		case "r":
			return s, s.loadLibrary
		case "d":
			if selected := s.list.Selected(); selected != nil {
				return s, s.deleteChapter(selected.Ref.Number)
			}
		case "enter":
			if selected := s.list.Selected(); selected != nil {
				s.engine.SelectChapter(selected.Ref.Number)
			}
		}

	case libraryLoadedMsg:
		s.list.SetItems(msg.items)
		s.err = msg.err

	case chapterDeletedMsg:
		s.err = msg.err
		return s, s.loadLibrary
	}

	return s, nil
}

func (s *LibraryScreen) View() string {
	header := styles.TitleStyle.Render("Chapter Library")

	var errorMsg string
	if s.err != nil {
		errorMsg = styles.StatusError.Render(fmt.Sprintf("Error: %s", s.err)) + "\n\n"
	}

	help := styles.HelpStyle.Render(
		"↑/k ↓/j: navigate • enter: open • d: delete • r: refresh • esc: back • q: quit",
	)

	return fmt.Sprintf("%s\n%s%s\n%s", header, errorMsg, s.list.View(), help)
}

// Messages
type libraryLoadedMsg struct {
	items []components.ChapterListItem
	err   error
}

type chapterDeletedMsg struct {
	err error
}

// Commands
func (s *LibraryScreen) loadLibrary() tea.Msg {
	refs, err := s.store.ListChapters()
	if err != nil {
		return libraryLoadedMsg{err: err}
	}

	items := make([]components.ChapterListItem, len(refs))
	for i, ref := range refs {
		exercises, _ := s.store.ListExercises(ref.Number)
		items[i] = components.ChapterListItem{
			Ref:           ref,
			ExerciseCount: len(exercises),
		}
	}
	return libraryLoadedMsg{items: items}
}

func (s *LibraryScreen) deleteChapter(number int) tea.Cmd {
	return func() tea.Msg {
		return chapterDeletedMsg{err: s.store.DeleteChapter(number)}
	}
}
