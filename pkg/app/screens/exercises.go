package screens

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tavoli/pensvm/pkg/app/styles"
	"github.com/tavoli/pensvm/pkg/data"
	"github.com/tavoli/pensvm/pkg/practice"
	"github.com/tavoli/pensvm/pkg/session"
	"github.com/tavoli/pensvm/pkg/store"
)

// ExerciseLibraryScreen lists exercises, pre-filtered to the selected
// chapter when one is set. It also renders the transient loading and
// error states entered from here.
type ExerciseLibraryScreen struct {
	engine   *session.Engine
	store    *store.Store
	refs     []data.ExerciseRef
	selected int
	err      error
}

func NewExerciseLibraryScreen(engine *session.Engine, st *store.Store) *ExerciseLibraryScreen {
	return &ExerciseLibraryScreen{engine: engine, store: st}
}

func (s *ExerciseLibraryScreen) Init() tea.Cmd {
	return s.loadExercises
}

func (s *ExerciseLibraryScreen) Update(msg tea.Msg) (screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if s.engine.State() != session.StateExerciseLibrary {
			return s, nil
		}
		switch msg.String() {
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.refs)-1 {
				s.selected++
			}
		case "r":
			return s, s.loadExercises
		case "d":
			if s.selected < len(s.refs) {
				ref := s.refs[s.selected]
				return s, func() tea.Msg {
					return exerciseDeletedMsg{err: s.store.DeleteExercise(ref.Chapter, ref.Sequence)}
				}
			}
		case "enter":
			if s.selected < len(s.refs) {
				ref := s.refs[s.selected]
				s.engine.BeginExercise()
				return s, s.startExercise(ref.Chapter, ref.Sequence)
			}
		}

	case exercisesLoadedMsg:
		s.refs = msg.refs
		s.err = msg.err
		if s.selected >= len(s.refs) {
			s.selected = 0
		}

	case exerciseDeletedMsg:
		s.err = msg.err
		return s, s.loadExercises

	case exerciseLoadedMsg:
		if msg.err != nil {
			s.engine.FailLoad(msg.err.Error())
		} else {
			s.engine.CompleteLoad(msg.exercise)
		}
	}
	return s, nil
}

func (s *ExerciseLibraryScreen) View() string {
	switch s.engine.State() {
	case session.StateLoading:
		return styles.MutedStyle.Render("Loading exercise...") +
			styles.HelpStyle.Render("\nesc: cancel")
	case session.StateError:
		return styles.StatusError.Render("Error: "+s.engine.ErrorMessage()) +
			styles.HelpStyle.Render("\nesc: back")
	}

	title := "Exercises"
	if s.engine.Chapter() != 0 {
		title = fmt.Sprintf("Exercises · Cap. %d", s.engine.Chapter())
	}
	header := styles.TitleStyle.Render(title)

	var errorMsg string
	if s.err != nil {
		errorMsg = styles.StatusError.Render(fmt.Sprintf("Error: %s", s.err)) + "\n\n"
	}

	var b strings.Builder
	if len(s.refs) == 0 {
		b.WriteString(styles.MutedStyle.Render("No exercises stored"))
		b.WriteString("\n")
	}
	for i, ref := range s.refs {
		line := fmt.Sprintf("Cap. %d · %d  %s  (%d sentences)",
			ref.Chapter, ref.Sequence, ref.Type, ref.SentenceCount)
		if i == s.selected {
			line = styles.SelectedStyle.Render("> " + line)
		} else {
			line = styles.TextStyle.Render("  " + line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	help := styles.HelpStyle.Render(
		"↑/k ↓/j: navigate • enter: practice • d: delete • r: refresh • esc: back",
	)
	return fmt.Sprintf("%s\n%s%s%s", header, errorMsg, b.String(), help)
}

// Messages
type exercisesLoadedMsg struct {
	refs []data.ExerciseRef
	err  error
}

type exerciseDeletedMsg struct {
	err error
}

type exerciseLoadedMsg struct {
	exercise *practice.Exercise
	err      error
}

// Commands
func (s *ExerciseLibraryScreen) loadExercises() tea.Msg {
	refs, err := s.store.ListExercises(s.engine.Chapter())
	return exercisesLoadedMsg{refs: refs, err: err}
}

// startExercise is the background unit of work behind the loading state.
func (s *ExerciseLibraryScreen) startExercise(chapter, sequence int) tea.Cmd {
	return func() tea.Msg {
		ex, err := s.engine.LoadExercise(chapter, sequence)
		return exerciseLoadedMsg{exercise: ex, err: err}
	}
}
