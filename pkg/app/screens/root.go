package screens

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tavoli/pensvm/pkg/app/styles"
	"github.com/tavoli/pensvm/pkg/logger"
	"github.com/tavoli/pensvm/pkg/session"
	"github.com/tavoli/pensvm/pkg/store"
)

// screen is the common shape of all sub-screens.
type screen interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (screen, tea.Cmd)
	View() string
}

// RootScreen routes between sub-screens based on the session state. All
// navigation goes through the engine so every transition is snapshotted.
type RootScreen struct {
	engine *session.Engine
	store  *store.Store
	log    *logger.Logger

	library   *LibraryScreen
	detail    *DetailScreen
	reading   *ReadingScreen
	exercises *ExerciseLibraryScreen
	practice  *PracticeScreen

	lastState session.State
	width     int
	height    int
}

func NewRootScreen(engine *session.Engine, st *store.Store, log *logger.Logger) *RootScreen {
	return &RootScreen{
		engine:    engine,
		store:     st,
		log:       log,
		library:   NewLibraryScreen(engine, st),
		detail:    NewDetailScreen(engine, st),
		reading:   NewReadingScreen(engine, st),
		exercises: NewExerciseLibraryScreen(engine, st),
		practice:  NewPracticeScreen(engine),
		lastState: engine.State(),
	}
}

func (r *RootScreen) Init() tea.Cmd {
	if active := r.active(); active != nil {
		return active.Init()
	}
	return nil
}

// active maps the session state to the screen that renders it. Loading
// and error are rendered by the exercise library, the state they are
// entered from.
func (r *RootScreen) active() screen {
	switch r.engine.State() {
	case session.StateChapterLibrary:
		return r.library
	case session.StateChapterDetail:
		return r.detail
	case session.StateReading:
		return r.reading
	case session.StateExerciseLibrary, session.StateLoading, session.StateError:
		return r.exercises
	case session.StateExercise, session.StateSummary:
		return r.practice
	}
	return nil
}

func (r *RootScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		r.width = msg.Width
		r.height = msg.Height

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return r, tea.Quit
		case "q":
			// Quit everywhere except while typing an answer.
			if r.engine.State() != session.StateExercise {
				return r, tea.Quit
			}
		case "esc":
			if r.engine.State() == session.StateHome {
				return r, tea.Quit
			}
			r.engine.Back()
			return r, r.syncScreen()
		case "ctrl+h":
			r.engine.GoHome()
			return r, r.syncScreen()
		case "enter", "l":
			if r.engine.State() == session.StateHome {
				r.engine.EnterLibrary()
				return r, r.syncScreen()
			}
		}
	}

	active := r.active()
	if active == nil {
		return r, nil
	}
	newScreen, cmd := active.Update(msg)
	r.setActive(newScreen)
	if sync := r.syncScreen(); sync != nil {
		return r, tea.Batch(cmd, sync)
	}
	return r, cmd
}

// syncScreen re-initializes the active screen after a state transition.
func (r *RootScreen) syncScreen() tea.Cmd {
	state := r.engine.State()
	if state == r.lastState {
		return nil
	}
	r.lastState = state
	if active := r.active(); active != nil {
		return active.Init()
	}
	return nil
}

func (r *RootScreen) setActive(s screen) {
	switch s := s.(type) {
	case *LibraryScreen:
		r.library = s
	case *DetailScreen:
		r.detail = s
	case *ReadingScreen:
		r.reading = s
	case *ExerciseLibraryScreen:
		r.exercises = s
	case *PracticeScreen:
		r.practice = s
	}
}

func (r *RootScreen) View() string {
	if r.engine.State() == session.StateHome {
		return r.renderHome()
	}
	if active := r.active(); active != nil {
		return active.View()
	}
	return ""
}

func (r *RootScreen) renderHome() string {
	title := styles.TitleStyle.Render("PENSVM")
	subtitle := styles.SubtitleStyle.Render("an interactive Latin reader")
	help := styles.HelpStyle.Render("enter: chapter library • q: quit")
	return fmt.Sprintf("%s\n%s\n\n%s", title, subtitle, help)
}
