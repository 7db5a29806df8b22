package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/tavoli/pensvm/pkg/app/screens"
	"github.com/tavoli/pensvm/pkg/logger"
	"github.com/tavoli/pensvm/pkg/session"
	"github.com/tavoli/pensvm/pkg/store"
)

// App owns the interactive reader. The store and session engine are
// injected; the app holds them for the process lifetime.
type App struct {
	store  *store.Store
	engine *session.Engine
	log    *logger.Logger
}

func New(st *store.Store, engine *session.Engine, log *logger.Logger) *App {
	return &App{store: st, engine: engine, log: log}
}

// Run restores the previous session and starts the TUI.
func (a *App) Run() error {
	a.engine.Restore()
	model := screens.NewRootScreen(a.engine, a.store, a.log)
	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
