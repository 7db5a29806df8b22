// Package session tracks the user's navigation position and in-progress
// exercise answers, and persists them across application restarts. All
// content lookups go through the store; correctness goes through
// pkg/practice.
package session

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/tavoli/pensvm/pkg/logger"
	"github.com/tavoli/pensvm/pkg/practice"
	"github.com/tavoli/pensvm/pkg/store"
)

// State is the navigation state type. Loading and Error are transient:
// they are never persisted and never restore targets.
type State string

const (
	StateHome            State = "home"
	StateChapterLibrary  State = "chapterLibrary"
	StateChapterDetail   State = "chapterDetail"
	StateReading         State = "reading"
	StateExerciseLibrary State = "exerciseLibrary"
	StateLoading         State = "loading"
	StateExercise        State = "exercise"
	StateSummary         State = "summary"
	StateError           State = "error"
)

const snapshotFile = "session.json"

// Snapshot is the flat persisted form of the session, replaced wholesale
// on every meaningful transition. Answers maps gap identity to the typed
// answer; correctness is recomputed after restore, never stored.
type Snapshot struct {
	State            State             `json:"state"`
	Chapter          int               `json:"chapter,omitempty"`
	PageIndex        int               `json:"pageIndex"`
	ExerciseChapter  int               `json:"exerciseChapter,omitempty"`
	ExerciseSequence int               `json:"exerciseSequence,omitempty"`
	SentenceIndex    int               `json:"sentenceIndex"`
	Checked          bool              `json:"checked"`
	StartedAt        time.Time         `json:"startedAt"`
	Answers          map[string]string `json:"answers,omitempty"`
}

// Engine is the session state machine. It expects to run on a single
// coordinating goroutine; long-running loads are dispatched outside and
// delivered back through CompleteLoad/FailLoad.
type Engine struct {
	store *store.Store
	log   *logger.Logger
	path  string

	state  State
	errMsg string

	chapter   int
	pageIndex int

	exercise      *practice.Exercise
	sentenceIndex int
	checked       bool
	startedAt     time.Time
	endedAt       time.Time
}

func NewEngine(st *store.Store, log *logger.Logger) *Engine {
	return &Engine{
		store:     st,
		log:       log,
		path:      filepath.Join(st.Root(), snapshotFile),
		state:     StateHome,
		startedAt: time.Now(),
	}
}

func (e *Engine) State() State                 { return e.state }
func (e *Engine) ErrorMessage() string         { return e.errMsg }
func (e *Engine) Chapter() int                 { return e.chapter }
func (e *Engine) PageIndex() int               { return e.pageIndex }
func (e *Engine) Exercise() *practice.Exercise { return e.exercise }
func (e *Engine) SentenceIndex() int           { return e.sentenceIndex }
func (e *Engine) Checked() bool                { return e.checked }
func (e *Engine) StartedAt() time.Time         { return e.startedAt }
func (e *Engine) EndedAt() time.Time           { return e.endedAt }

// CurrentSentence returns the sentence under practice, or nil outside an
// exercise.
func (e *Engine) CurrentSentence() *practice.Sentence {
	if e.exercise == nil || e.sentenceIndex >= len(e.exercise.Sentences) {
		return nil
	}
	return &e.exercise.Sentences[e.sentenceIndex]
}

// EnterLibrary moves to the chapter library.
func (e *Engine) EnterLibrary() {
	e.state = StateChapterLibrary
	e.persist()
}

// SelectChapter moves to the chapter detail view and resets the page
// position.
func (e *Engine) SelectChapter(number int) {
	e.chapter = number
	e.pageIndex = 0
	e.state = StateChapterDetail
	e.persist()
}

// StartReading opens the selected chapter's pages.
func (e *Engine) StartReading() {
	e.state = StateReading
	e.persist()
}

// SetPage records the current page index.
func (e *Engine) SetPage(index int) {
	if index < 0 {
		index = 0
	}
	e.pageIndex = index
	e.persist()
}

// BrowseExercises opens the exercise library, pre-filtered to the
// selected chapter when one is set.
func (e *Engine) BrowseExercises() {
	e.state = StateExerciseLibrary
	e.persist()
}

// BeginExercise enters the transient loading state. The actual load runs
// as a background unit of work; nothing is persisted until it completes,
// so backing out of loading leaves no half-updated state behind.
func (e *Engine) BeginExercise() {
	e.state = StateLoading
}

// CompleteLoad receives a fully loaded exercise and starts practice.
func (e *Engine) CompleteLoad(ex *practice.Exercise) {
	e.exercise = ex
	e.sentenceIndex = 0
	e.checked = false
	e.startedAt = time.Now()
	e.endedAt = time.Time{}
	e.state = StateExercise
	e.persist()
}

// FailLoad enters the transient error state.
func (e *Engine) FailLoad(msg string) {
	e.errMsg = msg
	e.state = StateError
}

// LoadExercise is the background unit of work behind BeginExercise: it
// loads the stored exercise and converts it to the practice shape.
func (e *Engine) LoadExercise(chapter, sequence int) (*practice.Exercise, error) {
	stored, err := e.store.LoadExercise(chapter, sequence)
	if err != nil {
		return nil, err
	}
	return practice.FromStored(stored), nil
}

// AnswerGap records a typed answer on a gap by identity.
func (e *Engine) AnswerGap(gapID, answer string) {
	if e.exercise == nil {
		return
	}
	if e.exercise.SetAnswer(gapID, answer) {
		e.persist()
	}
}

// CheckSentence marks the current sentence as checked.
func (e *Engine) CheckSentence() {
	e.checked = true
	e.persist()
}

// NextSentence advances practice; advancing past the last sentence ends
// the exercise and stamps the end time.
func (e *Engine) NextSentence() {
	if e.exercise == nil {
		return
	}
	if e.sentenceIndex+1 < len(e.exercise.Sentences) {
		e.sentenceIndex++
		e.checked = false
	} else {
		e.endedAt = time.Now()
		e.state = StateSummary
	}
	e.persist()
}

// Score aggregates the current exercise.
func (e *Engine) Score() practice.Score {
	if e.exercise == nil {
		return practice.Score{}
	}
	return practice.ScoreOf(e.exercise)
}

// GoHome resets the session and clears the persisted snapshot.
func (e *Engine) GoHome() {
	e.state = StateHome
	e.errMsg = ""
	e.chapter = 0
	e.pageIndex = 0
	e.exercise = nil
	e.sentenceIndex = 0
	e.checked = false
	e.endedAt = time.Time{}
	if err := os.Remove(e.path); err != nil && !os.IsNotExist(err) {
		e.log.Warnw("failed to clear session snapshot", "error", err)
	}
}

// backTargets is the fixed per-state back navigation.
var backTargets = map[State]State{
	StateChapterLibrary:  StateHome,
	StateChapterDetail:   StateChapterLibrary,
	StateReading:         StateChapterDetail,
	StateExerciseLibrary: StateChapterDetail,
	StateLoading:         StateExerciseLibrary,
	StateError:           StateExerciseLibrary,
	StateExercise:        StateExerciseLibrary,
	StateSummary:         StateExerciseLibrary,
}

// Back navigates to the fixed back target of the current state.
func (e *Engine) Back() {
	target, ok := backTargets[e.state]
	if !ok {
		return
	}
	if e.state == StateExercise || e.state == StateSummary {
		e.exercise = nil
		e.sentenceIndex = 0
		e.checked = false
	}
	e.errMsg = ""
	e.state = target
	e.persist()
}

// persist writes the full snapshot. Transient states are never written;
// the previous snapshot stays in place until the next durable transition.
func (e *Engine) persist() {
	if e.state == StateLoading || e.state == StateError {
		return
	}
	snap := Snapshot{
		State:         e.state,
		Chapter:       e.chapter,
		PageIndex:     e.pageIndex,
		SentenceIndex: e.sentenceIndex,
		Checked:       e.checked,
		StartedAt:     e.startedAt,
	}
	if e.exercise != nil {
		snap.ExerciseChapter = e.exercise.Chapter
		snap.ExerciseSequence = e.exercise.Sequence
		answers := make(map[string]string)
		for _, g := range e.exercise.Gaps() {
			if g.Answer != "" {
				answers[g.ID] = g.Answer
			}
		}
		if len(answers) > 0 {
			snap.Answers = answers
		}
	}
	if err := store.WriteJSONAtomic(e.path, snap); err != nil {
		e.log.Warnw("failed to persist session snapshot", "error", err)
	}
}

// Restore loads the previously saved snapshot and resolves it against the
// store. Any failure - no snapshot, unknown state, deleted chapter or
// exercise - falls back to home; losing position is recoverable, a hard
// failure at launch is not.
func (e *Engine) Restore() State {
	raw, err := os.ReadFile(e.path)
	if err != nil {
		return e.state
	}
	var snap Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		e.log.Warnw("unreadable session snapshot, starting at home", "error", err)
		return e.state
	}
	if !e.resolve(snap) {
		e.GoHome()
	}
	return e.state
}

// resolve applies a snapshot, verifying every content reference through
// the store.
func (e *Engine) resolve(snap Snapshot) bool {
	switch snap.State {
	case StateHome, StateChapterLibrary:
		e.state = snap.State
		return true
	case StateChapterDetail, StateReading, StateExerciseLibrary:
		if snap.Chapter != 0 {
			if _, err := e.store.LoadChapter(snap.Chapter); err != nil {
				e.log.Warnw("saved session references missing chapter", "chapter", snap.Chapter, "error", err)
				return false
			}
		} else if snap.State != StateExerciseLibrary {
			return false
		}
		e.chapter = snap.Chapter
		e.pageIndex = snap.PageIndex
		e.state = snap.State
		return true
	case StateExercise, StateSummary:
		ex, err := e.LoadExercise(snap.ExerciseChapter, snap.ExerciseSequence)
		if err != nil {
			e.log.Warnw("saved session references missing exercise",
				"chapter", snap.ExerciseChapter, "sequence", snap.ExerciseSequence, "error", err)
			return false
		}
		for id, answer := range snap.Answers {
			ex.SetAnswer(id, answer)
		}
		if snap.SentenceIndex < 0 || snap.SentenceIndex >= len(ex.Sentences) {
			return false
		}
		e.chapter = snap.Chapter
		e.pageIndex = snap.PageIndex
		e.exercise = ex
		e.sentenceIndex = snap.SentenceIndex
		e.checked = snap.Checked
		e.startedAt = snap.StartedAt
		e.state = snap.State
		return true
	default:
		// Transient or unknown states never restore.
		return false
	}
}
