package session

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tavoli/pensvm/pkg/data"
	"github.com/tavoli/pensvm/pkg/logger"
	"github.com/tavoli/pensvm/pkg/practice"
	"github.com/tavoli/pensvm/pkg/store"
)

// seedContent populates a store with one chapter and one two-sentence
// exercise.
func seedContent(t *testing.T, st *store.Store) {
	t.Helper()
	require.NoError(t, st.SaveChapter(&data.Chapter{
		ID:     "ch-id",
		Number: 3,
		Title:  "Puer Improbus",
		Pages: []data.Page{
			{Blocks: []data.ContentBlock{{Kind: data.BlockText, Text: "Mārcus puer improbus est."}}},
			{Blocks: []data.ContentBlock{{Kind: data.BlockText, Text: "Iūlia plōrat."}}},
		},
		ImportedAt: time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC),
	}))
	require.NoError(t, st.SaveExercise(&data.StoredExercise{
		Chapter:  3,
		Sequence: 1,
		Type:     "endings",
		Sentences: []data.StoredSentence{
			{Parts: []data.StoredPart{
				{Kind: data.PartText, Text: "Mārcus Iūli"},
				{Kind: data.PartGap, Gap: &data.StoredGap{ID: "g1", Stem: "Iūli", Ending: "am"}},
				{Kind: data.PartText, Text: " pulsat."},
			}},
			{Parts: []data.StoredPart{
				{Kind: data.PartText, Text: "Iūli"},
				{Kind: data.PartGap, Gap: &data.StoredGap{ID: "g2", Stem: "Iūli", Ending: "a"}},
				{Kind: data.PartText, Text: " plōrat."},
			}},
		},
		ImportedAt: time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC),
	}))
}

func newTestEngine(t *testing.T) (*Engine, *store.Store) {
	t.Helper()
	st, err := store.New(t.TempDir(), logger.Nop())
	require.NoError(t, err)
	seedContent(t, st)
	return NewEngine(st, logger.Nop()), st
}

func TestNavigationTransitions(t *testing.T) {
	e, _ := newTestEngine(t)

	assert.Equal(t, StateHome, e.State())

	e.EnterLibrary()
	assert.Equal(t, StateChapterLibrary, e.State())

	e.SelectChapter(3)
	assert.Equal(t, StateChapterDetail, e.State())
	assert.Equal(t, 3, e.Chapter())
	assert.Equal(t, 0, e.PageIndex())

	e.StartReading()
	assert.Equal(t, StateReading, e.State())
	e.SetPage(1)
	assert.Equal(t, 1, e.PageIndex())
	e.SetPage(-5)
	assert.Equal(t, 0, e.PageIndex())

	e.BrowseExercises()
	assert.Equal(t, StateExerciseLibrary, e.State())
}

func TestExerciseLifecycle(t *testing.T) {
	e, _ := newTestEngine(t)
	e.SelectChapter(3)
	e.BrowseExercises()

	e.BeginExercise()
	assert.Equal(t, StateLoading, e.State())

	ex, err := e.LoadExercise(3, 1)
	require.NoError(t, err)
	e.CompleteLoad(ex)
	assert.Equal(t, StateExercise, e.State())
	assert.Equal(t, 0, e.SentenceIndex())
	require.NotNil(t, e.CurrentSentence())

	e.AnswerGap("g1", "am")
	e.CheckSentence()
	assert.True(t, e.Checked())

	e.NextSentence()
	assert.Equal(t, StateExercise, e.State())
	assert.Equal(t, 1, e.SentenceIndex())
	assert.False(t, e.Checked())

	e.AnswerGap("g2", "ā")
	e.NextSentence()
	assert.Equal(t, StateSummary, e.State())
	assert.False(t, e.EndedAt().IsZero())

	score := e.Score()
	assert.Equal(t, 2, score.Total)
	assert.Equal(t, 2, score.Correct, "macron answer folds to the plain ending")
	assert.Equal(t, 100, score.Percent)
}

func TestFailLoad(t *testing.T) {
	e, _ := newTestEngine(t)
	e.SelectChapter(3)
	e.BrowseExercises()
	e.BeginExercise()

	_, err := e.LoadExercise(3, 99)
	require.Error(t, err)
	e.FailLoad(err.Error())
	assert.Equal(t, StateError, e.State())
	assert.NotEmpty(t, e.ErrorMessage())

	e.Back()
	assert.Equal(t, StateExerciseLibrary, e.State())
	assert.Empty(t, e.ErrorMessage())
}

func TestBackNavigation(t *testing.T) {
	e, _ := newTestEngine(t)
	e.EnterLibrary()
	e.SelectChapter(3)
	e.StartReading()

	e.Back()
	assert.Equal(t, StateChapterDetail, e.State())
	e.Back()
	assert.Equal(t, StateChapterLibrary, e.State())
	e.Back()
	assert.Equal(t, StateHome, e.State())
	e.Back()
	assert.Equal(t, StateHome, e.State(), "home has no back target")
}

func TestBackFromExerciseDropsProgress(t *testing.T) {
	e, _ := newTestEngine(t)
	e.SelectChapter(3)
	e.BrowseExercises()
	ex, err := e.LoadExercise(3, 1)
	require.NoError(t, err)
	e.CompleteLoad(ex)
	e.AnswerGap("g1", "am")

	e.Back()
	assert.Equal(t, StateExerciseLibrary, e.State())
	assert.Nil(t, e.Exercise())
	assert.Equal(t, 0, e.SentenceIndex())
}

func TestRestoreMidExercise(t *testing.T) {
	st, err := store.New(t.TempDir(), logger.Nop())
	require.NoError(t, err)
	seedContent(t, st)

	first := NewEngine(st, logger.Nop())
	first.SelectChapter(3)
	first.BrowseExercises()
	ex, err := first.LoadExercise(3, 1)
	require.NoError(t, err)
	first.CompleteLoad(ex)
	first.AnswerGap("g1", "am")
	first.CheckSentence()
	first.NextSentence()
	first.AnswerGap("g2", "um")

	// Relaunch against the same store.
	second := NewEngine(st, logger.Nop())
	require.Equal(t, StateExercise, second.Restore())

	assert.Equal(t, 3, second.Chapter())
	assert.Equal(t, 1, second.SentenceIndex())
	assert.False(t, second.Checked())
	require.NotNil(t, second.Exercise())
	gaps := second.Exercise().Gaps()
	require.Len(t, gaps, 2)
	assert.Equal(t, "am", gaps[0].Answer)
	assert.Equal(t, "um", gaps[1].Answer)
	assert.Equal(t, practice.Correct, gaps[0].Result())
	assert.Equal(t, practice.Incorrect, gaps[1].Result())
}

func TestRestoreReadingPosition(t *testing.T) {
	st, err := store.New(t.TempDir(), logger.Nop())
	require.NoError(t, err)
	seedContent(t, st)

	first := NewEngine(st, logger.Nop())
	first.SelectChapter(3)
	first.StartReading()
	first.SetPage(1)

	second := NewEngine(st, logger.Nop())
	require.Equal(t, StateReading, second.Restore())
	assert.Equal(t, 3, second.Chapter())
	assert.Equal(t, 1, second.PageIndex())
}

func TestRestoreNoSnapshot(t *testing.T) {
	e, _ := newTestEngine(t)
	assert.Equal(t, StateHome, e.Restore())
}

func TestRestoreFallsBackWhenContentDeleted(t *testing.T) {
	st, err := store.New(t.TempDir(), logger.Nop())
	require.NoError(t, err)
	seedContent(t, st)

	first := NewEngine(st, logger.Nop())
	first.SelectChapter(3)
	first.StartReading()

	require.NoError(t, st.DeleteChapter(3))

	second := NewEngine(st, logger.Nop())
	assert.Equal(t, StateHome, second.Restore())

	_, err = os.Stat(filepath.Join(st.Root(), "session.json"))
	assert.True(t, os.IsNotExist(err), "failed restore clears the snapshot")
}

func TestRestoreCorruptSnapshot(t *testing.T) {
	st, err := store.New(t.TempDir(), logger.Nop())
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(st.Root(), "session.json"), []byte("{broken"), 0644))

	e := NewEngine(st, logger.Nop())
	assert.Equal(t, StateHome, e.Restore())
}

func TestGoHomeClearsSnapshot(t *testing.T) {
	e, st := newTestEngine(t)
	e.SelectChapter(3)

	path := filepath.Join(st.Root(), "session.json")
	_, err := os.Stat(path)
	require.NoError(t, err)

	e.GoHome()
	assert.Equal(t, StateHome, e.State())
	assert.Equal(t, 0, e.Chapter())
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestTransientStatesNotPersisted(t *testing.T) {
	e, st := newTestEngine(t)
	e.SelectChapter(3)
	e.BrowseExercises()
	e.BeginExercise()
	e.FailLoad("boom")

	// The snapshot still holds the last durable state.
	second := NewEngine(st, logger.Nop())
	assert.Equal(t, StateExerciseLibrary, second.Restore())
}
