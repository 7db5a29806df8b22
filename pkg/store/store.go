// Package store is the durable on-disk content store for chapters and
// exercises. Content lives as one JSON document per entity under a
// chapter-scoped directory tree, with denormalized index files for fast
// listing. The store assumes a single live process with one logical
// writer; there is no cross-process locking.
//
// Layout under the content root:
//
//	chapters.json
//	exercises.json
//	chapters/ch-07/chapter.json
//	chapters/ch-07/assets/page-001.png
//	chapters/ch-07/exercises/ex-03/exercise.json
package store

import (
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"

	"github.com/tavoli/pensvm/pkg/data"
	"github.com/tavoli/pensvm/pkg/logger"
)

var (
	// ErrNotFound means the index has no matching entry. Expected, not
	// exceptional.
	ErrNotFound = errors.New("not found")
	// ErrInconsistent means the index references a file that is missing
	// or unreadable: external tampering or a partial failure. Surfaced
	// to the caller, never silently recovered.
	ErrInconsistent = errors.New("store inconsistent")
)

type Store struct {
	root string
	log  *logger.Logger
}

func New(root string, log *logger.Logger) (*Store, error) {
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, fmt.Errorf("failed to create content root: %w", err)
	}
	return &Store{root: root, log: log}, nil
}

func (s *Store) Root() string { return s.root }

// abs resolves a store-relative path.
func (s *Store) abs(rel string) string {
	return filepath.Join(s.root, filepath.FromSlash(rel))
}

func chapterDir(number int) string {
	return path.Join("chapters", fmt.Sprintf("ch-%02d", number))
}

func chapterFile(number int) string {
	return path.Join(chapterDir(number), "chapter.json")
}

func exerciseDir(chapter, sequence int) string {
	return path.Join(chapterDir(chapter), "exercises", fmt.Sprintf("ex-%02d", sequence))
}

func exerciseFile(chapter, sequence int) string {
	return path.Join(exerciseDir(chapter, sequence), "exercise.json")
}

// SaveChapter writes the chapter document and upserts its index entry.
// The content file is always written before the index so the index never
// points at a file that does not exist yet.
func (s *Store) SaveChapter(ch *data.Chapter) error {
	rel := chapterFile(ch.Number)
	if err := os.MkdirAll(filepath.Dir(s.abs(rel)), 0755); err != nil {
		return fmt.Errorf("failed to create chapter directory: %w", err)
	}
	if err := WriteJSONAtomic(s.abs(rel), ch); err != nil {
		return fmt.Errorf("failed to save chapter %d: %w", ch.Number, err)
	}
	return s.upsertChapterRef(data.ChapterRef{
		ID:        ch.ID,
		Number:    ch.Number,
		Title:     ch.Title,
		Path:      rel,
		PageCount: len(ch.Pages),
	})
}

// LoadChapter resolves a chapter through the index. ErrNotFound when the
// index has no entry; ErrInconsistent when the entry's backing file is
// missing or unreadable.
func (s *Store) LoadChapter(number int) (*data.Chapter, error) {
	refs, err := s.readChapterIndex()
	if err != nil {
		return nil, err
	}
	for _, ref := range refs {
		if ref.Number != number {
			continue
		}
		var ch data.Chapter
		if err := readJSON(s.abs(ref.Path), &ch); err != nil {
			return nil, fmt.Errorf("chapter %d (%s): %w: %v", number, ref.Path, ErrInconsistent, err)
		}
		return &ch, nil
	}
	return nil, fmt.Errorf("chapter %d: %w", number, ErrNotFound)
}

// LoadAllChapters loads every indexed chapter in index order. A single
// unreadable file is logged and skipped rather than aborting the listing.
func (s *Store) LoadAllChapters() ([]*data.Chapter, error) {
	refs, err := s.readChapterIndex()
	if err != nil {
		return nil, err
	}
	chapters := make([]*data.Chapter, 0, len(refs))
	for _, ref := range refs {
		var ch data.Chapter
		if err := readJSON(s.abs(ref.Path), &ch); err != nil {
			s.log.Warnw("skipping unreadable chapter", "number", ref.Number, "path", ref.Path, "error", err)
			continue
		}
		chapters = append(chapters, &ch)
	}
	return chapters, nil
}

// ListChapters returns the index entries without loading content.
func (s *Store) ListChapters() ([]data.ChapterRef, error) {
	return s.readChapterIndex()
}

// DeleteChapter removes the chapter's whole subtree: content file, all
// exercises, all assets. The index entries are dropped even if the
// directory removal partially fails - the index must never point at
// stale data; orphaned files are acceptable debris.
func (s *Store) DeleteChapter(number int) error {
	if err := os.RemoveAll(s.abs(chapterDir(number))); err != nil {
		s.log.Warnw("chapter directory removal failed, dropping index entries anyway",
			"number", number, "error", err)
	}
	if err := s.removeChapterRef(number); err != nil {
		return err
	}
	return s.removeChapterExerciseRefs(number)
}

// SaveExercise writes the exercise document and upserts its index entry,
// content before index.
func (s *Store) SaveExercise(ex *data.StoredExercise) error {
	rel := exerciseFile(ex.Chapter, ex.Sequence)
	if err := os.MkdirAll(filepath.Dir(s.abs(rel)), 0755); err != nil {
		return fmt.Errorf("failed to create exercise directory: %w", err)
	}
	if err := WriteJSONAtomic(s.abs(rel), ex); err != nil {
		return fmt.Errorf("failed to save exercise %d/%d: %w", ex.Chapter, ex.Sequence, err)
	}
	return s.upsertExerciseRef(data.ExerciseRef{
		Chapter:       ex.Chapter,
		Sequence:      ex.Sequence,
		Type:          ex.Type,
		Path:          rel,
		SentenceCount: len(ex.Sentences),
	})
}

// LoadExercise resolves an exercise through the index; same error
// taxonomy as LoadChapter.
func (s *Store) LoadExercise(chapter, sequence int) (*data.StoredExercise, error) {
	refs, err := s.readExerciseIndex()
	if err != nil {
		return nil, err
	}
	for _, ref := range refs {
		if ref.Chapter != chapter || ref.Sequence != sequence {
			continue
		}
		var ex data.StoredExercise
		if err := readJSON(s.abs(ref.Path), &ex); err != nil {
			return nil, fmt.Errorf("exercise %d/%d (%s): %w: %v", chapter, sequence, ref.Path, ErrInconsistent, err)
		}
		return &ex, nil
	}
	return nil, fmt.Errorf("exercise %d/%d: %w", chapter, sequence, ErrNotFound)
}

// LoadAllExercises loads every indexed exercise, skipping unreadable
// files with a warning.
func (s *Store) LoadAllExercises() ([]*data.StoredExercise, error) {
	refs, err := s.readExerciseIndex()
	if err != nil {
		return nil, err
	}
	exercises := make([]*data.StoredExercise, 0, len(refs))
	for _, ref := range refs {
		var ex data.StoredExercise
		if err := readJSON(s.abs(ref.Path), &ex); err != nil {
			s.log.Warnw("skipping unreadable exercise",
				"chapter", ref.Chapter, "sequence", ref.Sequence, "path", ref.Path, "error", err)
			continue
		}
		exercises = append(exercises, &ex)
	}
	return exercises, nil
}

// ListExercises returns index entries for one chapter, or for the whole
// library when chapter <= 0.
func (s *Store) ListExercises(chapter int) ([]data.ExerciseRef, error) {
	refs, err := s.readExerciseIndex()
	if err != nil {
		return nil, err
	}
	if chapter <= 0 {
		return refs, nil
	}
	out := make([]data.ExerciseRef, 0, len(refs))
	for _, r := range refs {
		if r.Chapter == chapter {
			out = append(out, r)
		}
	}
	return out, nil
}

// DeleteExercise removes one exercise directory and its index entry, with
// the same index-over-directory precedence as DeleteChapter.
func (s *Store) DeleteExercise(chapter, sequence int) error {
	if err := os.RemoveAll(s.abs(exerciseDir(chapter, sequence))); err != nil {
		s.log.Warnw("exercise directory removal failed, dropping index entry anyway",
			"chapter", chapter, "sequence", sequence, "error", err)
	}
	return s.removeExerciseRef(chapter, sequence)
}

// NextSequence returns one more than the highest sequence number stored
// for a chapter, or 1 when it has no exercises. Safe without reservation
// only because the store is single-writer.
func (s *Store) NextSequence(chapter int) (int, error) {
	refs, err := s.readExerciseIndex()
	if err != nil {
		return 0, err
	}
	max := 0
	for _, r := range refs {
		if r.Chapter == chapter && r.Sequence > max {
			max = r.Sequence
		}
	}
	return max + 1, nil
}
