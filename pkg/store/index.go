package store

import (
	"fmt"
	"os"
	"sort"

	"github.com/tavoli/pensvm/pkg/data"
)

const (
	chapterIndexFile  = "chapters.json"
	exerciseIndexFile = "exercises.json"
)

// readChapterIndex loads the chapters index. A missing index means an
// empty library.
func (s *Store) readChapterIndex() ([]data.ChapterRef, error) {
	var refs []data.ChapterRef
	err := readJSON(s.abs(chapterIndexFile), &refs)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read chapter index: %w", err)
	}
	return refs, nil
}

func (s *Store) writeChapterIndex(refs []data.ChapterRef) error {
	sort.Slice(refs, func(i, j int) bool { return refs[i].Number < refs[j].Number })
	return WriteJSONAtomic(s.abs(chapterIndexFile), refs)
}

// upsertChapterRef replaces any entry with the same chapter number and
// keeps the index sorted by number.
func (s *Store) upsertChapterRef(ref data.ChapterRef) error {
	refs, err := s.readChapterIndex()
	if err != nil {
		return err
	}
	out := refs[:0]
	for _, r := range refs {
		if r.Number != ref.Number {
			out = append(out, r)
		}
	}
	out = append(out, ref)
	return s.writeChapterIndex(out)
}

func (s *Store) removeChapterRef(number int) error {
	refs, err := s.readChapterIndex()
	if err != nil {
		return err
	}
	out := refs[:0]
	for _, r := range refs {
		if r.Number != number {
			out = append(out, r)
		}
	}
	return s.writeChapterIndex(out)
}

func (s *Store) readExerciseIndex() ([]data.ExerciseRef, error) {
	var refs []data.ExerciseRef
	err := readJSON(s.abs(exerciseIndexFile), &refs)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read exercise index: %w", err)
	}
	return refs, nil
}

func (s *Store) writeExerciseIndex(refs []data.ExerciseRef) error {
	sort.Slice(refs, func(i, j int) bool {
		if refs[i].Chapter != refs[j].Chapter {
			return refs[i].Chapter < refs[j].Chapter
		}
		return refs[i].Sequence < refs[j].Sequence
	})
	return WriteJSONAtomic(s.abs(exerciseIndexFile), refs)
}

// upsertExerciseRef replaces any entry with the same (chapter, sequence)
// natural key and keeps the index sorted chapter-then-sequence.
func (s *Store) upsertExerciseRef(ref data.ExerciseRef) error {
	refs, err := s.readExerciseIndex()
	if err != nil {
		return err
	}
	out := refs[:0]
	for _, r := range refs {
		if r.Chapter != ref.Chapter || r.Sequence != ref.Sequence {
			out = append(out, r)
		}
	}
	out = append(out, ref)
	return s.writeExerciseIndex(out)
}

func (s *Store) removeExerciseRef(chapter, sequence int) error {
	refs, err := s.readExerciseIndex()
	if err != nil {
		return err
	}
	out := refs[:0]
	for _, r := range refs {
		if r.Chapter != chapter || r.Sequence != sequence {
			out = append(out, r)
		}
	}
	return s.writeExerciseIndex(out)
}

// removeChapterExerciseRefs drops every exercise entry owned by a
// chapter. Used by the chapter-delete cascade.
func (s *Store) removeChapterExerciseRefs(chapter int) error {
	refs, err := s.readExerciseIndex()
	if err != nil {
		return err
	}
	out := refs[:0]
	for _, r := range refs {
		if r.Chapter != chapter {
			out = append(out, r)
		}
	}
	return s.writeExerciseIndex(out)
}
