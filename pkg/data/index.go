package data

// ChapterRef is a denormalized library-index entry for one chapter. Path
// is relative to the store root. Every ref must resolve to a readable
// content file; orphaned files without a ref are invisible to listings.
type ChapterRef struct {
	ID        string `json:"id"`
	Number    int    `json:"number"`
	Title     string `json:"title"`
	Path      string `json:"path"`
	PageCount int    `json:"pageCount"`
}

// ExerciseRef is a denormalized library-index entry for one exercise.
type ExerciseRef struct {
	Chapter       int    `json:"chapter"`
	Sequence      int    `json:"sequence"`
	Type          string `json:"type"`
	Path          string `json:"path"`
	SentenceCount int    `json:"sentenceCount"`
}
