// Package vocab builds vocabulary reports over the stored library. The
// annotated words of every chapter are loaded into an in-memory DuckDB
// table so the aggregations stay plain SQL.
package vocab

import (
	"database/sql"
	"fmt"

	_ "github.com/marcboeker/go-duckdb/v2"

	"github.com/tavoli/pensvm/pkg/annotation"
	"github.com/tavoli/pensvm/pkg/data"
)

// Entry is one lemma's aggregate across the library.
type Entry struct {
	Lemma      string
	POS        string
	Count      int
	Chapters   int
	Polysemous bool
}

// Report is a lemma-frequency report, most frequent first.
type Report struct {
	Words   int
	Entries []Entry
}

// Build decodes every annotated text block of the given chapters and
// aggregates lemma frequency. Blocks without usable annotations simply
// contribute nothing (decode leniency).
func Build(chapters []*data.Chapter) (*Report, error) {
	db, err := sql.Open("duckdb", "")
	if err != nil {
		return nil, fmt.Errorf("failed to open duckdb: %w", err)
	}
	defer db.Close()

	if _, err := db.Exec(`CREATE TABLE words (
		chapter INTEGER,
		lemma   VARCHAR,
		pos     VARCHAR,
		glosses INTEGER
	)`); err != nil {
		return nil, fmt.Errorf("failed to create words table: %w", err)
	}

	insert, err := db.Prepare(`INSERT INTO words VALUES (?, ?, ?, ?)`)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer insert.Close()

	total := 0
	for _, ch := range chapters {
		for _, page := range ch.Pages {
			for _, block := range page.Blocks {
				if block.Kind != data.BlockText || block.Annotations == "" {
					continue
				}
				for _, w := range annotation.Decode(block.Annotations) {
					if _, err := insert.Exec(ch.Number, w.EffectiveLemma(), w.POS, len(w.Glosses)); err != nil {
						return nil, fmt.Errorf("failed to insert word: %w", err)
					}
					total++
				}
			}
		}
	}

	rows, err := db.Query(`
		SELECT lemma,
		       any_value(pos),
		       count(*),
		       count(DISTINCT chapter),
		       max(glosses) > 1
		FROM words
		GROUP BY lemma
		ORDER BY count(*) DESC, lemma`)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate vocabulary: %w", err)
	}
	defer rows.Close()

	report := &Report{Words: total}
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.Lemma, &e.POS, &e.Count, &e.Chapters, &e.Polysemous); err != nil {
			return nil, fmt.Errorf("failed to scan vocabulary row: %w", err)
		}
		report.Entries = append(report.Entries, e)
	}
	return report, rows.Err()
}
