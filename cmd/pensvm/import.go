package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/tavoli/pensvm/pkg/data"
)

var importPages []string

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import chapters and exercises into the library",
}

var importChapterCmd = &cobra.Command{
	Use:   "chapter <file.json>",
	Short: "Import a chapter document",
	Long:  "Read a chapter JSON document and add it to the library. Page scans given with --page are copied into the chapter's assets with their margin strips cropped out.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg, log, st, err := initDeps()
		if err != nil {
			cobra.CheckErr(err)
		}
		defer log.Close()

		raw, err := os.ReadFile(args[0])
		if err != nil {
			cobra.CheckErr(fmt.Errorf("failed to read chapter file: %w", err))
		}

		var ch data.Chapter
		if err := json.Unmarshal(raw, &ch); err != nil {
			cobra.CheckErr(fmt.Errorf("failed to parse chapter file: %w", err))
		}
		if ch.Number <= 0 {
			cobra.CheckErr(fmt.Errorf("chapter file has no chapter number"))
		}
		if ch.ID == "" {
			ch.ID = uuid.NewString()
		}
		if ch.ImportedAt.IsZero() {
			ch.ImportedAt = time.Now()
		}

		for i, file := range importPages {
			img, err := os.ReadFile(file)
			if err != nil {
				cobra.CheckErr(fmt.Errorf("failed to read page scan %s: %w", file, err))
			}
			rel, err := st.SavePageImage(ch.Number, i+1, img)
			if err != nil {
				cobra.CheckErr(err)
			}
			marginRel, err := st.SaveMarginFromPage(ch.Number, i+1, data.SideLeft, img, cfg.MarginRatio)
			if err != nil {
				log.Warnw("failed to crop margin strip", "page", file, "error", err)
			}
			if i < len(ch.Pages) {
				ch.Pages[i].ImagePath = rel
				ch.Pages[i].MarginLeftPath = marginRel
			}
		}

		if err := st.SaveChapter(&ch); err != nil {
			cobra.CheckErr(err)
		}

		fmt.Printf("Imported chapter %d: %s (%d pages)\n", ch.Number, ch.Title, len(ch.Pages))
	},
}

var importExerciseCmd = &cobra.Command{
	Use:   "exercise <chapter> <file.json>",
	Short: "Import an exercise for a chapter",
	Long:  "Read an exercise JSON document and add it to a chapter. The exercise gets the next free sequence number, and gaps without an id get one assigned.",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		_, log, st, err := initDeps()
		if err != nil {
			cobra.CheckErr(err)
		}
		defer log.Close()

		chapter, err := strconv.Atoi(args[0])
		if err != nil || chapter <= 0 {
			cobra.CheckErr(fmt.Errorf("invalid chapter number %q", args[0]))
		}
		if _, err := st.LoadChapter(chapter); err != nil {
			cobra.CheckErr(err)
		}

		raw, err := os.ReadFile(args[1])
		if err != nil {
			cobra.CheckErr(fmt.Errorf("failed to read exercise file: %w", err))
		}

		var ex data.StoredExercise
		if err := json.Unmarshal(raw, &ex); err != nil {
			cobra.CheckErr(fmt.Errorf("failed to parse exercise file: %w", err))
		}
		if len(ex.Sentences) == 0 {
			cobra.CheckErr(fmt.Errorf("exercise file has no sentences"))
		}

		ex.Chapter = chapter
		seq, err := st.NextSequence(chapter)
		if err != nil {
			cobra.CheckErr(err)
		}
		ex.Sequence = seq
		if ex.ImportedAt.IsZero() {
			ex.ImportedAt = time.Now()
		}
		for i := range ex.Sentences {
			for j := range ex.Sentences[i].Parts {
				p := &ex.Sentences[i].Parts[j]
				if p.Kind == data.PartGap && p.Gap != nil && p.Gap.ID == "" {
					p.Gap.ID = uuid.NewString()
				}
			}
		}

		if err := st.SaveExercise(&ex); err != nil {
			cobra.CheckErr(err)
		}

		fmt.Printf("Imported exercise %d for chapter %d (%d sentences)\n", ex.Sequence, chapter, len(ex.Sentences))
	},
}

func init() {
	importChapterCmd.Flags().StringArrayVar(&importPages, "page", nil, "page scan image to attach, in page order (repeatable)")
	importCmd.AddCommand(importChapterCmd)
	importCmd.AddCommand(importExerciseCmd)
}
