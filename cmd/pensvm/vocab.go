package cmd

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/tavoli/pensvm/pkg/annotation"
	"github.com/tavoli/pensvm/pkg/vocab"
)

var vocabLimit int

var vocabCmd = &cobra.Command{
	Use:   "vocab",
	Short: "Report vocabulary across the library",
	Long:  "Aggregate annotated words from every chapter into a frequency report, most common lemmas first",
	Run: func(cmd *cobra.Command, args []string) {
		_, log, st, err := initDeps()
		if err != nil {
			cobra.CheckErr(err)
		}
		defer log.Close()

		chapters, err := st.LoadAllChapters()
		if err != nil {
			cobra.CheckErr(err)
		}
		if len(chapters) == 0 {
			fmt.Println("No chapters in library.")
			return
		}

		report, err := vocab.Build(chapters)
		if err != nil {
			cobra.CheckErr(err)
		}

		entries := report.Entries
		if vocabLimit > 0 && len(entries) > vocabLimit {
			entries = entries[:vocabLimit]
		}

		columns := []table.Column{
			{Title: "Lemma", Width: 24},
			{Title: "Type", Width: 14},
			{Title: "Uses", Width: 6},
			{Title: "Chapters", Width: 9},
			{Title: "", Width: 10},
		}

		rows := []table.Row{}
		for _, e := range entries {
			note := ""
			if e.Polysemous {
				note = "polysemous"
			}
			rows = append(rows, table.Row{
				truncateString(e.Lemma, 22),
				annotation.ExpandPOS(e.POS),
				fmt.Sprintf("%d", e.Count),
				fmt.Sprintf("%d", e.Chapters),
				note,
			})
		}

		t := table.New(
			table.WithColumns(columns),
			table.WithRows(rows),
			table.WithFocused(false),
			table.WithHeight(len(rows)),
		)

		s := table.DefaultStyles()
		s.Header = s.Header.
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("240")).
			BorderBottom(true).
			Bold(true)
		s.Selected = s.Selected.
			Foreground(lipgloss.NoColor{}).
			Background(lipgloss.NoColor{}).
			Bold(false)
		t.SetStyles(s)

		fmt.Printf("\nVocabulary: %d words, %d distinct lemmas\n\n", report.Words, len(report.Entries))
		fmt.Println(t.View())
	},
}

func init() {
	vocabCmd.Flags().IntVarP(&vocabLimit, "limit", "n", 0, "show only the N most frequent lemmas")
}
