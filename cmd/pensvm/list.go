package cmd

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all chapters in your library",
	Long:  "Display the chapter library in a formatted table, without loading full content",
	Run: func(cmd *cobra.Command, args []string) {
		_, log, st, err := initDeps()
		if err != nil {
			cobra.CheckErr(err)
		}
		defer log.Close()

		refs, err := st.ListChapters()
		if err != nil {
			cobra.CheckErr(err)
		}

		if len(refs) == 0 {
			fmt.Println("No chapters in library. Use 'pensvm import chapter' to add one.")
			return
		}

		columns := []table.Column{
			{Title: "Cap.", Width: 6},
			{Title: "Title", Width: 40},
			{Title: "Pages", Width: 8},
			{Title: "Exercises", Width: 10},
		}

		rows := []table.Row{}
		for _, ref := range refs {
			exercises, _ := st.ListExercises(ref.Number)
			rows = append(rows, table.Row{
				fmt.Sprintf("%d", ref.Number),
				truncateString(ref.Title, 38),
				fmt.Sprintf("%d", ref.PageCount),
				fmt.Sprintf("%d", len(exercises)),
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

		fmt.Printf("\nLibrary (%d chapters)\n\n", len(refs))
		fmt.Println(t.View())
	},
}
