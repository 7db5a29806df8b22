package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

var deleteYes bool

var deleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Remove chapters or exercises from the library",
}

var deleteChapterCmd = &cobra.Command{
	Use:   "chapter <number>",
	Short: "Remove a chapter, its assets, and its exercises",
	Args:  cobra.ExactArgs(1),
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

		ch, err := st.LoadChapter(chapter)
		if err != nil {
			cobra.CheckErr(err)
		}

		if !deleteYes && !confirm(fmt.Sprintf("Delete chapter %d (%s) and all its exercises?", ch.Number, ch.Title)) {
			fmt.Println("Cancelled.")
			return
		}

		if err := st.DeleteChapter(chapter); err != nil {
			cobra.CheckErr(err)
		}
		fmt.Printf("Deleted chapter %d\n", chapter)
	},
}

var deleteExerciseCmd = &cobra.Command{
	Use:   "exercise <chapter> <sequence>",
	Short: "Remove a single exercise",
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
		sequence, err := strconv.Atoi(args[1])
		if err != nil || sequence <= 0 {
			cobra.CheckErr(fmt.Errorf("invalid sequence number %q", args[1]))
		}

		if _, err := st.LoadExercise(chapter, sequence); err != nil {
			cobra.CheckErr(err)
		}

		if !deleteYes && !confirm(fmt.Sprintf("Delete exercise %d of chapter %d?", sequence, chapter)) {
			fmt.Println("Cancelled.")
			return
		}

		if err := st.DeleteExercise(chapter, sequence); err != nil {
			cobra.CheckErr(err)
		}
		fmt.Printf("Deleted exercise %d of chapter %d\n", sequence, chapter)
	},
}

func confirm(prompt string) bool {
	fmt.Printf("%s [y/N] ", prompt)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}

func init() {
	deleteCmd.PersistentFlags().BoolVarP(&deleteYes, "yes", "y", false, "skip the confirmation prompt")
	deleteCmd.AddCommand(deleteChapterCmd)
	deleteCmd.AddCommand(deleteExerciseCmd)
}
