package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/tavoli/pensvm/pkg/integrations"
)

var exportOutput string

var exportCmd = &cobra.Command{
	Use:   "export <chapter>",
	Short: "Export a chapter as an EPUB",
	Long:  "Render a chapter's pages, tables, and illustrations into an EPUB file for offline reading",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg, log, st, err := initDeps()
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

		outputDir := cfg.ExportDir
		if exportOutput != "" {
			outputDir = exportOutput
		}

		exporter := integrations.NewChapterExporter(st.Root(), outputDir)
		path, err := exporter.Export(ch)
		if err != nil {
			cobra.CheckErr(err)
		}

		fmt.Printf("Exported chapter %d to %s\n", chapter, path)
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output directory (defaults to the configured export directory)")
}
