package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/tavoli/pensvm/pkg/app"
	"github.com/tavoli/pensvm/pkg/config"
	"github.com/tavoli/pensvm/pkg/logger"
	"github.com/tavoli/pensvm/pkg/session"
	"github.com/tavoli/pensvm/pkg/store"
)

var rootCmd = &cobra.Command{
	Use:   "pensvm",
	Short: "An interactive Latin reader and exercise practice tool",
	Long:  "Read annotated Latin chapters and practice inflectional endings, with your position saved across restarts",
	Run: func(cmd *cobra.Command, args []string) {
		// Launch TUI by default
		cfg, log, st, err := initDeps()
		if err != nil {
			cobra.CheckErr(err)
		}
		defer log.Close()
		_ = cfg

		engine := session.NewEngine(st, log)
		a := app.New(st, engine, log)
		if err := a.Run(); err != nil {
			cobra.CheckErr(err)
		}
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(vocabCmd)
	rootCmd.AddCommand(deleteCmd)
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// initDeps wires configuration, logging, and the content store for every
// command.
func initDeps() (*config.Config, *logger.Logger, *store.Store, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, err
	}
	log, err := logger.New(cfg.LogMode)
	if err != nil {
		return nil, nil, nil, err
	}
	st, err := store.New(cfg.ContentDir, log)
	if err != nil {
		return nil, nil, nil, err
	}
	return cfg, log, st, nil
}

func truncateString(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-1] + "…"
}
