package cmd

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/chriserin/pegast/internal/db"
	"github.com/chriserin/pegast/internal/ui"
)

var (
	historyOutcomeFlag  string
	historyLanguageFlag string
	historyLimitFlag    int
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded parse runs, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunHistory(cmd.OutOrStdout(), db.Filter{
			Outcome:  historyOutcomeFlag,
			Language: historyLanguageFlag,
			Limit:    historyLimitFlag,
		})
	},
}

func init() {
	historyCmd.Flags().StringVar(&historyOutcomeFlag, "outcome", "", "Filter by outcome (ok, parse_error, build_error)")
	historyCmd.Flags().StringVar(&historyLanguageFlag, "language", "", "Filter by language (json, json-pointer)")
	historyCmd.Flags().IntVarP(&historyLimitFlag, "limit", "n", 20, "Maximum number of runs to list, 0 for all")
	rootCmd.AddCommand(historyCmd)
}

func RunHistory(w io.Writer, filter db.Filter) error {
	e, err := loadEnv()
	if err != nil {
		return err
	}
	sqlDB, err := e.openHistory()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	runs, err := db.ListRuns(sqlDB, filter)
	if err != nil {
		return err
	}
	ui.HistoryTable(w, runs)
	return nil
}
