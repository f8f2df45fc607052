package cmd

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/chriserin/pegast/internal/db"
	"github.com/chriserin/pegast/internal/ui"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Summarize recorded runs by language and outcome",
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunStats(cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func RunStats(w io.Writer) error {
	e, err := loadEnv()
	if err != nil {
		return err
	}
	sqlDB, err := e.openHistory()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	counts, err := db.CountRuns(sqlDB)
	if err != nil {
		return err
	}
	ui.StatsTable(w, counts)
	return nil
}
