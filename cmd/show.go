package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/chriserin/pegast/internal/db"
	"github.com/chriserin/pegast/internal/eval"
	"github.com/chriserin/pegast/internal/jsonast"
	"github.com/chriserin/pegast/internal/jsonptr"
	"github.com/chriserin/pegast/internal/ui"
)

var showCmd = &cobra.Command{
	Use:   "show <run-id>",
	Short: "Show a recorded run by id or id prefix",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunShow(cmd.OutOrStdout(), args[0])
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func RunShow(w io.Writer, id string) error {
	e, err := loadEnv()
	if err != nil {
		return err
	}
	sqlDB, err := e.openHistory()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	run, err := db.FindRun(sqlDB, id)
	if err != nil {
		return err
	}

	ui.ShowHeader(w, run)
	fmt.Fprintln(w)

	if run.Outcome != "ok" {
		fmt.Fprintln(w, strings.TrimRight(run.Input, "\n"))
		return nil
	}

	// Re-parse without an observer so showing a run does not count as one.
	switch run.Language {
	case "json":
		res := jsonast.NewParser().WithLogger(e.logger).Parse(run.Input)
		if !res.OK() {
			res.Cleanup()
			return fmt.Errorf("re-parsing run %s: %w", run.ShortID(), res.Err())
		}
		defer jsonast.Free(res.Root)
		ui.JSONTree(w, res.Root)
	case "json-pointer":
		p := jsonptr.NewParser().WithLogger(e.logger)
		var res *eval.Result[jsonptr.Node]
		if strings.HasPrefix(run.Input, "#") {
			if res, err = p.ParseFragment(run.Input); err != nil {
				return err
			}
		} else {
			res = p.Parse(run.Input)
		}
		if !res.OK() {
			res.Cleanup()
			return fmt.Errorf("re-parsing run %s: %w", run.ShortID(), res.Err())
		}
		defer jsonptr.Free(res.Root)
		ui.PointerTree(w, res.Root)
	default:
		return fmt.Errorf("run %s: unknown language %q", run.ShortID(), run.Language)
	}
	return nil
}
