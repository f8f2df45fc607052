package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"

	"github.com/spf13/cobra"

	"github.com/chriserin/pegast/internal/jsonast"
	"github.com/chriserin/pegast/internal/ui"
)

var checkCmd = &cobra.Command{
	Use:   "check [GLOB...]",
	Short: "Parse every matching JSON file and report failures",
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunCheck(cmd.OutOrStdout(), args...)
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

// RunCheck parses each file matched by patterns, "*.json" by default.
func RunCheck(w io.Writer, patterns ...string) error {
	e, err := loadEnv()
	if err != nil {
		return err
	}
	if len(patterns) == 0 {
		patterns = []string{"*.json"}
	}

	var paths []string
	for _, pattern := range patterns {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return fmt.Errorf("matching %s: %w", pattern, err)
		}
		paths = append(paths, matches...)
	}
	slices.Sort(paths)
	paths = slices.Compact(paths)

	failed := 0
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		doc, err := e.parseJSON(string(data), path)
		if err != nil {
			ui.ErrLine(w, path, err)
			failed++
			continue
		}
		jsonast.Free(doc)
		ui.OkLine(w, path)
	}

	ui.SummaryLine(w, len(paths), failed)
	if failed > 0 {
		return fmt.Errorf("%d of %d files failed", failed, len(paths))
	}
	return nil
}
