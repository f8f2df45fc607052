package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/chriserin/pegast/internal/config"
	"github.com/chriserin/pegast/internal/db"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize pegast history in the current directory",
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunInit(cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func RunInit(w io.Writer) error {
	dir := config.DefaultDir
	_, err := os.Stat(dir)
	dirExists := err == nil
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating %s directory: %w", dir, err)
	}
	if dirExists {
		fmt.Fprintf(w, "%s/ already exists\n", dir)
	} else {
		fmt.Fprintf(w, "%s/ created\n", dir)
	}

	// config
	if _, err := os.Stat(config.DefaultPath); err == nil {
		fmt.Fprintf(w, "%s already exists\n", config.DefaultPath)
	} else {
		if err := config.Write(config.DefaultPath, config.Default()); err != nil {
			return err
		}
		fmt.Fprintf(w, "%s created\n", config.DefaultPath)
	}

	// database
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	history := cfg.History.Path
	if err := os.MkdirAll(filepath.Dir(history), 0o755); err != nil {
		return fmt.Errorf("creating directory for %s: %w", history, err)
	}
	_, err = os.Stat(history)
	dbExists := err == nil
	sqlDB, err := db.Open(history)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	sqlDB.Close()
	if dbExists {
		fmt.Fprintf(w, "%s already exists\n", history)
	} else {
		fmt.Fprintf(w, "%s created\n", history)
	}

	msgs, err := ensureGitignore(filepath.ToSlash(filepath.Clean(history)) + "*")
	if err != nil {
		return fmt.Errorf("updating .gitignore: %w", err)
	}
	for _, msg := range msgs {
		fmt.Fprintln(w, msg)
	}

	return nil
}

func ensureGitignore(entry string) ([]string, error) {
	data, err := os.ReadFile(".gitignore")
	if os.IsNotExist(err) {
		if err := os.WriteFile(".gitignore", []byte(entry+"\n"), 0o644); err != nil {
			return nil, err
		}
		return []string{".gitignore created", entry + " added to .gitignore"}, nil
	}
	if err != nil {
		return nil, err
	}

	for line := range strings.SplitSeq(string(data), "\n") {
		if strings.TrimSpace(line) == entry {
			return []string{entry + " already in .gitignore"}, nil
		}
	}

	content := string(data)
	if len(content) > 0 && !strings.HasSuffix(content, "\n") {
		content += "\n"
	}
	content += entry + "\n"

	if err := os.WriteFile(".gitignore", []byte(content), 0o644); err != nil {
		return nil, err
	}
	return []string{entry + " added to .gitignore"}, nil
}
