package cmd

import (
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/chriserin/pegast/internal/ast"
	"github.com/chriserin/pegast/internal/config"
	"github.com/chriserin/pegast/internal/db"
	"github.com/chriserin/pegast/internal/jsonast"
	"github.com/chriserin/pegast/internal/jsonptr"
	"github.com/chriserin/pegast/internal/logging"
	"github.com/chriserin/pegast/internal/metrics"
)

var errNotInitialized = errors.New("run `pegast init` first")

// recorder collects metrics for every run in this process.
var recorder = metrics.New()

type env struct {
	cfg    *config.Config
	logger *slog.Logger
}

func loadEnv() (*env, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	logger, err := logging.New(logging.Config{Level: cfg.Log.Level, Format: cfg.Log.Format, Writer: os.Stderr})
	if err != nil {
		return nil, err
	}
	return &env{cfg: cfg, logger: logger}, nil
}

func (e *env) jsonParser(tr *ast.Tracker) *jsonast.Parser {
	return jsonast.NewParser().WithLogger(e.logger).WithObserver(recorder).WithTracker(tr)
}

func (e *env) pointerParser(tr *ast.Tracker) *jsonptr.Parser {
	return jsonptr.NewParser().WithLogger(e.logger).WithObserver(recorder).WithTracker(tr)
}

func (e *env) format(flag string) (string, error) {
	if flag == "" {
		flag = e.cfg.Output.Format
	}
	return flag, config.ValidateFormat(flag)
}

// initialized reports whether `pegast init` has created the history database.
func (e *env) initialized() bool {
	info, err := os.Stat(e.cfg.History.Path)
	return err == nil && info.Mode().IsRegular()
}

func (e *env) openHistory() (*sql.DB, error) {
	if !e.initialized() {
		return nil, errNotInitialized
	}
	conn, err := db.Open(e.cfg.History.Path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	return conn, nil
}

// record stores run when history is enabled and the project is initialized.
// Failures are logged and do not fail the command.
func (e *env) record(run db.Run) string {
	if !e.cfg.History.On() || !e.initialized() {
		return ""
	}
	conn, err := db.Open(e.cfg.History.Path)
	if err != nil {
		e.logger.Warn("opening history", "path", e.cfg.History.Path, "error", err)
		return ""
	}
	defer conn.Close()

	id, err := db.InsertRun(conn, run)
	if err != nil {
		e.logger.Warn("recording run", "language", run.Language, "error", err)
		return ""
	}
	e.logger.Debug("recorded run", "id", id, "language", run.Language, "outcome", run.Outcome)
	return id
}

// readInput returns the text to parse and a label for where it came from.
func readInput(args []string, file string, stdin io.Reader) (string, string, error) {
	switch {
	case file != "":
		data, err := os.ReadFile(file)
		if err != nil {
			return "", "", fmt.Errorf("reading %s: %w", file, err)
		}
		return string(data), file, nil
	case len(args) > 0:
		return args[0], "arg", nil
	}
	data, err := io.ReadAll(stdin)
	if err != nil {
		return "", "", fmt.Errorf("reading stdin: %w", err)
	}
	return string(data), "-", nil
}
