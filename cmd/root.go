package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/chriserin/pegast/internal/config"
)

var (
	configPath  string
	metricsPath string
)

var rootCmd = &cobra.Command{
	Use:          "pegast",
	Short:        "pegast: PEG parsing pipeline for JSON and JSON Pointer",
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultPath, "Path to the config file")
	rootCmd.PersistentFlags().StringVar(&metricsPath, "metrics", "", "Write Prometheus metrics to this textfile on exit")
}

func Execute() {
	err := rootCmd.Execute()
	if ferr := flushMetrics(); ferr != nil {
		fmt.Fprintln(os.Stderr, "Error:", ferr)
	}
	if err != nil {
		os.Exit(1)
	}
}

// flushMetrics writes the textfile named by --metrics or metrics.textfile.
func flushMetrics() error {
	path := metricsPath
	if path == "" {
		cfg, err := config.Load(configPath)
		if err != nil {
			return nil
		}
		path = cfg.Metrics.Textfile
	}
	if path == "" {
		return nil
	}
	return recorder.WriteTextfile(path)
}
