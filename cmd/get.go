package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/chriserin/pegast/internal/jsonast"
	"github.com/chriserin/pegast/internal/jsonptr"
)

var (
	getFileFlag   string
	getFormatFlag string
)

var getCmd = &cobra.Command{
	Use:   "get PTR --file FILE",
	Short: "Resolve a JSON Pointer against a JSON document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunGet(cmd.OutOrStdout(), args[0], getFileFlag, getFormatFlag)
	},
}

func init() {
	getCmd.Flags().StringVarP(&getFileFlag, "file", "f", "", "JSON document to resolve against")
	getCmd.Flags().StringVar(&getFormatFlag, "format", "json", "Output format: tree, json or yaml")
	getCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(getCmd)
}

func RunGet(w io.Writer, ptr, file, format string) error {
	e, err := loadEnv()
	if err != nil {
		return err
	}
	if format, err = e.format(format); err != nil {
		return err
	}

	data, err := os.ReadFile(file)
	if err != nil {
		return fmt.Errorf("reading %s: %w", file, err)
	}

	root, err := e.parsePointer(ptr)
	if err != nil {
		return err
	}
	tokens, err := jsonptr.Tokens(root)
	jsonptr.Free(root)
	if err != nil {
		return err
	}

	doc, err := e.parseJSON(string(data), file)
	if err != nil {
		return err
	}
	defer jsonast.Free(doc)

	target, err := jsonptr.Resolve(tokens, doc)
	if err != nil {
		return fmt.Errorf("%s: %w", file, err)
	}
	return writeJSONNode(w, target, format)
}
