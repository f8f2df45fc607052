package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/chriserin/pegast/internal/ast"
	"github.com/chriserin/pegast/internal/db"
	"github.com/chriserin/pegast/internal/jsonast"
	"github.com/chriserin/pegast/internal/ui"
)

var (
	jsonFileFlag   string
	jsonFormatFlag string
)

var jsonCmd = &cobra.Command{
	Use:   "json [TEXT]",
	Short: "Parse a JSON document and print its AST",
	Long:  "Parse a JSON document from TEXT, --file or stdin and print its AST.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		input, source, err := readInput(args, jsonFileFlag, cmd.InOrStdin())
		if err != nil {
			return err
		}
		return RunJSON(cmd.OutOrStdout(), input, source, jsonFormatFlag)
	},
}

func init() {
	jsonCmd.Flags().StringVarP(&jsonFileFlag, "file", "f", "", "Read the document from a file")
	jsonCmd.Flags().StringVar(&jsonFormatFlag, "format", "", "Output format: tree, json or yaml")
	rootCmd.AddCommand(jsonCmd)
}

func RunJSON(w io.Writer, input, source, format string) error {
	e, err := loadEnv()
	if err != nil {
		return err
	}
	if format, err = e.format(format); err != nil {
		return err
	}

	doc, err := e.parseJSON(input, source)
	if err != nil {
		return err
	}
	defer jsonast.Free(doc)

	return writeJSONNode(w, doc, format)
}

// parseJSON runs the JSON pipeline and records the run. The caller owns the
// returned tree.
func (e *env) parseJSON(input, source string) (jsonast.Node, error) {
	tr := ast.NewTracker()
	res := e.jsonParser(tr).Parse(input)
	run := db.Run{
		Language: "json",
		Source:   source,
		Input:    input,
		Outcome:  string(res.Outcome()),
		Elapsed:  res.Elapsed,
	}
	if !res.OK() {
		res.Cleanup()
		run.Message = res.Err().Error()
		e.record(run)
		return nil, fmt.Errorf("%s: %w", source, res.Err())
	}
	run.Nodes = tr.Live()
	e.record(run)
	return res.Root, nil
}

func writeJSONNode(w io.Writer, n jsonast.Node, format string) error {
	var out []byte
	var err error
	switch format {
	case "tree":
		ui.JSONTree(w, n)
		return nil
	case "json":
		out, err = jsonast.MarshalIndent(n, "  ")
		out = append(out, '\n')
	case "yaml":
		out, err = jsonast.MarshalYAML(n)
	}
	if err != nil {
		return err
	}
	_, err = w.Write(out)
	return err
}
