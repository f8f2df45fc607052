package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/chriserin/pegast/internal/ast"
	"github.com/chriserin/pegast/internal/db"
	"github.com/chriserin/pegast/internal/eval"
	"github.com/chriserin/pegast/internal/jsonptr"
	"github.com/chriserin/pegast/internal/ui"
)

var pointerFormatFlag string

var pointerCmd = &cobra.Command{
	Use:   "pointer PTR",
	Short: "Parse a JSON Pointer and print its reference tokens",
	Long:  "Parse a JSON Pointer (RFC 6901). A leading # selects the URI fragment form.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunPointer(cmd.OutOrStdout(), args[0], pointerFormatFlag)
	},
}

func init() {
	pointerCmd.Flags().StringVar(&pointerFormatFlag, "format", "", "Output format: tree, json or yaml")
	rootCmd.AddCommand(pointerCmd)
}

func RunPointer(w io.Writer, ptr, format string) error {
	e, err := loadEnv()
	if err != nil {
		return err
	}
	if format, err = e.format(format); err != nil {
		return err
	}

	root, err := e.parsePointer(ptr)
	if err != nil {
		return err
	}
	defer jsonptr.Free(root)

	if format == "tree" {
		ui.PointerTree(w, root)
		return nil
	}

	tokens, err := jsonptr.Tokens(root)
	if err != nil {
		return err
	}
	var out []byte
	if format == "json" {
		out, err = json.Marshal(tokens)
		out = append(out, '\n')
	} else {
		out, err = yaml.Marshal(tokens)
	}
	if err != nil {
		return err
	}
	_, err = w.Write(out)
	return err
}

// parsePointer runs the pointer pipeline on ptr, or on its fragment form
// when it starts with #, and records the run.
func (e *env) parsePointer(ptr string) (jsonptr.Node, error) {
	tr := ast.NewTracker()
	p := e.pointerParser(tr)

	var res *eval.Result[jsonptr.Node]
	if strings.HasPrefix(ptr, "#") {
		var err error
		if res, err = p.ParseFragment(ptr); err != nil {
			return nil, err
		}
	} else {
		res = p.Parse(ptr)
	}

	run := db.Run{
		Language: "json-pointer",
		Source:   "arg",
		Input:    ptr,
		Outcome:  string(res.Outcome()),
		Elapsed:  res.Elapsed,
	}
	if !res.OK() {
		res.Cleanup()
		run.Message = res.Err().Error()
		e.record(run)
		return nil, fmt.Errorf("pointer %q: %w", ptr, res.Err())
	}
	run.Nodes = tr.Live()
	e.record(run)
	return res.Root, nil
}
