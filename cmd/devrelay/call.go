package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/Cyclone1070/devrelay/internal/render"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func newCallCmd(a *app) *cobra.Command {
	var pretty bool

	cmd := &cobra.Command{
		Use:   "call <action> [key=value ...]",
		Short: "Run one action and print its result",
		Example: `  devrelay call scan-sources dir=src
  devrelay call scaffold-test class_name=Calc method_name=add dir=sample-maven
  devrelay call vcs-commit message="Add tests" --pretty`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			callArgs, err := parseKeyValues(args[1:])
			if err != nil {
				return err
			}

			d, err := a.dispatcher()
			if err != nil {
				return err
			}
			result, err := d.Dispatch(cmd.Context(), args[0], callArgs)
			if err != nil {
				return err
			}

			if !pretty {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(result)
			}

			renderer, err := render.NewMarkdownRenderer(terminalWidth())
			if err != nil {
				return err
			}
			out, err := render.Result(args[0], result, renderer)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	}

	cmd.Flags().BoolVar(&pretty, "pretty", false, "render the result for a terminal")
	return cmd
}

// parseKeyValues turns key=value arguments into an argument map. Values are
// kept as strings; the action decodes them into its own types.
func parseKeyValues(pairs []string) (map[string]any, error) {
	out := make(map[string]any, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid argument %q: expected key=value", pair)
		}
		if _, dup := out[key]; dup {
			return nil, fmt.Errorf("argument %q given more than once", key)
		}
		out[key] = value
	}
	return out, nil
}

func terminalWidth() int {
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	return 100
}
