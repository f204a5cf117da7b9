package main

import (
	"fmt"

	"github.com/Cyclone1070/devrelay/internal/render"
	"github.com/spf13/cobra"
)

func newActionsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "actions",
		Short: "List the available actions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := a.dispatcher()
			if err != nil {
				return err
			}
			for _, act := range d.Actions() {
				fmt.Fprintln(cmd.OutOrStdout(), render.ActionLine(act.Name(), d.Aliases(act.Name()), act.Description()))
			}
			return nil
		},
	}
}
