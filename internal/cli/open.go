package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newOpenCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "open",
		Aliases: []string{"o"},
		Short:   "Open the current note file in the default viewer",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := a.store.CurrentFilePath()
			if err := a.open(path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Opened %s\n", path)
			return nil
		},
	}
}

func newPathCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the file the next note will go to",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), a.store.CurrentFilePath())
		},
	}
}
