package cli

import (
	"github.com/spf13/cobra"

	"traynote/internal/tray"
)

func newTrayCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tray",
		Short: "Run the menu-bar app with the global capture hotkey",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return tray.New(a.store, a.svc).Run(cmd.Context())
		},
	}
}
