package cli

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/spf13/cobra"

	"traynote/internal/capture"
	"traynote/internal/tui/theme"
)

func newShowCmd(a *app) *cobra.Command {
	var count int

	cmd := &cobra.Command{
		Use:   "show",
		Short: "List the latest notes in the current file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := a.store.CurrentFilePath()
			out := cmd.OutOrStdout()

			entries, err := capture.ReadEntries(path)
			if errors.Is(err, fs.ErrNotExist) {
				fmt.Fprintf(out, "No notes yet in %s\n", path)
				return nil
			}
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Fprintf(out, "No notes yet in %s\n", path)
				return nil
			}

			for _, e := range capture.Last(entries, count) {
				fmt.Fprintf(out, "%s  %s\n", theme.Muted.Render(e.Time.Format(capture.TimestampLayout)), e.Text)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&count, "count", "n", 10, "Number of notes to show (0 for all)")
	return cmd
}
