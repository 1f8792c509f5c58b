package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"traynote/internal/capture"
)

func newAddCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "add [text...]",
		Aliases: []string{"a"},
		Short:   "Append a note without opening the panel",
		Long: `Append a note to the current file. With no arguments the note is read
from stdin, so "pbpaste | traynote add" works.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.Join(args, " ")
			if len(args) == 0 {
				data, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("reading stdin: %w", err)
				}
				text = string(data)
			}

			res, err := a.svc.Capture(text)
			if errors.Is(err, capture.ErrEmptyNote) {
				return errors.New("nothing to capture")
			}
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Saved to %s\n", res.Path)
			return nil
		},
	}
}
