package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"traynote/internal/notes"
	"traynote/internal/tui"
)

func newFilesCmd(a *app) *cobra.Command {
	var list bool
	var pattern string

	cmd := &cobra.Command{
		Use:         "files",
		Short:       "Pick a captured file and open it",
		Long:        `Fuzzy-find the Markdown files next to the current note file. Use --list to print them instead.`,
		Annotations: map[string]string{tuiAnnotation: "true"},
		Args:        cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !list {
				return a.runTUI(cmd, tui.ViewFiles)
			}

			dir := filepath.Dir(a.store.CurrentFilePath())
			files, err := notes.Scan(dir, pattern)
			if err != nil {
				return err
			}
			for _, f := range files {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%d\t%s\n", f.Date.Format("2006-01-02"), f.Entries, f.Path)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&list, "list", "l", false, "Print files instead of opening the picker")
	cmd.Flags().StringVar(&pattern, "glob", notes.DefaultPattern, "Glob for files to include, relative to the notes folder")
	return cmd
}

func newSettingsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:         "settings",
		Short:       "Edit settings in the terminal",
		Annotations: map[string]string{tuiAnnotation: "true"},
		Args:        cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runTUI(cmd, tui.ViewSettings)
		},
	}
}
