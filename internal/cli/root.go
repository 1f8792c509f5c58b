// Package cli wires traynote's commands together with cobra.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"traynote/internal/capture"
	"traynote/internal/config"
	"traynote/internal/logs"
	"traynote/internal/opener"
	"traynote/internal/tui"
)

// tuiAnnotation marks commands that take over the terminal; they never log
// to the console.
const tuiAnnotation = "tui"

// app is the state shared by every command of one invocation.
type app struct {
	flags    config.CLIFlags
	verbose  bool
	keepOpen bool

	store *config.Store
	svc   *capture.Service

	// open and runProgram are swapped out in tests.
	open       func(path string) error
	runProgram func(cmd *cobra.Command, m tea.Model) (tea.Model, error)
}

// NewRootCmd builds the full command tree.
func NewRootCmd() *cobra.Command {
	return newRootCmd(&app{open: opener.Open, runProgram: runProgram})
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "traynote",
		Short: "Quick-capture notes into Markdown",
		Long: `traynote appends timestamped bullets to a Markdown inbox,
either one file or one file per day.

Run without a command to open the capture panel in the terminal, or run
"traynote tray" for the menu-bar app with a global hotkey.`,
		Annotations:       map[string]string{tuiAnnotation: "true"},
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			logs.Close()
		},
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runTUI(cmd, tui.ViewCapture)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.flags.Mode, "mode", "", "Note file mode: single or daily")
	pf.StringVar(&a.flags.SingleFile, "file", "", "Single note file path")
	pf.StringVar(&a.flags.DailyFolder, "folder", "", "Folder for daily note files")
	pf.StringVar(&a.flags.DailyFormat, "format", "", "Daily file name pattern, e.g. yyyy-MM-dd")
	pf.StringVar(&a.flags.ConfigDir, "config-dir", "", "Directory holding settings.yaml and debug.log")
	pf.BoolVarP(&a.verbose, "verbose", "v", false, "Log to stderr as well as debug.log")
	root.Flags().BoolVarP(&a.keepOpen, "keep-open", "k", false, "Keep the capture panel open after saving")

	root.AddCommand(
		newAddCmd(a),
		newOpenCmd(a),
		newPathCmd(a),
		newShowCmd(a),
		newFilesCmd(a),
		newSettingsCmd(a),
		newConfigCmd(a),
		newTrayCmd(a),
	)
	return root
}

// Execute runs the root command and exits non-zero on failure.
// This is called by main.main().
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

// setup loads settings and starts logging before any command runs.
func (a *app) setup(cmd *cobra.Command, args []string) error {
	store, err := config.Load(a.flags)
	if err != nil {
		return err
	}
	a.store = store
	a.svc = capture.NewService(store, nil)

	if err := logs.Initialize(store.Dir()); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: could not initialize logger: %v\n", err)
	}
	if a.verbose && !isTUI(cmd) {
		logs.EnableConsole(zerolog.DebugLevel)
	}

	if err := store.EnsureSettingsFile(); err != nil {
		logs.Logger.Warn().Err(err).Msg("could not create settings file")
	}
	logs.Logger.Debug().Str("command", cmd.Name()).Str("file", store.CurrentFilePath()).Msg("starting")
	return nil
}

func isTUI(cmd *cobra.Command) bool {
	return cmd.Annotations[tuiAnnotation] == "true"
}

// runTUI starts the terminal app on view and reports what was saved once it
// exits.
func (a *app) runTUI(cmd *cobra.Command, view tui.ViewType) error {
	model := tui.NewAppModel(a.store, a.svc, tui.Options{
		StartView: view,
		KeepOpen:  a.keepOpen,
		Open:      a.open,
	})

	final, err := a.runProgram(cmd, model)
	if err != nil {
		return fmt.Errorf("running terminal ui: %w", err)
	}

	if m, ok := final.(tui.AppModel); ok {
		printSaved(cmd.OutOrStdout(), m.Saved())
	}
	return nil
}

func runProgram(cmd *cobra.Command, m tea.Model) (tea.Model, error) {
	p := tea.NewProgram(m,
		tea.WithContext(cmd.Context()),
		tea.WithInput(cmd.InOrStdin()),
		tea.WithOutput(cmd.OutOrStdout()),
	)
	return p.Run()
}

func printSaved(w io.Writer, saved []capture.Result) {
	for _, r := range saved {
		fmt.Fprintf(w, "Saved to %s\n", r.Path)
	}
}
