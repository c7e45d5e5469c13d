package cmd

import (
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/lakshaymaurya-felt/venvsweep/internal/config"
	"github.com/lakshaymaurya-felt/venvsweep/internal/core"
	"github.com/lakshaymaurya-felt/venvsweep/internal/gate"
	"github.com/lakshaymaurya-felt/venvsweep/internal/logger"
	"github.com/lakshaymaurya-felt/venvsweep/internal/pipeline"
	"github.com/lakshaymaurya-felt/venvsweep/internal/tui"
	"github.com/lakshaymaurya-felt/venvsweep/internal/ui"
)

var browseOpts config.Options

var browseCmd = &cobra.Command{
	Use:   "browse [dir]",
	Short: "Browse and delete environments interactively",
	Long: `Scan dir (recursively by default) and open a full-screen list of every
virtual environment found. Sort, select and delete from the list.

Falls back to a plain-text listing when not attached to a terminal.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBrowse,
}

func init() {
	f := browseCmd.Flags()
	f.BoolVarP(&browseOpts.Recursive, "recursive", "r", true, "Search all subdirectories")
	f.StringVar(&browseOpts.Sort, "sort", "", "Initial order: path, size, created or last-used")
	f.BoolVar(&browseOpts.Reverse, "reverse", false, "Reverse the initial order")
	_ = browseCmd.RegisterFlagCompletionFunc("sort", completeSortKeys)
}

func runBrowse(cmd *cobra.Command, args []string) error {
	opts := browseOpts
	opts.Query = true
	opts.Verbosity = verbosity
	if len(args) == 1 {
		opts.StartPath = args[0]
	}
	cfg, err := opts.Resolve()
	if err != nil {
		return fatal(err)
	}
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	// The TUI owns the terminal, so only the static fallback logs.
	if !ui.IsTerminal(os.Stdin) || !ui.IsTerminal(os.Stdout) {
		log := logger.New(cfg.Verbosity, cmd.ErrOrStderr())
		results, warnings, err := pipeline.New(cfg, pipeline.Deps{Log: log}).Collect(ctx)
		tui.PrintStatic(out, cfg.StartPath, results, time.Now())
		return exitFor(pipeline.Summary{Results: results, Warnings: warnings, Err: err})
	}

	log := logger.Discard()
	p := pipeline.New(cfg, pipeline.Deps{Log: log})
	m := tui.NewModel(ctx, cfg.StartPath, p, gate.New(log), cfg.Sort, cfg.Reverse)

	final, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	if err != nil {
		return fatal(fmt.Errorf("browser: %w", err))
	}

	fm, ok := final.(tui.Model)
	if !ok {
		return nil
	}
	if n, freed := fm.Freed(); n > 0 {
		fmt.Fprintln(out, ui.SuccessStyle().Render(
			fmt.Sprintf("  %s %d deleted, %s freed", ui.IconCheck, n, core.FormatSize(freed))))
	}
	problems := fm.Problems()
	for _, o := range problems {
		fmt.Fprintln(out, "  "+ui.RenderOutcome(o)+"  "+o.Path)
	}
	if fm.Err() != nil {
		return fatal(fm.Err())
	}
	if len(problems) > 0 {
		return &exitError{status: pipeline.StatusWarnings, reported: true}
	}
	return nil
}
