package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/lakshaymaurya-felt/venvsweep/internal/config"
	"github.com/lakshaymaurya-felt/venvsweep/internal/gate"
	"github.com/lakshaymaurya-felt/venvsweep/internal/logger"
	"github.com/lakshaymaurya-felt/venvsweep/internal/pipeline"
	"github.com/lakshaymaurya-felt/venvsweep/internal/status"
	"github.com/lakshaymaurya-felt/venvsweep/internal/tier"
	"github.com/lakshaymaurya-felt/venvsweep/internal/ui"
	"github.com/lakshaymaurya-felt/venvsweep/internal/venv"
)

var (
	// Global flags
	verbosity int

	// Root command flags
	sweepOpts config.Options

	// Version info populated from main
	appVersion = "dev"
	appCommit  = "none"
	appDate    = "unknown"
)

// SetVersionInfo sets build-time version information.
func SetVersionInfo(version, commit, date string) {
	appVersion = version
	appCommit = commit
	appDate = date
}

var rootCmd = &cobra.Command{
	Use:   "venvsweep [dir]",
	Short: "Find and remove Python virtual environments",
	Long: `venvsweep finds .venv directories, reports their size and how long
ago they were last touched, and deletes the ones you no longer need.

Without flags every environment found is listed and you are asked before
each deletion. Use --query to only list, --dry-run to see what would be
removed, and --force to delete without asking.`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runSweep,
}

// Execute runs the root command. SIGINT and SIGTERM cancel the run; a
// deletion already in progress finishes first.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "Increase log detail (-v info, -vv debug)")

	f := rootCmd.Flags()
	f.BoolVarP(&sweepOpts.Recursive, "recursive", "r", false, "Search all subdirectories, not just dir/.venv")
	f.BoolVarP(&sweepOpts.Query, "query", "q", false, "List environments without deleting anything")
	f.BoolVarP(&sweepOpts.Force, "force", "f", false, "Delete without asking")
	f.BoolVar(&sweepOpts.DryRun, "dry-run", false, "Show what would be deleted without deleting")
	f.StringVar(&sweepOpts.Sort, "sort", "", "Order results by path, size, created or last-used")
	f.BoolVar(&sweepOpts.Reverse, "reverse", false, "Reverse the sort order")
	f.BoolVar(&sweepOpts.JSON, "json", false, "Write results as JSON")
	_ = rootCmd.RegisterFlagCompletionFunc("sort", completeSortKeys)

	// Register all subcommands
	rootCmd.AddCommand(browseCmd)
	rootCmd.AddCommand(completionCmd)
	rootCmd.AddCommand(versionCmd)
}

func completeSortKeys(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	keys := []string{
		string(config.SortPath), string(config.SortSize),
		string(config.SortCreated), string(config.SortLastUsed),
	}
	return keys, cobra.ShellCompDirectiveNoFileComp
}

func runSweep(cmd *cobra.Command, args []string) error {
	opts := sweepOpts
	opts.Verbosity = verbosity
	if len(args) == 1 {
		opts.StartPath = args[0]
	}

	cfg, err := opts.Resolve()
	if err != nil {
		return fatal(err)
	}
	return sweep(cmd.Context(), cfg, cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr())
}

// sweep runs one pipeline invocation and renders its results.
func sweep(ctx context.Context, cfg config.ScanConfig, in io.Reader, out, errOut io.Writer) error {
	log := logger.New(cfg.Verbosity, errOut)
	log.WithFields(logrus.Fields{"version": appVersion, "mode": cfg.Mode}).Debug("starting")

	walker := venv.NewWalker(venv.NewProbe(log), log)
	progress := newScanProgress(errOut, showProgress(cfg, errOut))
	walker.OnProgress = func(int64, string) { progress.tick() }

	before, volErr := status.Volume(ctx, cfg.StartPath)
	if volErr != nil {
		log.WithError(volErr).Debug("volume usage unavailable")
	}

	deps := pipeline.Deps{
		Walker:     walker,
		Gate:       gate.New(log),
		Classifier: tier.NewClassifier(),
		Log:        log,
	}
	if !cfg.JSON {
		deps.Reporter = &progressReporter{next: ui.NewTextReporter(out, cfg.Mode), progress: progress}
	} else {
		deps.Reporter = &progressReporter{progress: progress}
	}
	if cfg.Mode == config.ModeInteractive {
		promptOut := out
		if cfg.JSON {
			promptOut = errOut
		}
		deps.Confirmer = ui.NewPromptConfirmer(in, promptOut)
	}

	sum, err := pipeline.New(cfg, deps).Run(ctx)
	progress.finish()
	if err != nil {
		log.WithError(err).Debug("run ended early")
	}

	var after status.VolumeUsage
	haveVolume := volErr == nil && cfg.Mode.Deletes() && sum.Deleted > 0
	if haveVolume {
		var err error
		after, err = status.Volume(context.WithoutCancel(ctx), cfg.StartPath)
		if err != nil {
			log.WithError(err).Debug("volume usage unavailable")
			haveVolume = false
		}
	}

	if cfg.JSON {
		rep := ui.NewReport(cfg, sum)
		if haveVolume {
			rep.Volume = &ui.VolumeUsageReport{
				Path:        cfg.StartPath,
				FreeBefore:  before.Free,
				FreeAfter:   after.Free,
				TotalVolume: after.Total,
			}
		}
		if err := ui.WriteJSON(out, rep); err != nil {
			return fatal(fmt.Errorf("write json: %w", err))
		}
	} else {
		fmt.Fprintln(out)
		fmt.Fprintln(out, ui.RenderSummary(sum, time.Now()))
		if haveVolume {
			fmt.Fprintln(out, status.RenderVolume(before, after, 30))
		}
	}

	return exitFor(sum)
}
