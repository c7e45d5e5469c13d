package pipeline

import (
	"context"
	"errors"
	"fmt"
	"iter"

	"github.com/sirupsen/logrus"

	"github.com/lakshaymaurya-felt/venvsweep/internal/config"
	"github.com/lakshaymaurya-felt/venvsweep/internal/gate"
	"github.com/lakshaymaurya-felt/venvsweep/internal/logger"
	"github.com/lakshaymaurya-felt/venvsweep/internal/tier"
	"github.com/lakshaymaurya-felt/venvsweep/internal/venv"
)

// Reporter receives results as the pipeline produces them. Found is called
// once per classified record; Acted once per record that went through the
// gate or was declined.
type Reporter interface {
	Found(Result)
	Acted(Result)
}

// Confirmer asks whether one target may be deleted. Any error counts as a
// refusal.
type Confirmer interface {
	Confirm(ctx context.Context, r Result) (bool, error)
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(ctx context.Context, r Result) (bool, error)

func (f ConfirmFunc) Confirm(ctx context.Context, r Result) (bool, error) { return f(ctx, r) }

// Deleter performs the checked removal of a single target.
type Deleter interface {
	Delete(rec venv.TargetRecord, mode config.Mode) gate.Outcome
}

// Scanner finds targets under a start path. *venv.Walker is the production
// implementation.
type Scanner interface {
	Walk(ctx context.Context, root string, recursive bool) iter.Seq2[venv.TargetRecord, error]
	Warnings() []string
	ScannedCount() int64
}

// Deps are the collaborators of a Pipeline. Nil fields get defaults; a nil
// Confirmer declines everything.
type Deps struct {
	Walker     Scanner
	Gate       Deleter
	Classifier *tier.Classifier
	Confirmer  Confirmer
	Reporter   Reporter
	Log        logrus.FieldLogger
}

// Pipeline runs one invocation: scan, classify, report and, depending on
// the mode, confirm and delete.
type Pipeline struct {
	cfg   config.ScanConfig
	deps  Deps
	log   logrus.FieldLogger
	state State
}

// New creates a Pipeline for cfg.
func New(cfg config.ScanConfig, deps Deps) *Pipeline {
	deps.Log = logger.OrDiscard(deps.Log)
	if deps.Walker == nil {
		deps.Walker = venv.NewWalker(nil, deps.Log)
	}
	if deps.Gate == nil {
		deps.Gate = gate.New(deps.Log)
	}
	if deps.Classifier == nil {
		deps.Classifier = tier.NewClassifier()
	}
	if deps.Confirmer == nil {
		deps.Confirmer = ConfirmFunc(func(context.Context, Result) (bool, error) { return false, nil })
	}
	if deps.Reporter == nil {
		deps.Reporter = nopReporter{}
	}
	return &Pipeline{cfg: cfg, deps: deps, log: deps.Log}
}

// State returns the current state.
func (p *Pipeline) State() State {
	return p.state
}

func (p *Pipeline) setState(s State) {
	if p.state == s {
		return
	}
	p.log.WithFields(logrus.Fields{"from": p.state, "to": s}).Debug("state change")
	p.state = s
}

// sortKey returns the configured sort, defaulting query mode to largest
// first. An empty key keeps traversal order.
func (p *Pipeline) sortKey() config.SortKey {
	if p.cfg.Sort == "" && p.cfg.Mode == config.ModeQuery {
		return config.SortSize
	}
	return p.cfg.Sort
}

// Collect walks and classifies every target, sorted per the configuration.
// On a catastrophic error the results gathered so far are returned with it.
func (p *Pipeline) Collect(ctx context.Context) ([]Result, []string, error) {
	p.setState(StateScanning)

	var (
		records []venv.TargetRecord
		walkErr error
	)
	for rec, err := range p.deps.Walker.Walk(ctx, p.cfg.StartPath, p.cfg.Recursive) {
		if err != nil {
			walkErr = err
			break
		}
		records = append(records, rec)
	}
	warnings := p.deps.Walker.Warnings()

	if key := p.sortKey(); key != "" {
		venv.Sort(records, key, p.cfg.Reverse)
	}

	p.setState(StateClassifying)
	results := make([]Result, 0, len(records))
	for _, rec := range records {
		results = append(results, p.classify(rec))
	}
	p.log.WithFields(logrus.Fields{
		"found":   len(results),
		"scanned": p.deps.Walker.ScannedCount(),
	}).Info("scan finished")
	return results, warnings, walkErr
}

func (p *Pipeline) classify(rec venv.TargetRecord) Result {
	return Result{Record: rec, Tier: p.deps.Classifier.Classify(rec)}
}

// Run executes the whole invocation and returns its summary. The error is
// the summary's fatal error, if any: a catastrophic scan failure or an
// interrupt. Results gathered before a fatal error are kept in the summary.
func (p *Pipeline) Run(ctx context.Context) (Summary, error) {
	sum := Summary{Mode: p.cfg.Mode}
	p.log.WithFields(logrus.Fields{
		"start":     p.cfg.StartPath,
		"recursive": p.cfg.Recursive,
		"mode":      p.cfg.Mode,
	}).Debug("run starting")

	if p.cfg.Mode == config.ModeInteractive {
		p.runInteractive(ctx, &sum)
	} else {
		p.runBatch(ctx, &sum)
	}

	p.setState(StateDone)
	sum.State = p.state
	if sum.Err != nil && errors.Is(sum.Err, context.Canceled) {
		sum.Interrupted = true
	}
	return sum, sum.Err
}

// runBatch handles query, dry-run and force: collect everything first,
// then report, then act.
func (p *Pipeline) runBatch(ctx context.Context, sum *Summary) {
	results, warnings, err := p.Collect(ctx)
	sum.Warnings = warnings

	p.setState(StateReporting)
	for _, r := range results {
		sum.addFound(r)
		p.deps.Reporter.Found(r)
	}
	sum.Results = results

	if err != nil {
		sum.Err = err
		return
	}
	if p.cfg.Mode == config.ModeQuery {
		return
	}

	p.setState(StateActing)
	for i := range sum.Results {
		if ctxErr := ctx.Err(); ctxErr != nil {
			sum.Err = fmt.Errorf("stopped before %s: %w", sum.Results[i].Record.Path, ctxErr)
			return
		}
		p.act(&sum.Results[i], sum)
	}
}

// runInteractive streams targets in traversal order and asks about each
// one before moving to the next.
func (p *Pipeline) runInteractive(ctx context.Context, sum *Summary) {
	p.setState(StateScanning)
	for rec, err := range p.deps.Walker.Walk(ctx, p.cfg.StartPath, p.cfg.Recursive) {
		if err != nil {
			sum.Err = err
			break
		}

		p.setState(StateClassifying)
		r := p.classify(rec)

		p.setState(StateReporting)
		sum.addFound(r)
		p.deps.Reporter.Found(r)

		p.setState(StateAwaitingConfirmation)
		ok, cerr := p.deps.Confirmer.Confirm(ctx, r)
		if ctxErr := ctx.Err(); ctxErr != nil {
			sum.Results = append(sum.Results, r)
			sum.Err = fmt.Errorf("stopped at %s: %w", r.Record.Path, ctxErr)
			break
		}
		if cerr != nil {
			p.log.WithError(cerr).WithField("path", r.Record.Path).Debug("confirmation failed, treating as no")
			ok = false
		}

		if ok {
			p.act(&r, sum)
		} else {
			out := gate.DeclinedOutcome(r.Record.Path)
			r.Outcome = &out
			sum.addOutcome(out)
			p.deps.Reporter.Acted(r)
		}
		sum.Results = append(sum.Results, r)
		p.setState(StateScanning)
	}
	sum.Warnings = p.deps.Walker.Warnings()
}

func (p *Pipeline) act(r *Result, sum *Summary) {
	p.setState(StateActing)
	out := p.deps.Gate.Delete(r.Record, p.cfg.Mode)
	r.Outcome = &out
	sum.addOutcome(out)
	if out.Kind.IsProblem() {
		p.log.WithError(out.Err).WithField("path", out.Path).Warn(out.Kind.String())
	}
	p.deps.Reporter.Acted(*r)
}

type nopReporter struct{}

func (nopReporter) Found(Result) {}
func (nopReporter) Acted(Result) {}
