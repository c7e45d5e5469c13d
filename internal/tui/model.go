package tui

import (
	"context"
	"slices"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/lakshaymaurya-felt/venvsweep/internal/config"
	"github.com/lakshaymaurya-felt/venvsweep/internal/gate"
	"github.com/lakshaymaurya-felt/venvsweep/internal/pipeline"
	"github.com/lakshaymaurya-felt/venvsweep/internal/venv"
)

// Collector produces the classified targets to browse.
type Collector interface {
	Collect(ctx context.Context) ([]pipeline.Result, []string, error)
}

// ─── Messages ────────────────────────────────────────────────────────────────

type scanDoneMsg struct {
	results  []pipeline.Result
	warnings []string
	err      error
}

type deleteResultMsg struct {
	outcomes []gate.Outcome
}

func scan(ctx context.Context, c Collector) tea.Cmd {
	return func() tea.Msg {
		results, warnings, err := c.Collect(ctx)
		return scanDoneMsg{results: results, warnings: warnings, err: err}
	}
}

func deleteTargets(ctx context.Context, d pipeline.Deleter, recs []venv.TargetRecord) tea.Cmd {
	return func() tea.Msg {
		var outs []gate.Outcome
		for _, rec := range recs {
			if ctx.Err() != nil {
				break
			}
			outs = append(outs, d.Delete(rec, config.ModeForce))
		}
		return deleteResultMsg{outcomes: outs}
	}
}

// ─── Model ───────────────────────────────────────────────────────────────────

// Model is the bubbletea Model for browsing and deleting found venvs.
type Model struct {
	ctx       context.Context
	collector Collector
	deleter   pipeline.Deleter
	root      string
	keys      keyMap
	spinner   spinner.Model
	now       func() time.Time

	results  []pipeline.Result
	selected map[string]bool
	warnings []string
	sortKey  config.SortKey
	reverse  bool

	cursor        int
	offset        int
	width         int
	height        int
	scanning      bool
	deleting      bool
	confirmDelete bool // two-key delete: Backspace then Enter
	showDetails   bool
	quitting      bool

	deletedCount int
	freed        uint64
	problems     []gate.Outcome
	err          error
}

// NewModel creates a Model that scans root with c and deletes with d.
func NewModel(ctx context.Context, root string, c Collector, d pipeline.Deleter, sortKey config.SortKey, reverse bool) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	if sortKey == "" {
		sortKey = config.SortSize
	}
	return Model{
		ctx:       ctx,
		collector: c,
		deleter:   d,
		root:      root,
		keys:      defaultKeys(),
		spinner:   sp,
		now:       time.Now,
		selected:  make(map[string]bool),
		sortKey:   sortKey,
		reverse:   reverse,
		width:     80,
		height:    24,
		scanning:  true,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, scan(m.ctx, m.collector))
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case spinner.TickMsg:
		if !m.scanning && !m.deleting {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case scanDoneMsg:
		m.scanning = false
		m.results = msg.results
		m.warnings = msg.warnings
		m.err = msg.err
		m.sortResults()
		return m, nil

	case deleteResultMsg:
		m.deleting = false
		m.applyOutcomes(msg.outcomes)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		m.quitting = true
		return m, tea.Quit
	}
	if m.scanning || m.deleting {
		return m, nil
	}

	// If awaiting delete confirmation, only Enter confirms.
	if m.confirmDelete {
		m.confirmDelete = false
		if key.Matches(msg, m.keys.Confirm) {
			recs := m.targets()
			if len(recs) == 0 {
				return m, nil
			}
			m.deleting = true
			return m, tea.Batch(m.spinner.Tick, deleteTargets(m.ctx, m.deleter, recs))
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
			m.ensureVisible()
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.results)-1 {
			m.cursor++
			m.ensureVisible()
		}
	case key.Matches(msg, m.keys.Toggle):
		if r, ok := m.current(); ok {
			p := r.Record.Path
			if m.selected[p] {
				delete(m.selected, p)
			} else {
				m.selected[p] = true
			}
		}
	case key.Matches(msg, m.keys.All):
		for _, r := range m.results {
			m.selected[r.Record.Path] = true
		}
	case key.Matches(msg, m.keys.None):
		clear(m.selected)
	case key.Matches(msg, m.keys.Sort):
		m.sortKey = venv.NextSortKey(m.sortKey)
		m.sortResults()
	case key.Matches(msg, m.keys.Reverse):
		m.reverse = !m.reverse
		m.sortResults()
	case key.Matches(msg, m.keys.Details):
		m.showDetails = !m.showDetails
	case key.Matches(msg, m.keys.Delete):
		// First key of two-key delete confirmation.
		if len(m.targets()) > 0 {
			m.confirmDelete = true
		}
	}
	return m, nil
}

// View delegates to view.go renderView.
func (m Model) View() string {
	return m.renderView()
}

// ─── Helpers ─────────────────────────────────────────────────────────────────

func (m Model) current() (pipeline.Result, bool) {
	if m.cursor < 0 || m.cursor >= len(m.results) {
		return pipeline.Result{}, false
	}
	return m.results[m.cursor], true
}

// targets returns the selected records, or the record under the cursor
// when nothing is selected.
func (m Model) targets() []venv.TargetRecord {
	var recs []venv.TargetRecord
	for _, r := range m.results {
		if m.selected[r.Record.Path] {
			recs = append(recs, r.Record)
		}
	}
	if len(recs) == 0 {
		if r, ok := m.current(); ok {
			recs = append(recs, r.Record)
		}
	}
	return recs
}

func (m *Model) sortResults() {
	var cursorPath string
	if r, ok := m.current(); ok {
		cursorPath = r.Record.Path
	}
	slices.SortStableFunc(m.results, func(a, b pipeline.Result) int {
		if m.reverse {
			return venv.Compare(b.Record, a.Record, m.sortKey)
		}
		return venv.Compare(a.Record, b.Record, m.sortKey)
	})
	m.cursor = 0
	for i, r := range m.results {
		if r.Record.Path == cursorPath {
			m.cursor = i
			break
		}
	}
	m.offset = 0
	m.ensureVisible()
}

// applyOutcomes drops deleted targets from the list and keeps the rest
// with their problem recorded.
func (m *Model) applyOutcomes(outs []gate.Outcome) {
	gone := make(map[string]bool)
	for _, o := range outs {
		delete(m.selected, o.Path)
		if o.Kind == gate.Deleted {
			gone[o.Path] = true
			m.deletedCount++
			m.freed += o.Freed
		} else if o.Kind.IsProblem() {
			m.problems = append(m.problems, o)
		}
	}
	m.results = slices.DeleteFunc(m.results, func(r pipeline.Result) bool {
		return gone[r.Record.Path]
	})
	if m.cursor >= len(m.results) && m.cursor > 0 {
		m.cursor = len(m.results) - 1
	}
	m.ensureVisible()
}

func (m *Model) ensureVisible() {
	vh := m.viewportHeight()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+vh {
		m.offset = m.cursor - vh + 1
	}
}

func (m Model) viewportHeight() int {
	h := m.height - 9 // header (4) + footer (4) + padding
	if m.showDetails {
		h -= 6
	}
	if h < 1 {
		h = 1
	}
	return h
}

// totals returns the total and selected sizes.
func (m Model) totals() (total, selected uint64) {
	for _, r := range m.results {
		total += r.Record.SizeBytes
		if m.selected[r.Record.Path] {
			selected += r.Record.SizeBytes
		}
	}
	return total, selected
}

// Freed returns the count and bytes of targets deleted during the session.
func (m Model) Freed() (int, uint64) {
	return m.deletedCount, m.freed
}

// Problems returns the outcomes of targets that could not be deleted.
func (m Model) Problems() []gate.Outcome {
	return m.problems
}

// Err returns the scan error, if any.
func (m Model) Err() error {
	return m.err
}
