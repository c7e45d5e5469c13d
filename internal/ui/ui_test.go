package ui

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lakshaymaurya-felt/venvsweep/internal/config"
	"github.com/lakshaymaurya-felt/venvsweep/internal/gate"
	"github.com/lakshaymaurya-felt/venvsweep/internal/pipeline"
	"github.com/lakshaymaurya-felt/venvsweep/internal/tier"
	"github.com/lakshaymaurya-felt/venvsweep/internal/venv"
)

var now = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func result(path string, size uint64, lastUsed time.Time) pipeline.Result {
	rec := venv.TargetRecord{Path: path, SizeBytes: size, CreatedAt: lastUsed, LastUsedAt: lastUsed, LooksValid: true}
	return pipeline.Result{Record: rec, Tier: tier.Classify(rec, now)}
}

func TestIsYes(t *testing.T) {
	for in, want := range map[string]bool{
		"y\n": true, "Y": true, "yes": true, " YES \r\n": true,
		"": false, "\n": false, "n": false, "no": false, "yep": false,
	} {
		assert.Equal(t, want, IsYes(in), "%q", in)
	}
}

func TestPromptConfirmerReadsLines(t *testing.T) {
	var out bytes.Buffer
	p := NewPromptConfirmer(strings.NewReader("y\n\nno\nYes\n"), &out)
	r := result("/w/app/.venv", 2048, now)

	var got []bool
	for range 5 {
		ok, err := p.Confirm(t.Context(), r)
		require.NoError(t, err)
		got = append(got, ok)
	}

	// The fifth answer hits end of input, which means no.
	assert.Equal(t, []bool{true, false, false, true, false}, got)
	assert.Contains(t, out.String(), "Delete /w/app/.venv")
	assert.Contains(t, out.String(), "[y/N]")
}

func TestPromptConfirmerHonorsCancel(t *testing.T) {
	pr, pw := io.Pipe()
	t.Cleanup(func() { pw.Close() })

	ctx, cancel := context.WithCancel(t.Context())
	p := NewPromptConfirmer(pr, io.Discard)

	done := make(chan error, 1)
	go func() {
		_, err := p.Confirm(ctx, result("/w/app/.venv", 1, now))
		done <- err
	}()
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("confirm did not return after cancel")
	}
}

func TestTextReporter(t *testing.T) {
	var out bytes.Buffer
	rep := NewTextReporter(&out, config.ModeDryRun)
	rep.now = func() time.Time { return now }

	r := result("/w/app/.venv", 2*1024*1024*1024, now.AddDate(0, -6, 0))
	rep.Found(r)
	o := gate.Outcome{Kind: gate.Simulated, Path: r.Record.Path, Freed: r.Record.SizeBytes}
	r.Outcome = &o
	rep.Acted(r)

	text := out.String()
	assert.Contains(t, text, "app")
	assert.Contains(t, text, "/w/app/.venv")
	assert.Contains(t, text, "2.0 GiB (large)")
	assert.Contains(t, text, "(abandoned)")
	assert.Contains(t, text, "cleanup candidate")
	assert.Contains(t, text, "would delete")
}

func TestRenderOutcome(t *testing.T) {
	assert.Contains(t, RenderOutcome(gate.Outcome{Kind: gate.Deleted, Freed: 1024}), "1.0 KiB freed")
	assert.Contains(t, RenderOutcome(gate.Outcome{Kind: gate.Declined}), "kept")
	assert.Contains(t, RenderOutcome(gate.Outcome{Kind: gate.Denied, Err: errors.New("no write access")}), "denied: no write access")
}

func TestRenderSummaryNamesProblems(t *testing.T) {
	ok := result("/w/a/.venv", 100, now)
	okOut := gate.Outcome{Kind: gate.Deleted, Path: ok.Record.Path, Freed: 100}
	ok.Outcome = &okOut
	bad := result("/w/b/.venv", 100, now)
	badOut := gate.Outcome{Kind: gate.Vanished, Path: bad.Record.Path, Err: errors.New("gone")}
	bad.Outcome = &badOut

	sum := pipeline.Summary{
		Mode:           config.ModeForce,
		Results:        []pipeline.Result{ok, bad},
		Found:          2,
		Deleted:        1,
		Vanished:       1,
		BytesFound:     200,
		BytesReclaimed: 100,
	}
	text := RenderSummary(sum, now)
	assert.Contains(t, text, "deleted")
	assert.Contains(t, text, "100 B freed")
	assert.Contains(t, text, "1 not deleted")
	assert.Contains(t, text, "vanished /w/b/.venv")
	assert.NotContains(t, text, "Recommended")
}

func TestRenderSummaryListsWarnings(t *testing.T) {
	var warnings []string
	for i := 1; i <= 12; i++ {
		warnings = append(warnings, fmt.Sprintf("cannot read /w/dir-%02d: permission denied", i))
	}

	text := RenderSummary(pipeline.Summary{Mode: config.ModeQuery, Warnings: warnings}, now)
	assert.Contains(t, text, "12 path(s) skipped while scanning")
	for _, w := range warnings[:10] {
		assert.Contains(t, text, w)
	}
	assert.NotContains(t, text, "/w/dir-11")
	assert.NotContains(t, text, "/w/dir-12")
	assert.Contains(t, text, "... and 2 more")

	text = RenderSummary(pipeline.Summary{Mode: config.ModeQuery, Warnings: warnings[:1]}, now)
	assert.Contains(t, text, "cannot read /w/dir-01: permission denied")
	assert.NotContains(t, text, "more")
}

func TestRenderSummaryEmpty(t *testing.T) {
	text := RenderSummary(pipeline.Summary{Mode: config.ModeQuery}, now)
	assert.Contains(t, text, "no virtual environments")
}

func TestRenderRecommendations(t *testing.T) {
	fresh := result("/w/fresh/.venv", 10, now)
	old := result("/w/old/.venv", 10, now.AddDate(-1, 0, 0))
	big := result("/w/big/.venv", 3*1024*1024*1024, now)

	text := RenderRecommendations([]pipeline.Result{fresh, old, big}, now)
	assert.Contains(t, text, "/w/old/.venv")
	assert.Contains(t, text, "/w/big/.venv")
	assert.NotContains(t, text, "/w/fresh/.venv")
	assert.Contains(t, text, "1 abandoned, 1 large")

	assert.Empty(t, RenderRecommendations([]pipeline.Result{fresh}, now))
}

func TestWriteJSON(t *testing.T) {
	r := result("/w/a/.venv", 100, now)
	cfg := config.ScanConfig{StartPath: "/w", Recursive: true, Mode: config.ModeQuery}
	sum := pipeline.Summary{Mode: config.ModeQuery, Results: []pipeline.Result{r}, Found: 1, BytesFound: 100}

	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, NewReport(cfg, sum)))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "query", decoded["mode"])
	assert.Equal(t, "success", decoded["status"])

	summary := decoded["summary"].(map[string]any)
	results := summary["results"].([]any)
	require.Len(t, results, 1)
	first := results[0].(map[string]any)
	assert.Equal(t, "/w/a/.venv", first["record"].(map[string]any)["path"])
	assert.Equal(t, "small", first["tier"].(map[string]any)["size"])
	assert.NotContains(t, first, "outcome")
}

func TestNewReportNeverEncodesNullResults(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, NewReport(config.ScanConfig{}, pipeline.Summary{})))
	assert.Contains(t, buf.String(), `"results": []`)
}

func TestGradientBarWidth(t *testing.T) {
	assert.Empty(t, GradientBar(50, 0))
	bar := GradientBar(50, 10)
	assert.Equal(t, 5, strings.Count(bar, "█"))
	assert.Equal(t, 5, strings.Count(bar, "░"))
}
