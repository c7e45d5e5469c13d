package venv

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"iter"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/lakshaymaurya-felt/venvsweep/internal/config"
	"github.com/lakshaymaurya-felt/venvsweep/internal/core"
	"github.com/lakshaymaurya-felt/venvsweep/internal/logger"
)

// maxWarnings caps the warnings kept for the summary.
const maxWarnings = 500

// Walker finds target directories beneath a start path.
type Walker struct {
	probe        *Probe
	log          logrus.FieldLogger
	warnings     []string
	scannedCount int64

	// OnProgress, if set, is called for every directory visited.
	OnProgress func(scanned int64, path string)
}

// NewWalker creates a Walker that measures targets with probe.
func NewWalker(probe *Probe, log logrus.FieldLogger) *Walker {
	log = logger.OrDiscard(log)
	if probe == nil {
		probe = NewProbe(log)
	}
	return &Walker{probe: probe, log: log}
}

// Warnings returns the warnings accumulated during the last walk.
func (w *Walker) Warnings() []string {
	return append([]string(nil), w.warnings...)
}

// ScannedCount returns the number of directories visited by the last walk.
func (w *Walker) ScannedCount() int64 {
	return w.scannedCount
}

func (w *Walker) addWarning(msg string) {
	w.log.Warn(msg)
	if len(w.warnings) < maxWarnings {
		w.warnings = append(w.warnings, msg)
	}
}

func (w *Walker) visited(path string) {
	w.scannedCount++
	if w.OnProgress != nil {
		w.OnProgress(w.scannedCount, path)
	}
}

// Walk returns a sequence of targets found under root in traversal order.
// Each iteration of the sequence performs a fresh walk.
//
// Without recursion only root's direct MarkerName child is checked. With
// recursion every subdirectory is visited, except that the walk never
// descends into a target once it has matched; symlinks are not followed.
// Unreadable subtrees are skipped with a warning. A failure to read root
// itself, or cancellation of ctx, is yielded as a single error that ends
// the sequence.
func (w *Walker) Walk(ctx context.Context, root string, recursive bool) iter.Seq2[TargetRecord, error] {
	return func(yield func(TargetRecord, error) bool) {
		w.warnings = nil
		w.scannedCount = 0

		root = filepath.Clean(root)
		if recursive {
			w.walkTree(ctx, root, yield)
		} else {
			w.checkDirect(root, yield)
		}
	}
}

// checkDirect looks only at root/MarkerName.
func (w *Walker) checkDirect(root string, yield func(TargetRecord, error) bool) {
	if _, err := os.Lstat(root); err != nil {
		yield(TargetRecord{}, fmt.Errorf("%w: %s: %v", core.ErrCatastrophicIO, root, err))
		return
	}
	w.visited(root)

	candidate := filepath.Join(root, config.MarkerName)
	info, err := os.Lstat(candidate)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			w.addWarning("cannot stat " + candidate + ": " + err.Error())
		}
		return
	}
	if !IsTarget(fs.FileInfoToDirEntry(info)) {
		return
	}

	rec, err := w.probe.Inspect(candidate)
	if err != nil {
		w.addWarning("cannot measure " + candidate + ": " + err.Error())
		return
	}
	w.log.Debugf("found target %s", candidate)
	yield(rec, nil)
}

// walkTree descends from root, treating each matched target as a leaf.
// A symlinked root is walked through its target; links below it are not
// followed. Reported paths stay under root as given.
func (w *Walker) walkTree(ctx context.Context, root string, yield func(TargetRecord, error) bool) {
	stopped := false
	walkRoot := startDir(root)

	err := filepath.WalkDir(walkRoot, func(path string, d fs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if walkRoot != root {
			if rel, relErr := filepath.Rel(walkRoot, path); relErr == nil {
				path = filepath.Join(root, rel)
			}
		}

		if err != nil {
			if path == root {
				return fmt.Errorf("%w: %s: %v", core.ErrCatastrophicIO, root, err)
			}
			// Permission denied or other error: skip the subtree, don't fail.
			w.addWarning("cannot read " + path + ": " + err.Error())
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}

		if !d.IsDir() {
			return nil
		}

		// NEVER follow junction points / reparse points: infinite recursion risk.
		if path != root && core.IsReparsePoint(path) {
			w.addWarning("skipping junction/reparse: " + path)
			return fs.SkipDir
		}

		w.visited(path)

		if !IsTarget(d) {
			return nil
		}

		rec, err := w.probe.Inspect(path)
		if err != nil {
			w.addWarning("cannot measure " + path + ": " + err.Error())
			return fs.SkipDir
		}
		w.log.Debugf("found target %s", path)
		if !yield(rec, nil) {
			stopped = true
			return fs.SkipAll
		}
		// A target is a leaf for traversal.
		return fs.SkipDir
	})

	if err != nil && !stopped {
		yield(TargetRecord{}, err)
	}
}

// startDir returns the directory to walk for root: root itself, or the
// directory it points to when root is a symlink.
func startDir(root string) string {
	info, err := os.Lstat(root)
	if err != nil || info.Mode()&fs.ModeSymlink == 0 {
		return root
	}
	resolved, err := filepath.EvalSymlinks(root)
	if err != nil {
		return root
	}
	return resolved
}
