package gate

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/lakshaymaurya-felt/venvsweep/internal/config"
	"github.com/lakshaymaurya-felt/venvsweep/internal/core"
	"github.com/lakshaymaurya-felt/venvsweep/internal/logger"
	"github.com/lakshaymaurya-felt/venvsweep/internal/venv"
)

// Gate validates and performs the removal of one target. Confirmation is
// the caller's job: the gate is only invoked once a target is approved.
type Gate struct {
	log       logrus.FieldLogger
	canModify func(dir string) (bool, error)
	rename    func(oldpath, newpath string) error
	removeAll func(path string) error
}

// New creates a Gate. A nil logger discards output.
func New(log logrus.FieldLogger) *Gate {
	return &Gate{
		log:       logger.OrDiscard(log),
		canModify: core.CanModify,
		rename:    os.Rename,
		removeAll: os.RemoveAll,
	}
}

// Delete removes rec.Path according to mode. Checks run in order:
// protected path, still exists as a directory, write permission on the
// directory and its parent, then dry-run. Nothing on disk changes unless
// every check passes.
//
// Removal first renames the directory to a sibling staging name, so the
// original path disappears in one step, then removes the staged tree. If
// removal fails the staged tree is renamed back and Partial is reported.
func (g *Gate) Delete(rec venv.TargetRecord, mode config.Mode) Outcome {
	path := filepath.Clean(rec.Path)
	out := Outcome{Path: path}
	log := g.log.WithField("path", path)

	if mode == config.ModeQuery {
		out.Kind = Failed
		out.Err = fmt.Errorf("%s mode never deletes", mode)
		return out
	}

	// Never touch anything that is not a marker directory or is on the
	// never-delete list.
	if filepath.Base(path) != config.MarkerName || config.IsNeverDelete(path) {
		out.Kind = Denied
		out.Err = fmt.Errorf("%w: %s", core.ErrProtectedPath, path)
		log.Warn("refusing to delete protected path")
		return out
	}

	// (a) Still there and still a real directory?
	info, err := os.Lstat(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		out.Kind = Vanished
		out.Err = fmt.Errorf("%w: %s", core.ErrTargetVanished, path)
		return out
	case errors.Is(err, fs.ErrPermission):
		out.Kind = Denied
		out.Err = fmt.Errorf("%w: %s: %v", core.ErrPermissionDenied, path, err)
		return out
	case err != nil:
		out.Kind = Failed
		out.Err = err
		return out
	case !info.IsDir():
		out.Kind = Vanished
		out.Err = fmt.Errorf("%w: %s is no longer a directory", core.ErrTargetVanished, path)
		return out
	}

	// (b) Permission on the directory and on its parent.
	for _, dir := range []string{filepath.Dir(path), path} {
		ok, err := g.canModify(dir)
		if err != nil && errors.Is(err, fs.ErrNotExist) {
			out.Kind = Vanished
			out.Err = fmt.Errorf("%w: %s", core.ErrTargetVanished, path)
			return out
		}
		if err != nil || !ok {
			out.Kind = Denied
			out.Err = fmt.Errorf("%w: no write access to %s", core.ErrPermissionDenied, dir)
			log.Debug("permission check failed")
			return out
		}
	}

	// (c) Dry-run stops here.
	if mode == config.ModeDryRun {
		out.Kind = Simulated
		out.Freed = rec.SizeBytes
		log.Info("dry run: would delete")
		return out
	}

	staged := stagingPath(path)
	if err := g.rename(path, staged); err != nil {
		switch {
		case errors.Is(err, fs.ErrNotExist):
			out.Kind = Vanished
			out.Err = fmt.Errorf("%w: %s", core.ErrTargetVanished, path)
		case errors.Is(err, fs.ErrPermission):
			out.Kind = Denied
			out.Err = fmt.Errorf("%w: %s: %v", core.ErrPermissionDenied, path, err)
		default:
			out.Kind = Failed
			out.Err = fmt.Errorf("cannot stage %s for deletion: %w", path, err)
		}
		return out
	}

	log.Info("deleting")
	if err := g.removeAll(staged); err != nil {
		if _, statErr := os.Lstat(staged); errors.Is(statErr, fs.ErrNotExist) {
			out.Kind = Deleted
			out.Freed = rec.SizeBytes
			return out
		}

		out.Kind = Partial
		if restoreErr := g.rename(staged, path); restoreErr != nil {
			out.Path = staged
			out.Err = fmt.Errorf("%w: %s (remains at %s): %v", core.ErrPartialDeletion, path, staged, err)
		} else {
			out.Err = fmt.Errorf("%w: %s: %v", core.ErrPartialDeletion, path, err)
		}
		log.WithError(err).Error("deletion stopped partway")
		return out
	}

	out.Kind = Deleted
	out.Freed = rec.SizeBytes
	log.Info("deleted")
	return out
}

// stagingPath returns an unused sibling name for path.
func stagingPath(path string) string {
	dir := filepath.Dir(path)
	base := fmt.Sprintf("%s.deleting-%d-%d", filepath.Base(path), os.Getpid(), time.Now().UnixNano())
	return filepath.Join(dir, base)
}
