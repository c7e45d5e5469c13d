package venv

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/djherbis/times"
	"github.com/sirupsen/logrus"

	"github.com/lakshaymaurya-felt/venvsweep/internal/config"
	"github.com/lakshaymaurya-felt/venvsweep/internal/core"
	"github.com/lakshaymaurya-felt/venvsweep/internal/logger"
)

// Measurement is the result of walking one target's contents.
type Measurement struct {
	SizeBytes   uint64
	LatestMod   time.Time
	EarliestMod time.Time
	Skipped     int
}

// Probe extracts size and timestamp metadata from candidate directories.
type Probe struct {
	log       logrus.FieldLogger
	birthTime func(path string) (time.Time, error)
	walkDir   func(root string, fn fs.WalkDirFunc) error
}

// NewProbe creates a Probe. A nil logger discards output.
func NewProbe(log logrus.FieldLogger) *Probe {
	return &Probe{
		log:       logger.OrDiscard(log),
		birthTime: CreationTime,
		walkDir:   filepath.WalkDir,
	}
}

// IsTarget reports whether entry is a directory named exactly MarkerName.
// Symlinks are never targets.
func IsTarget(entry fs.DirEntry) bool {
	return entry != nil && entry.IsDir() && entry.Name() == config.MarkerName
}

// IsValidVenv reports whether path is named MarkerName and contains at
// least two of the usual venv layout entries.
func IsValidVenv(path string) bool {
	if filepath.Base(path) != config.MarkerName {
		return false
	}
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return false
	}

	found := 0
	for _, item := range config.VenvLayoutItems {
		if _, err := os.Lstat(filepath.Join(path, item)); err == nil {
			found++
		}
	}
	return found >= 2
}

// CreationTime reads the filesystem birth time of path. It fails with
// core.ErrMetadataUnavailable when the platform or filesystem does not
// record one.
func CreationTime(path string) (time.Time, error) {
	ts, err := times.Lstat(path)
	if err != nil {
		return time.Time{}, err
	}
	if !ts.HasBirthTime() {
		return time.Time{}, fmt.Errorf("%w: %s", core.ErrMetadataUnavailable, path)
	}
	return ts.BirthTime(), nil
}

// Measure walks everything under path without following symlinks and
// returns the total size of regular files with the newest and oldest
// modification times seen. Unreadable entries are skipped and counted.
// The directory's own mtime is the baseline for both timestamps.
func (p *Probe) Measure(path string) (Measurement, error) {
	rootInfo, err := os.Lstat(path)
	if err != nil {
		return Measurement{}, err
	}
	if !rootInfo.IsDir() {
		return Measurement{}, fmt.Errorf("%s is not a directory", path)
	}

	var m Measurement
	m.EarliestMod = rootInfo.ModTime()
	var sawFile bool

	walkErr := p.walkDir(path, func(name string, d fs.DirEntry, err error) error {
		if err != nil {
			if name == path && d == nil {
				return err
			}
			m.Skipped++
			p.log.WithError(err).Debugf("skipping unreadable entry %s", name)
			return nil
		}
		if d.IsDir() {
			if name != path && core.IsReparsePoint(name) {
				return fs.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			// Permission denied or removed mid-walk: skip, don't fail.
			m.Skipped++
			p.log.WithError(err).Debugf("cannot stat %s", name)
			return nil
		}
		if info.Size() > 0 {
			m.SizeBytes += uint64(info.Size())
		}
		mod := info.ModTime()
		if !sawFile || mod.After(m.LatestMod) {
			m.LatestMod = mod
		}
		if mod.Before(m.EarliestMod) {
			m.EarliestMod = mod
		}
		sawFile = true
		return nil
	})
	if walkErr != nil {
		return Measurement{}, walkErr
	}

	if !sawFile {
		m.LatestMod = rootInfo.ModTime()
	}
	if m.Skipped > 0 {
		p.log.Warnf("%d unreadable entries skipped while measuring %s", m.Skipped, path)
	}
	return m, nil
}

// Inspect builds a TargetRecord for the directory at path. When no creation
// time is available the oldest modification time is used and the record is
// flagged as approximate.
func (p *Probe) Inspect(path string) (TargetRecord, error) {
	m, err := p.Measure(path)
	if err != nil {
		return TargetRecord{}, err
	}

	rec := TargetRecord{
		Path:       path,
		SizeBytes:  m.SizeBytes,
		LastUsedAt: m.LatestMod,
		Skipped:    m.Skipped,
		LooksValid: IsValidVenv(path),
	}

	created, err := p.birthTime(path)
	switch {
	case err == nil:
		rec.CreatedAt = created
	case errors.Is(err, core.ErrMetadataUnavailable):
		rec.CreatedAt = m.EarliestMod
		rec.CreatedApprox = true
	default:
		p.log.WithError(err).Debugf("creation time lookup failed for %s", path)
		rec.CreatedAt = m.EarliestMod
		rec.CreatedApprox = true
	}

	return rec, nil
}
