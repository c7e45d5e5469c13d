package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/lakshaymaurya-felt/venvsweep/internal/core"
)

// Mode selects what the pipeline does with discovered targets.
type Mode int

const (
	// ModeInteractive asks before each deletion. It is the default.
	ModeInteractive Mode = iota
	// ModeQuery reports targets and never mutates the filesystem.
	ModeQuery
	// ModeForce deletes every target without asking.
	ModeForce
	// ModeDryRun reports what would be deleted without deleting.
	ModeDryRun
)

var modeNames = []string{"interactive", "query", "force", "dry-run"}

func (m Mode) String() string {
	if m < 0 || int(m) >= len(modeNames) {
		return fmt.Sprintf("mode(%d)", int(m))
	}
	return modeNames[m]
}

// Deletes reports whether the mode can reach the Acting state.
func (m Mode) Deletes() bool {
	return m != ModeQuery
}

// SortKey orders records for presentation.
type SortKey string

const (
	SortPath     SortKey = "path"
	SortSize     SortKey = "size"
	SortCreated  SortKey = "created"
	SortLastUsed SortKey = "last-used"
)

// ParseSortKey accepts the --sort flag values. An empty string yields "".
func ParseSortKey(s string) (SortKey, error) {
	switch k := SortKey(strings.ToLower(strings.TrimSpace(s))); k {
	case "", SortPath, SortSize, SortCreated, SortLastUsed:
		return k, nil
	}
	return "", fmt.Errorf("%w: unknown sort key %q (want path, size, created or last-used)", core.ErrInvalidFlags, s)
}

// Options holds raw front-end input before validation.
type Options struct {
	StartPath string
	Recursive bool
	Query     bool
	Force     bool
	DryRun    bool
	Verbosity int
	Sort      string
	Reverse   bool
	JSON      bool
}

// ScanConfig holds the immutable parameters of one pipeline run. Build it
// with Options.Resolve; it is passed by value and never modified afterwards.
type ScanConfig struct {
	StartPath string
	Recursive bool
	Mode      Mode
	Verbosity int
	Sort      SortKey
	Reverse   bool
	JSON      bool
}

// ModeFromFlags maps the mutually exclusive mode flags to a Mode.
// Query cannot be combined with force or dry-run; force with dry-run
// simulates.
func ModeFromFlags(query, force, dryRun bool) (Mode, error) {
	switch {
	case query && force:
		return 0, fmt.Errorf("%w: --query cannot be combined with --force", core.ErrInvalidFlags)
	case query && dryRun:
		return 0, fmt.Errorf("%w: --query cannot be combined with --dry-run", core.ErrInvalidFlags)
	case query:
		return ModeQuery, nil
	case dryRun:
		return ModeDryRun, nil
	case force:
		return ModeForce, nil
	}
	return ModeInteractive, nil
}

// Resolve validates the options and produces a ScanConfig. Flag checks run
// before any filesystem access. The start path defaults to the working
// directory and must be an existing, readable directory.
func (o Options) Resolve() (ScanConfig, error) {
	mode, err := ModeFromFlags(o.Query, o.Force, o.DryRun)
	if err != nil {
		return ScanConfig{}, err
	}
	sortKey, err := ParseSortKey(o.Sort)
	if err != nil {
		return ScanConfig{}, err
	}
	if o.Verbosity < 0 {
		return ScanConfig{}, fmt.Errorf("%w: negative verbosity", core.ErrInvalidFlags)
	}

	start, err := ResolveStartPath(o.StartPath)
	if err != nil {
		return ScanConfig{}, err
	}

	return ScanConfig{
		StartPath: start,
		Recursive: o.Recursive,
		Mode:      mode,
		Verbosity: o.Verbosity,
		Sort:      sortKey,
		Reverse:   o.Reverse,
		JSON:      o.JSON,
	}, nil
}

// ResolveStartPath returns the absolute, cleaned start path after checking
// that it exists, is a directory and can be listed.
func ResolveStartPath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("%w: cannot determine working directory: %v", core.ErrInvalidStartPath, err)
		}
		path = wd
	}

	abs, err := filepath.Abs(expandHome(path))
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", core.ErrInvalidStartPath, path, err)
	}

	info, err := os.Stat(abs)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", core.ErrInvalidStartPath, abs, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%w: %s is not a directory", core.ErrInvalidStartPath, abs)
	}

	f, err := os.Open(abs)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", core.ErrInvalidStartPath, abs, err)
	}
	defer f.Close()
	if _, err := f.ReadDir(1); err != nil && !isEOF(err) {
		return "", fmt.Errorf("%w: %s is not readable: %v", core.ErrInvalidStartPath, abs, err)
	}

	return abs, nil
}
