package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lakshaymaurya-felt/venvsweep/internal/core"
)

func TestModeFromFlags(t *testing.T) {
	tests := []struct {
		name                 string
		query, force, dryRun bool
		want                 Mode
		wantErr              bool
	}{
		{name: "none", want: ModeInteractive},
		{name: "query", query: true, want: ModeQuery},
		{name: "force", force: true, want: ModeForce},
		{name: "dry-run", dryRun: true, want: ModeDryRun},
		{name: "force and dry-run simulates", force: true, dryRun: true, want: ModeDryRun},
		{name: "query and force", query: true, force: true, wantErr: true},
		{name: "query and dry-run", query: true, dryRun: true, wantErr: true},
		{name: "all three", query: true, force: true, dryRun: true, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ModeFromFlags(tt.query, tt.force, tt.dryRun)
			if tt.wantErr {
				require.ErrorIs(t, err, core.ErrInvalidFlags)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestModeDeletes(t *testing.T) {
	assert.False(t, ModeQuery.Deletes())
	assert.True(t, ModeInteractive.Deletes())
	assert.True(t, ModeForce.Deletes())
	assert.True(t, ModeDryRun.Deletes())
	assert.Equal(t, "dry-run", ModeDryRun.String())
	assert.Equal(t, "mode(9)", Mode(9).String())
}

func TestParseSortKey(t *testing.T) {
	for in, want := range map[string]SortKey{
		"": "", "path": SortPath, "SIZE": SortSize, " created ": SortCreated, "last-used": SortLastUsed,
	} {
		got, err := ParseSortKey(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseSortKey("age")
	require.ErrorIs(t, err, core.ErrInvalidFlags)
}

func TestResolve(t *testing.T) {
	dir := t.TempDir()

	cfg, err := Options{StartPath: dir, Recursive: true, Force: true, Sort: "size", Verbosity: 2}.Resolve()
	require.NoError(t, err)
	assert.Equal(t, ScanConfig{StartPath: dir, Recursive: true, Mode: ModeForce, Sort: SortSize, Verbosity: 2}, cfg)
}

func TestResolveChecksFlagsBeforePath(t *testing.T) {
	_, err := Options{StartPath: filepath.Join(t.TempDir(), "missing"), Query: true, Force: true}.Resolve()
	require.ErrorIs(t, err, core.ErrInvalidFlags)
	assert.NotErrorIs(t, err, core.ErrInvalidStartPath)
}

func TestResolveDefaultsToWorkingDirectory(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	cfg, err := Options{}.Resolve()
	require.NoError(t, err)
	want, err := filepath.EvalSymlinks(dir)
	require.NoError(t, err)
	got, err := filepath.EvalSymlinks(cfg.StartPath)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestResolveStartPathErrors(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "file.txt")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))

	_, err := ResolveStartPath(filepath.Join(dir, "missing"))
	require.ErrorIs(t, err, core.ErrInvalidStartPath)

	_, err = ResolveStartPath(file)
	require.ErrorIs(t, err, core.ErrInvalidStartPath)
	assert.Contains(t, err.Error(), "not a directory")
}

func TestResolveStartPathUnreadable(t *testing.T) {
	if runtime.GOOS == "windows" || os.Geteuid() == 0 {
		t.Skip("needs POSIX permissions and a non-root user")
	}
	dir := filepath.Join(t.TempDir(), "locked")
	require.NoError(t, os.Mkdir(dir, 0o000))
	t.Cleanup(func() { _ = os.Chmod(dir, 0o755) })

	_, err := ResolveStartPath(dir)
	require.ErrorIs(t, err, core.ErrInvalidStartPath)
}

func TestResolveStartPathMakesAbsolute(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0o755))
	t.Chdir(dir)

	got, err := ResolveStartPath("sub")
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(got))
	assert.Equal(t, "sub", filepath.Base(got))
}

func TestIsNeverDelete(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.True(t, IsNeverDelete(home))
	assert.True(t, IsNeverDelete(home+string(filepath.Separator)))
	assert.False(t, IsNeverDelete(filepath.Join(home, "proj", MarkerName)))
	if runtime.GOOS != "windows" {
		assert.True(t, IsNeverDelete("/usr"))
		assert.False(t, IsNeverDelete("/usr/local/lib/proj/.venv"))
	}
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	assert.Equal(t, home, expandHome("~"))
	assert.Equal(t, filepath.Join(home, "src"), expandHome("~/src"))
	assert.Equal(t, "/abs/~x", expandHome("/abs/~x"))
}
