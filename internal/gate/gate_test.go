package gate

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lakshaymaurya-felt/venvsweep/internal/config"
	"github.com/lakshaymaurya-felt/venvsweep/internal/core"
	"github.com/lakshaymaurya-felt/venvsweep/internal/venv"
)

func makeTarget(t *testing.T) (venv.TargetRecord, string) {
	t.Helper()
	parent := filepath.Join(t.TempDir(), "project")
	path := filepath.Join(parent, ".venv")
	require.NoError(t, os.MkdirAll(filepath.Join(path, "lib"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(path, "lib", "a.py"), []byte("print(1)"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(path, "pyvenv.cfg"), []byte("x"), 0o644))
	return venv.TargetRecord{Path: path, SizeBytes: 9}, parent
}

func listDir(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func TestDeleteDryRunLeavesFilesystemUnchanged(t *testing.T) {
	rec, parent := makeTarget(t)
	before := listDir(t, rec.Path)

	out := New(nil).Delete(rec, config.ModeDryRun)

	assert.Equal(t, Simulated, out.Kind)
	assert.Equal(t, uint64(9), out.Freed)
	assert.NoError(t, out.Err)
	assert.DirExists(t, rec.Path)
	assert.Equal(t, before, listDir(t, rec.Path))
	assert.Equal(t, []string{".venv"}, listDir(t, parent))
}

func TestDeleteForceRemovesEverything(t *testing.T) {
	rec, parent := makeTarget(t)

	out := New(nil).Delete(rec, config.ModeForce)

	assert.Equal(t, Deleted, out.Kind)
	assert.Equal(t, uint64(9), out.Freed)
	assert.NoDirExists(t, rec.Path)
	assert.Empty(t, listDir(t, parent), "no staging directory may be left behind")
}

func TestDeleteInteractiveAfterConfirmation(t *testing.T) {
	rec, _ := makeTarget(t)

	out := New(nil).Delete(rec, config.ModeInteractive)

	assert.Equal(t, Deleted, out.Kind)
	assert.NoDirExists(t, rec.Path)
}

func TestDeleteVanishedTarget(t *testing.T) {
	rec, _ := makeTarget(t)
	require.NoError(t, os.RemoveAll(rec.Path))

	out := New(nil).Delete(rec, config.ModeForce)

	assert.Equal(t, Vanished, out.Kind)
	assert.ErrorIs(t, out.Err, core.ErrTargetVanished)
}

func TestDeleteTargetReplacedByFile(t *testing.T) {
	rec, _ := makeTarget(t)
	require.NoError(t, os.RemoveAll(rec.Path))
	require.NoError(t, os.WriteFile(rec.Path, []byte("not a dir"), 0o644))

	out := New(nil).Delete(rec, config.ModeForce)

	assert.Equal(t, Vanished, out.Kind)
	assert.FileExists(t, rec.Path)
}

func TestDeleteReadOnlyParentIsDenied(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("mode bits are not enforced on Windows")
	}
	rec, parent := makeTarget(t)
	require.NoError(t, os.Chmod(parent, 0o555))
	t.Cleanup(func() { _ = os.Chmod(parent, 0o755) })

	out := New(nil).Delete(rec, config.ModeForce)

	assert.Equal(t, Denied, out.Kind)
	assert.ErrorIs(t, out.Err, core.ErrPermissionDenied)
	assert.DirExists(t, rec.Path)
}

func TestDeleteDeniedWhenPermissionCheckFails(t *testing.T) {
	rec, _ := makeTarget(t)
	g := New(nil)
	g.canModify = func(string) (bool, error) { return false, nil }

	out := g.Delete(rec, config.ModeDryRun)

	assert.Equal(t, Denied, out.Kind)
	assert.DirExists(t, rec.Path)
}

func TestDeleteRefusesNonMarkerPath(t *testing.T) {
	dir := t.TempDir()

	out := New(nil).Delete(venv.TargetRecord{Path: dir}, config.ModeForce)

	assert.Equal(t, Denied, out.Kind)
	assert.ErrorIs(t, out.Err, core.ErrProtectedPath)
	assert.DirExists(t, dir)
}

func TestDeleteQueryModeNeverDeletes(t *testing.T) {
	rec, _ := makeTarget(t)

	out := New(nil).Delete(rec, config.ModeQuery)

	assert.Equal(t, Failed, out.Kind)
	assert.DirExists(t, rec.Path)
}

func TestDeleteInterruptedRemovalIsPartial(t *testing.T) {
	rec, parent := makeTarget(t)
	g := New(nil)
	g.removeAll = func(path string) error {
		// Lose one file, then fail.
		_ = os.Remove(filepath.Join(path, "pyvenv.cfg"))
		return errors.New("device busy")
	}

	out := g.Delete(rec, config.ModeForce)

	assert.Equal(t, Partial, out.Kind)
	assert.ErrorIs(t, out.Err, core.ErrPartialDeletion)
	assert.Equal(t, rec.Path, out.Path)
	assert.Zero(t, out.Freed)
	// The remains are back at the original path for the user to inspect.
	assert.DirExists(t, rec.Path)
	assert.NoFileExists(t, filepath.Join(rec.Path, "pyvenv.cfg"))
	assert.Equal(t, []string{".venv"}, listDir(t, parent))
}

func TestDeletePartialReportsStagedPathWhenRestoreFails(t *testing.T) {
	rec, _ := makeTarget(t)
	g := New(nil)
	renames := 0
	g.rename = func(oldpath, newpath string) error {
		renames++
		if renames > 1 {
			return errors.New("rename refused")
		}
		return os.Rename(oldpath, newpath)
	}
	g.removeAll = func(string) error { return errors.New("io error") }

	out := g.Delete(rec, config.ModeForce)

	assert.Equal(t, Partial, out.Kind)
	assert.NotEqual(t, rec.Path, out.Path)
	assert.DirExists(t, out.Path)
	assert.Contains(t, out.Message(), out.Path)
}

func TestDeleteStagingFailureLeavesTargetAsFound(t *testing.T) {
	rec, _ := makeTarget(t)
	g := New(nil)
	g.rename = func(string, string) error { return errors.New("cross-device") }

	out := g.Delete(rec, config.ModeForce)

	assert.Equal(t, Failed, out.Kind)
	assert.DirExists(t, rec.Path)
	assert.FileExists(t, filepath.Join(rec.Path, "pyvenv.cfg"))
}

func TestKindHelpers(t *testing.T) {
	assert.Equal(t, "partial", Partial.String())
	assert.True(t, Partial.IsProblem())
	assert.True(t, Vanished.IsProblem())
	assert.False(t, Deleted.IsProblem())
	assert.False(t, Declined.IsProblem())
	assert.Equal(t, Declined, DeclinedOutcome("/x/.venv").Kind)
}

func TestZeroOutcomeIsUnset(t *testing.T) {
	var out Outcome
	assert.Equal(t, Unset, out.Kind)
	assert.NotEqual(t, Simulated, out.Kind)
	assert.Equal(t, "unset", out.Kind.String())
	assert.True(t, out.Kind.IsProblem())
	assert.Equal(t, "kind(99)", Kind(99).String())

	data, err := json.Marshal(Outcome{Path: "/p/.venv"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"kind":"unset","path":"/p/.venv"}`, string(data))
}

func TestOutcomeJSONCarriesError(t *testing.T) {
	out := Outcome{Kind: Denied, Path: "/p/.venv", Err: errors.New("no write access")}

	data, err := json.Marshal(out)
	require.NoError(t, err)
	assert.JSONEq(t, `{"kind":"denied","path":"/p/.venv","error":"no write access"}`, string(data))

	data, err = json.Marshal(Outcome{Kind: Deleted, Path: "/p/.venv", Freed: 10})
	require.NoError(t, err)
	assert.JSONEq(t, `{"kind":"deleted","path":"/p/.venv","freed_bytes":10}`, string(data))
}
