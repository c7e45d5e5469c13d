package venv

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// makeVenv creates dir/.venv with a pyvenv.cfg and a lib file of size bytes.
func makeVenv(t *testing.T, dir string, size int) string {
	t.Helper()
	venvPath := filepath.Join(dir, ".venv")
	require.NoError(t, os.MkdirAll(filepath.Join(venvPath, "lib", "site-packages"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(venvPath, "bin"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(venvPath, "pyvenv.cfg"), []byte("home = /usr/bin\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(venvPath, "lib", "site-packages", "blob"), make([]byte, size), 0o644))
	return venvPath
}

func setMtime(t *testing.T, path string, mod time.Time) {
	t.Helper()
	require.NoError(t, os.Chtimes(path, mod, mod))
}

func collect(t *testing.T, w *Walker, root string, recursive bool) ([]TargetRecord, error) {
	t.Helper()
	var recs []TargetRecord
	for rec, err := range w.Walk(t.Context(), root, recursive) {
		if err != nil {
			return recs, err
		}
		recs = append(recs, rec)
	}
	return recs, nil
}

func paths(recs []TargetRecord) []string {
	out := make([]string, 0, len(recs))
	for _, r := range recs {
		out = append(out, r.Path)
	}
	return out
}
