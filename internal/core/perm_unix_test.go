//go:build !windows

package core

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanModify(t *testing.T) {
	tests := []struct {
		name string
		mode os.FileMode
		want bool
	}{
		{"owner writable", 0o755, true},
		{"owner write only", 0o300, true},
		// The mode bit decides even for root, where access(2) always passes.
		{"read only", 0o555, false},
		{"no write bit", 0o500, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := filepath.Join(t.TempDir(), "d")
			require.NoError(t, os.Mkdir(dir, 0o755))
			require.NoError(t, os.Chmod(dir, tt.mode))
			t.Cleanup(func() { _ = os.Chmod(dir, 0o755) })

			ok, err := CanModify(dir)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ok)
		})
	}
}

func TestCanModifyMissingDirectory(t *testing.T) {
	ok, err := CanModify(filepath.Join(t.TempDir(), "gone"))
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.False(t, ok)
}

func TestCanModifyUnreachableDirectory(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("root can stat through any directory")
	}
	parent := filepath.Join(t.TempDir(), "locked")
	dir := filepath.Join(parent, "inner")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.Chmod(parent, 0o000))
	t.Cleanup(func() { _ = os.Chmod(parent, 0o755) })

	ok, err := CanModify(dir)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestIsReparsePointIsAlwaysFalse(t *testing.T) {
	assert.False(t, IsReparsePoint(t.TempDir()))
}
