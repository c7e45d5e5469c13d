//go:build !windows

package core

import (
	"os"

	"golang.org/x/sys/unix"
)

// CanModify reports whether the current process may create and remove
// entries in dir. Both the owner write bit and access(2) must agree: the
// mode bit alone misses ACLs and read-only mounts, and access(2) alone is
// always true for root.
func CanModify(dir string) (bool, error) {
	info, err := os.Stat(dir)
	if err != nil {
		if os.IsPermission(err) {
			return false, nil
		}
		return false, err
	}
	if info.Mode().Perm()&0o200 == 0 {
		return false, nil
	}
	if err := unix.Access(dir, unix.W_OK|unix.X_OK); err != nil {
		return false, nil
	}
	return true, nil
}

// IsReparsePoint is a no-op on Unix; symlinks are detected from the
// directory entry type.
func IsReparsePoint(path string) bool {
	return false
}
