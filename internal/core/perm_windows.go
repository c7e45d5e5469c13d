//go:build windows

package core

import (
	"os"

	"golang.org/x/sys/windows"
)

// CanModify reports whether the current process may create and remove
// entries in dir. On Windows a read-only attribute on the directory is the
// signal users set deliberately, so that is what we honour.
func CanModify(dir string) (bool, error) {
	if _, err := os.Stat(dir); err != nil {
		if os.IsPermission(err) {
			return false, nil
		}
		return false, err
	}
	pathp, err := windows.UTF16PtrFromString(dir)
	if err != nil {
		return false, err
	}
	attrs, err := windows.GetFileAttributes(pathp)
	if err != nil {
		return false, nil
	}
	return attrs&windows.FILE_ATTRIBUTE_READONLY == 0, nil
}

// IsReparsePoint returns true if the path is a Windows junction or symlink
// (FILE_ATTRIBUTE_REPARSE_POINT). Must be checked to avoid infinite recursion.
func IsReparsePoint(path string) bool {
	pathp, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return false
	}
	attrs, err := windows.GetFileAttributes(pathp)
	if err != nil {
		return false
	}
	return attrs&windows.FILE_ATTRIBUTE_REPARSE_POINT != 0
}
