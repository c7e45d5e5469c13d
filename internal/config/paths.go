package config

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// MarkerName is the directory name that identifies a virtual environment.
const MarkerName = ".venv"

// VenvLayoutItems are entries commonly found inside a virtual environment.
var VenvLayoutItems = []string{
	"bin",     // Unix
	"Scripts", // Windows
	"lib",
	"include",
	"pyvenv.cfg",
}

// homeDir returns the user's home directory, or "" if it cannot be found.
func homeDir() string {
	if h, err := os.UserHomeDir(); err == nil {
		return h
	}
	return ""
}

// expandHome resolves a leading "~" to the home directory.
func expandHome(path string) string {
	if path == "~" {
		return homeDir()
	}
	if strings.HasPrefix(path, "~/") || strings.HasPrefix(path, `~\`) {
		if h := homeDir(); h != "" {
			return filepath.Join(h, path[2:])
		}
	}
	return path
}

// GetNeverDeletePaths returns paths that must NEVER be deleted under any
// circumstances, regardless of their name.
func GetNeverDeletePaths() []string {
	var paths []string
	if h := homeDir(); h != "" {
		paths = append(paths, h)
	}

	if runtime.GOOS == "windows" {
		sd := os.Getenv("SYSTEMDRIVE")
		if sd == "" {
			sd = "C:"
		}
		root := sd + `\`
		win := os.Getenv("WINDIR")
		if win == "" {
			win = filepath.Join(root, "Windows")
		}
		return append(paths,
			root,
			win,
			filepath.Join(root, "Program Files"),
			filepath.Join(root, "Program Files (x86)"),
			filepath.Join(root, "ProgramData"),
			filepath.Join(root, "Users"),
		)
	}

	return append(paths,
		"/",
		"/bin",
		"/boot",
		"/etc",
		"/home",
		"/lib",
		"/opt",
		"/root",
		"/sbin",
		"/usr",
		"/usr/local",
		"/var",
		"/System",
		"/Library",
		"/Applications",
		"/Users",
	)
}

// IsNeverDelete reports whether path matches an entry of GetNeverDeletePaths.
func IsNeverDelete(path string) bool {
	clean := filepath.Clean(path)
	for _, p := range GetNeverDeletePaths() {
		if samePath(clean, filepath.Clean(p)) {
			return true
		}
	}
	return false
}

func samePath(a, b string) bool {
	if runtime.GOOS == "windows" || runtime.GOOS == "darwin" {
		return strings.EqualFold(a, b)
	}
	return a == b
}

func isEOF(err error) bool {
	return errors.Is(err, io.EOF)
}
