// Package fileurl provides filesystem path helpers.
package fileurl

import (
	"os"
	"path/filepath"
	"strings"
)

// IsExist determines if the given path exists.
func IsExist(dst string) bool {
	_, err := os.Stat(dst)
	if err != nil {
		return os.IsExist(err)
	}
	return true
}

// IsDir determines if the given path is a directory.
func IsDir(path string) bool {
	s, err := os.Stat(path)
	if err != nil {
		return false
	}
	return s.IsDir()
}

// CreatePath creates the parent directory of dst if it does not exist.
func CreatePath(dst string, perm os.FileMode) error {
	dir := filepath.Dir(dst)
	if dir == "" || dir == "." {
		return nil
	}
	return os.MkdirAll(dir, perm)
}

// GetExePath returns the directory containing the running binary.
func GetExePath() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	return filepath.Dir(exe)
}

// PathSuffixCheckAdd appends suffix to p unless it already ends with it.
func PathSuffixCheckAdd(p string, suffix string) string {
	if strings.HasSuffix(p, suffix) {
		return p
	}
	return p + suffix
}
