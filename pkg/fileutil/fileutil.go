// Package fileutil provides file system utility functions.
package fileutil

import (
	"os"
	"path/filepath"
	"strings"
)

// EnsureExtension appends ext to path unless it already carries it
// (case-insensitive). ext must include the leading dot.
func EnsureExtension(path, ext string) string {
	if strings.EqualFold(filepath.Ext(path), ext) {
		return path
	}
	return path + ext
}

// Exists reports whether path exists and is a regular file.
func Exists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}
