package config

import (
	"os"
	"path/filepath"
	"strings"
)

// FindProjectRoot walks up from start to the nearest directory containing
// a project file, a .git directory or a go.mod file. It returns "" when
// none is found.
func FindProjectRoot(start string) string {
	start = strings.TrimSpace(start)
	if start == "" {
		return ""
	}
	info, err := os.Stat(start)
	if err == nil && !info.IsDir() {
		start = filepath.Dir(start)
	}
	current := start
	for {
		if isProjectRoot(current) {
			return current
		}
		parent := filepath.Dir(current)
		if parent == current {
			return ""
		}
		current = parent
	}
}

func isProjectRoot(dir string) bool {
	if fi, err := os.Stat(filepath.Join(dir, ProjectFile)); err == nil && !fi.IsDir() {
		return true
	}
	if fi, err := os.Stat(filepath.Join(dir, ".git")); err == nil && fi.IsDir() {
		return true
	}
	if fi, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil && !fi.IsDir() {
		return true
	}
	return false
}
