package app

import (
	"fmt"
	"os"
	"path/filepath"
)

// rootMarker identifies the app root: the directory holding the bundled catalog.
var rootMarker = filepath.Join("input", "artifact_scorer", "catalog.yaml")

func FindRoot() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	// Support running from repo root, from internal/*, or from cmd/*.
	dir := cwd
	for i := 0; i < 10; i++ {
		if _, err := os.Stat(filepath.Join(dir, rootMarker)); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", fmt.Errorf("cannot find app root from %q (expected to find %s in this dir or any parent)", cwd, rootMarker)
}

// resolve makes a config path absolute against the app root.
func resolve(appRoot, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(appRoot, p)
}
