package sbutil

import (
	"os"
	"path/filepath"
)

// FindUp looks for a file with the given name in dir and then in each of
// its parents, returning its absolute path, or "" if none was found.
func FindUp(dir, name string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	for {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		} else if !os.IsNotExist(err) {
			return "", err
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

// FindWDFile is FindUp starting from the current working directory.
func FindWDFile(name string) (string, error) {
	wd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return FindUp(wd, name)
}
