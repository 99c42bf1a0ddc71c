//go:build !unix

package config

import (
	"os"
	"path/filepath"
)

// lockFile only ensures the directory exists; advisory locking is unix-only.
func lockFile(path string, _ bool) (func(), error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}
	return func() {}, nil
}
