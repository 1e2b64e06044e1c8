// SPDX-License-Identifier: EPL-2.0

package sampler

import (
	"os"
	"path/filepath"
)

const (
	assetsDir  = "Assets"
	samplesDir = "Samples"
	maxWalkUp  = 10
)

// FindSamplesDir looks for Assets/Samples next to the executable and up to
// ten of its parents, then under the working directory.
func FindSamplesDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		exe = ""
	}
	cwd, err := os.Getwd()
	if err != nil {
		cwd = ""
	}
	return findSamplesDir(filepath.Dir(exe), cwd)
}

func findSamplesDir(start, cwd string) (string, error) {
	if start != "" && start != "." {
		dir := start
		for range maxWalkUp {
			if cand := filepath.Join(dir, assetsDir, samplesDir); isDir(cand) {
				return cand, nil
			}
			parent := filepath.Dir(dir)
			if parent == dir {
				break
			}
			dir = parent
		}
	}

	if cwd != "" {
		if cand := filepath.Join(cwd, assetsDir, samplesDir); isDir(cand) {
			return cand, nil
		}
	}
	return "", ErrNoSamplesDir
}

func isDir(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && fi.IsDir()
}
