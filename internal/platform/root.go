package platform

import (
	"fmt"
	"os"
	"path/filepath"
)

// ConfigFileName is the project-level configuration file looked up by FindConfig.
const ConfigFileName = ".nbkit.yaml"

// FindConfig recursively looks upwards from startDir for ConfigFileName and
// returns the directory holding it.
func FindConfig(startDir string) (string, error) {
	abs, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	dir := abs
	for {
		if hasFile(dir, ConfigFileName) {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return "", fmt.Errorf("%s not found", ConfigFileName)
}

func hasFile(dir, name string) bool {
	info, err := os.Stat(filepath.Join(dir, name))
	return err == nil && !info.IsDir()
}
