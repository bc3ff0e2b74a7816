// Package config resolves configuration and data paths.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Dir returns the leaklens config directory, creating it if needed.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	dir := filepath.Join(home, ".config", "leaklens")
	if err := os.MkdirAll(dir, 0750); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}
	return dir, nil
}

// DatabasePath returns the report database location, honoring the
// database.path setting when present.
func DatabasePath() (string, error) {
	if path := viper.GetString("database.path"); path != "" {
		return expandPath(path)
	}

	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "reports.db"), nil
}

func expandPath(path string) (string, error) {
	if len(path) > 0 && path[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to expand path %s: %w", path, err)
		}
		return filepath.Join(home, path[1:]), nil
	}
	return path, nil
}
