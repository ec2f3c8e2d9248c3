// Package defaults resolves where Mythos keeps per-user files.
//
// Platform paths:
//
//	macOS:   ~/Library/Application Support/Mythos/
//	Windows: %AppData%\Mythos\
//	Linux:   ~/.config/mythos/
//
// Override with MYTHOS_DATA_DIR environment variable.
package defaults

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// DataDir returns the platform-appropriate data directory.
func DataDir() (string, error) {
	if dir := os.Getenv("MYTHOS_DATA_DIR"); dir != "" {
		return dir, nil
	}

	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine config directory: %w", err)
	}

	// Linux: lowercase per XDG convention
	if runtime.GOOS == "linux" {
		return filepath.Join(configDir, "mythos"), nil
	}
	return filepath.Join(configDir, "Mythos"), nil
}

// ConfigPath is the optional user config overlay inside the data directory.
func ConfigPath() (string, error) {
	dir, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}
