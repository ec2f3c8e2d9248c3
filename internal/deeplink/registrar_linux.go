//go:build linux

package deeplink

import (
	"fmt"
	"os"
	"path/filepath"
)

func (r *OSRegistrar) applicationsDir() (string, error) {
	base := r.dataHome
	if base == "" {
		base = os.Getenv("XDG_DATA_HOME")
	}
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("cannot determine home directory: %w", err)
		}
		base = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(base, "applications"), nil
}

func (r *OSRegistrar) register(scheme string) error {
	dir, err := r.applicationsDir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create %s: %w", dir, err)
	}

	name := desktopEntryName(r.AppName, scheme)
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(desktopEntry(r.AppName, r.Exe, scheme)), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	tool, err := r.lookPath("xdg-mime")
	if err != nil {
		return fmt.Errorf("%w: xdg-mime not found", ErrUnsupported)
	}
	return r.run(tool, "default", name, "x-scheme-handler/"+scheme)
}
