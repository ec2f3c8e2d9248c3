//go:build windows

package deeplink

import (
	"fmt"

	"golang.org/x/sys/windows/registry"
)

// register writes the per-user protocol handler under HKCU\Software\Classes,
// which needs no elevation.
func (r *OSRegistrar) register(scheme string) error {
	k, _, err := registry.CreateKey(registry.CURRENT_USER, `Software\Classes\`+scheme, registry.ALL_ACCESS)
	if err != nil {
		return fmt.Errorf("create protocol key: %w", err)
	}
	defer k.Close()

	if err := k.SetStringValue("", "URL:"+r.AppName+" Protocol"); err != nil {
		return err
	}
	if err := k.SetStringValue("URL Protocol", ""); err != nil {
		return err
	}

	cmd, _, err := registry.CreateKey(k, `shell\open\command`, registry.ALL_ACCESS)
	if err != nil {
		return fmt.Errorf("create open command key: %w", err)
	}
	defer cmd.Close()

	return cmd.SetStringValue("", windowsOpenCommand(r.Exe))
}
