package cli

import (
	"github.com/spf13/cobra"

	"github.com/mythoslabs/mythos/internal/bridge"
)

// systemOpener launches the OS browser; replaced in tests.
var systemOpener = bridge.OpenInSystemBrowser

// OpenCmd opens an http(s) URL in the system browser, the same path the
// web view uses to start an OAuth login.
func OpenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "open <url>",
		Short: "Open an http or https URL in the system browser",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return bridge.NewShellService(systemOpener).OpenExternal(args[0])
		},
	}
}
