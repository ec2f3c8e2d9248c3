//go:build !desktop

package cli

import "github.com/mythoslabs/mythos/internal/logging"

// RunDesktop falls back to headless mode when built without desktop support.
// Build with -tags desktop for the native window.
func RunDesktop(args []string) error {
	logging.Warn("desktop mode not available in this build, running headless")
	return RunHeadless(args)
}
