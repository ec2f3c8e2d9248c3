package bridge

import (
	"errors"
	"fmt"
	"net/url"
	"os/exec"
	"runtime"
	"strings"

	"github.com/mythoslabs/mythos/internal/logging"
)

// ErrURLNotAllowed is returned for URLs the shell refuses to hand to the OS.
var ErrURLNotAllowed = errors.New("only http and https urls can be opened")

// ValidateExternalURL accepts absolute http and https URLs with a host.
func ValidateExternalURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrURLNotAllowed, err)
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https":
	default:
		return fmt.Errorf("%w: %q", ErrURLNotAllowed, u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("%w: missing host", ErrURLNotAllowed)
	}
	return nil
}

// ShellService lets the web view open pages (OAuth provider logins) in the
// system browser. The provider then redirects back through the deep link.
type ShellService struct {
	open func(url string) error
}

// NewShellService returns a service that opens allowed URLs with open.
func NewShellService(open func(url string) error) *ShellService {
	return &ShellService{open: open}
}

// OpenExternal opens rawURL in the default browser.
func (s *ShellService) OpenExternal(rawURL string) error {
	if err := ValidateExternalURL(rawURL); err != nil {
		logging.Warn("refused to open url", "error", err)
		return err
	}
	if err := s.open(rawURL); err != nil {
		return fmt.Errorf("open %s: %w", rawURL, err)
	}
	return nil
}

// OpenInSystemBrowser launches the platform URL opener. Used when no Wails
// runtime is available.
func OpenInSystemBrowser(rawURL string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", rawURL)
	case "linux":
		cmd = exec.Command("xdg-open", rawURL)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", rawURL)
	default:
		return fmt.Errorf("no url opener for %s", runtime.GOOS)
	}
	return cmd.Start()
}
