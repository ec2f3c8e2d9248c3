// Package deeplink registers the app's custom URL scheme with the OS and
// forwards URLs delivered through it (OAuth redirects, mostly) to the
// frontend.
package deeplink

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync/atomic"

	"github.com/mythoslabs/mythos/internal/events"
	"github.com/mythoslabs/mythos/internal/host"
	"github.com/mythoslabs/mythos/internal/logging"
)

var (
	// ErrAlreadyRegistered is returned by every Register call after the first.
	ErrAlreadyRegistered = errors.New("deep link registration already attempted")
	// ErrUnsupported is returned when the platform cannot register a scheme
	// from the running process, e.g. an unbundled macOS binary.
	ErrUnsupported = errors.New("url scheme registration unsupported")
	// ErrInvalidScheme is returned for names outside the RFC 3986 scheme grammar.
	ErrInvalidScheme = errors.New("invalid url scheme")
)

var schemePattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9+.\-]*$`)

// ValidateScheme checks name against the RFC 3986 scheme grammar.
func ValidateScheme(name string) error {
	if !schemePattern.MatchString(name) {
		return fmt.Errorf("%w: %q", ErrInvalidScheme, name)
	}
	return nil
}

// Policy decides what a failed registration does to application setup.
type Policy int

const (
	// PolicyLenient logs the failure and lets setup continue.
	PolicyLenient Policy = iota
	// PolicyStrict aborts setup.
	PolicyStrict
)

// ParsePolicy accepts "strict" or "lenient"; empty means lenient.
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "lenient":
		return PolicyLenient, nil
	case "strict":
		return PolicyStrict, nil
	}
	return PolicyLenient, fmt.Errorf("unknown deep link policy %q (want strict or lenient)", s)
}

func (p Policy) String() string {
	if p == PolicyStrict {
		return "strict"
	}
	return "lenient"
}

// Listener owns one scheme. Registration is attempted at most once per
// Listener; URL forwarding works regardless of its outcome.
type Listener struct {
	scheme     string
	policy     Policy
	attempted  atomic.Bool
	registered atomic.Bool
}

// NewListener validates scheme and returns an unregistered Listener.
func NewListener(scheme string, policy Policy) (*Listener, error) {
	if err := ValidateScheme(scheme); err != nil {
		return nil, err
	}
	return &Listener{scheme: scheme, policy: policy}, nil
}

// Scheme returns the scheme this listener registers.
func (l *Listener) Scheme() string { return l.scheme }

// Policy returns the failure policy.
func (l *Listener) Policy() Policy { return l.policy }

// Registered reports whether the OS accepted the registration.
func (l *Listener) Registered() bool { return l.registered.Load() }

// Register asks r to route the scheme to this process. Under PolicyStrict a
// failure is returned; under PolicyLenient it is logged and nil is returned.
func (l *Listener) Register(r host.Registrar) error {
	if !l.attempted.CompareAndSwap(false, true) {
		return ErrAlreadyRegistered
	}

	err := r.RegisterURLScheme(l.scheme)
	if err == nil {
		l.registered.Store(true)
		logging.Info("deep link scheme registered", "scheme", l.scheme)
		return nil
	}

	if l.policy == PolicyStrict {
		logging.Error("failed to register deep link", "scheme", l.scheme, "error", err)
		return fmt.Errorf("deep link setup: %w", err)
	}

	logging.Warn("deep link scheme not registered (expected for unbundled or dev builds)",
		"scheme", l.scheme, "error", err)
	return nil
}

// OnURLReceived publishes each URL, in order and unchanged, on the
// deep-link topic. A failed publish is logged and the rest still go out.
// It returns how many were published.
func (l *Listener) OnURLReceived(p host.Publisher, urls []string) int {
	sent := 0
	for _, u := range urls {
		if err := p.Publish(events.TopicDeepLinkNewURL, u); err != nil {
			logging.Warn("deep link dropped", "url", u, "error", err)
			continue
		}
		sent++
	}
	if sent > 0 {
		logging.Debug("deep links forwarded", "count", sent)
	}
	return sent
}

// URLsFromArgs returns the process arguments that are URLs with scheme.
// On Windows and Linux the OS launches the handler with the URL as an
// argument, so this covers both first launch and second-instance launches.
func URLsFromArgs(scheme string, args []string) []string {
	prefix := strings.ToLower(scheme) + "://"
	var urls []string
	for _, a := range args {
		if len(a) >= len(prefix) && strings.ToLower(a[:len(prefix)]) == prefix {
			urls = append(urls, a)
		}
	}
	return urls
}
