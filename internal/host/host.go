// Package host defines the narrow surface the shell needs from its GUI
// runtime: publishing named events to the web view and asking the OS to
// route a custom URL scheme to this process.
package host

import (
	"errors"
	"fmt"
)

var (
	// ErrNotRunning is returned when publishing to a runtime that has not
	// started or has begun shutting down.
	ErrNotRunning = errors.New("host runtime not running")
	// ErrCancelled is returned when a runtime hook cancelled the event.
	ErrCancelled = errors.New("event cancelled by host runtime")
	// ErrNoRegistrar is returned when the runtime has no way to register
	// URL schemes with the OS.
	ErrNoRegistrar = errors.New("no url scheme registrar")
)

// Publisher emits a text payload on a named topic of the host event bus.
type Publisher interface {
	Publish(topic, payload string) error
}

// Registrar asks the OS to deliver URLs with the given scheme to this app.
type Registrar interface {
	RegisterURLScheme(name string) error
}

// Runtime is everything the shell depends on.
type Runtime interface {
	Publisher
	Registrar
}

// PublishError reports that the event bus rejected a publish.
type PublishError struct {
	Topic string
	Err   error
}

func (e *PublishError) Error() string {
	return fmt.Sprintf("publish %s: %v", e.Topic, e.Err)
}

func (e *PublishError) Unwrap() error { return e.Err }

// RegistrationError reports that the OS refused a URL scheme registration.
type RegistrationError struct {
	Scheme string
	Err    error
}

func (e *RegistrationError) Error() string {
	return fmt.Sprintf("register url scheme %q: %v", e.Scheme, e.Err)
}

func (e *RegistrationError) Unwrap() error { return e.Err }

// registrationError wraps err unless it already is a *RegistrationError.
func registrationError(scheme string, err error) error {
	var re *RegistrationError
	if errors.As(err, &re) {
		return err
	}
	return &RegistrationError{Scheme: scheme, Err: err}
}

// register runs r for scheme and normalizes the error.
func register(r Registrar, scheme string) error {
	if r == nil {
		return &RegistrationError{Scheme: scheme, Err: ErrNoRegistrar}
	}
	if err := r.RegisterURLScheme(scheme); err != nil {
		return registrationError(scheme, err)
	}
	return nil
}
