package host

import (
	"sync/atomic"
)

// Emitter is the part of the Wails event manager the shell uses. Emit
// reports true when a hook cancelled the event.
type Emitter interface {
	Emit(name string, data ...any) bool
}

// Wails adapts a Wails application's event manager to Runtime. The emitter
// is attached after construction because services bound at
// application.New already need a Publisher.
type Wails struct {
	emitter   atomic.Pointer[emitterBox]
	registrar Registrar
	closed    atomic.Bool
}

type emitterBox struct{ Emitter }

// NewWails returns an unattached runtime using registrar for URL schemes.
func NewWails(registrar Registrar) *Wails {
	return &Wails{registrar: registrar}
}

// Attach binds the running application's event manager (app.Event).
func (w *Wails) Attach(e Emitter) {
	w.emitter.Store(&emitterBox{e})
}

// Publish emits payload to the frontend as a Wails custom event.
func (w *Wails) Publish(topic, payload string) error {
	box := w.emitter.Load()
	if box == nil || w.closed.Load() {
		return &PublishError{Topic: topic, Err: ErrNotRunning}
	}
	if box.Emit(topic, payload) {
		return &PublishError{Topic: topic, Err: ErrCancelled}
	}
	return nil
}

// RegisterURLScheme delegates to the OS registrar.
func (w *Wails) RegisterURLScheme(name string) error {
	return register(w.registrar, name)
}

// Close marks the runtime as shutting down.
func (w *Wails) Close() {
	w.closed.Store(true)
}
