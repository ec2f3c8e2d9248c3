package host

import (
	"context"

	"github.com/mythoslabs/mythos/internal/events"
	"github.com/mythoslabs/mythos/internal/logging"
)

// Bus is an in-process Runtime used when no native window exists.
// Events go through an events.Subject with in-order delivery.
type Bus struct {
	subject   *events.Subject
	registrar Registrar
}

// NewBus creates a Bus. registrar may be nil, in which case every
// registration fails with ErrNoRegistrar.
func NewBus(registrar Registrar, opts ...events.SubjectOption) *Bus {
	opts = append([]events.SubjectOption{
		events.WithSyncDelivery(),
		events.WithLogger(logging.Logger()),
	}, opts...)
	return &Bus{
		subject:   events.NewSubject(opts...),
		registrar: registrar,
	}
}

// Publish queues payload on topic.
func (b *Bus) Publish(topic, payload string) error {
	if err := events.Emit(b.subject, topic, payload); err != nil {
		return &PublishError{Topic: topic, Err: err}
	}
	return nil
}

// RegisterURLScheme delegates to the configured registrar.
func (b *Bus) RegisterURLScheme(name string) error {
	return register(b.registrar, name)
}

// Subscribe calls fn for every payload published on topic.
func (b *Bus) Subscribe(topic string, fn func(payload string)) (unsubscribe func()) {
	sub := events.Subscribe(b.subject, topic, func(_ context.Context, payload string) error {
		fn(payload)
		return nil
	})
	return sub.Unsubscribe
}

// EventCount reports how many events have been dispatched.
func (b *Bus) EventCount() int64 {
	return b.subject.EventCount()
}

// Close stops delivery. Later publishes fail with a *PublishError.
func (b *Bus) Close() {
	events.Complete(b.subject)
}
