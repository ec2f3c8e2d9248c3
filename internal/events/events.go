package events

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

var (
	// ErrClosed is returned by Emit once the subject has been completed.
	ErrClosed = errors.New("event subject closed")
	// ErrBufferFull is returned when an event could not be queued in time.
	ErrBufferFull = errors.New("event buffer full")
)

// HandlerFunc is the function called when an event is emitted.
type HandlerFunc func(context.Context, any) error

// SubjectOption configures a Subject
type SubjectOption func(*subjectConfig)

type subjectConfig struct {
	bufferSize   int
	emitTimeout  time.Duration
	syncDelivery bool
	logger       *slog.Logger
}

// WithBufferSize sets the event channel buffer size
func WithBufferSize(size int) SubjectOption {
	return func(cfg *subjectConfig) {
		cfg.bufferSize = size
	}
}

// WithEmitTimeout bounds how long Emit waits for buffer space.
func WithEmitTimeout(d time.Duration) SubjectOption {
	return func(cfg *subjectConfig) {
		cfg.emitTimeout = d
	}
}

// WithLogger sets a structured logger for handler errors
func WithLogger(logger *slog.Logger) SubjectOption {
	return func(cfg *subjectConfig) {
		cfg.logger = logger
	}
}

// WithSyncDelivery calls handlers inline on the event loop goroutine, so each
// subscriber sees events in emit order.
func WithSyncDelivery() SubjectOption {
	return func(cfg *subjectConfig) {
		cfg.syncDelivery = true
	}
}

// Emit queues value on topic. It returns once the event is queued, not when
// subscribers have run.
func Emit[T any](subject *Subject, topic string, value T) error {
	if atomic.LoadInt32(&subject.closed) == 1 {
		return ErrClosed
	}

	evt := event{topic: topic, message: value}

	timer := time.NewTimer(subject.config.emitTimeout)
	defer timer.Stop()

	select {
	case subject.events <- evt:
		return nil
	case <-subject.shutdown:
		return ErrClosed
	case <-timer.C:
		return fmt.Errorf("%w: topic %s", ErrBufferFull, topic)
	}
}

// Subscribe subscribes a typed handler to the given topic.
// A Subscription is returned that can be used to unsubscribe from the topic.
func Subscribe[T any](subject *Subject, topic string, handler func(context.Context, T) error) Subscription {
	wrappedHandler := HandlerFunc(func(ctx context.Context, data any) error {
		if typed, ok := data.(T); ok {
			return handler(ctx, typed)
		}
		return fmt.Errorf("type assertion failed for %T, expected %T", data, *new(T))
	})

	subID := atomic.AddInt64(&subject.nextSubID, 1)

	sub := Subscription{
		Topic:   topic,
		Handler: wrappedHandler,
		ID:      fmt.Sprintf("%s-%d", topic, subID),
	}
	subject.addSubscription(sub)

	sub.Unsubscribe = func() {
		subject.removeSubscription(sub.ID)
	}
	return sub
}

// Complete shuts down the event system. Events queued before the call are
// still dispatched; later Emits fail with ErrClosed. Safe to call multiple
// times.
func Complete(s *Subject) {
	if s == nil {
		return
	}

	if atomic.CompareAndSwapInt32(&s.closed, 0, 1) {
		close(s.shutdown)

		done := make(chan struct{})
		go func() {
			s.wg.Wait()
			close(done)
		}()

		select {
		case <-done:
		case <-time.After(5 * time.Second):
		}
	}
}

type event struct {
	topic   string
	message any
}

// Subscription represents a handler subscribed to a specific topic.
type Subscription struct {
	Topic       string
	Handler     HandlerFunc
	ID          string
	Unsubscribe func()
}

type subscriberMap map[string]map[string]Subscription

// Subject is an in-process topic fan-out with a single dispatch goroutine.
type Subject struct {
	subscribers atomic.Pointer[subscriberMap]
	nextSubID   int64
	eventCount  int64

	events   chan event
	shutdown chan struct{}

	config subjectConfig

	closed int32
	wg     sync.WaitGroup
}

// NewSubject creates a new Subject with optional configuration.
func NewSubject(opts ...SubjectOption) *Subject {
	cfg := subjectConfig{
		bufferSize:  512,
		emitTimeout: 5 * time.Second,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	s := &Subject{
		events:   make(chan event, cfg.bufferSize),
		shutdown: make(chan struct{}),
		config:   cfg,
	}

	empty := make(subscriberMap)
	s.subscribers.Store(&empty)

	s.wg.Add(1)
	go s.eventLoop()
	return s
}

// EventCount reports how many events the loop has dispatched.
func (s *Subject) EventCount() int64 {
	return atomic.LoadInt64(&s.eventCount)
}

func (s *Subject) eventLoop() {
	defer s.wg.Done()

	for {
		select {
		case <-s.shutdown:
			s.drain()
			return
		case evt := <-s.events:
			s.dispatch(evt)
		}
	}
}

func (s *Subject) drain() {
	for {
		select {
		case evt := <-s.events:
			s.dispatch(evt)
		default:
			return
		}
	}
}

func (s *Subject) dispatch(evt event) {
	atomic.AddInt64(&s.eventCount, 1)

	subs := s.subscribers.Load()
	for _, sub := range (*subs)[evt.topic] {
		s.sendToSubscriber(sub, evt)
	}
}

// addSubscription adds a subscription using copy-on-write
func (s *Subject) addSubscription(sub Subscription) {
	for {
		oldSubs := s.subscribers.Load()
		newSubs := copySubscribers(*oldSubs)

		if _, ok := newSubs[sub.Topic]; !ok {
			newSubs[sub.Topic] = make(map[string]Subscription)
		}
		newSubs[sub.Topic][sub.ID] = sub

		if s.subscribers.CompareAndSwap(oldSubs, &newSubs) {
			return
		}
	}
}

// removeSubscription removes a subscription using copy-on-write
func (s *Subject) removeSubscription(subID string) {
	for {
		oldSubs := s.subscribers.Load()
		newSubs := copySubscribers(*oldSubs)

		found := false
		for topic, topicSubs := range newSubs {
			if _, ok := topicSubs[subID]; ok {
				delete(topicSubs, subID)
				if len(topicSubs) == 0 {
					delete(newSubs, topic)
				}
				found = true
				break
			}
		}
		if !found {
			return
		}

		if s.subscribers.CompareAndSwap(oldSubs, &newSubs) {
			return
		}
	}
}

func copySubscribers(original subscriberMap) subscriberMap {
	cp := make(subscriberMap, len(original))
	for topic, topicSubs := range original {
		cp[topic] = make(map[string]Subscription, len(topicSubs))
		for id, sub := range topicSubs {
			cp[topic][id] = sub
		}
	}
	return cp
}

func (s *Subject) sendToSubscriber(sub Subscription, evt event) {
	deliver := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := sub.Handler(ctx, evt.message); err != nil && s.config.logger != nil {
			s.config.logger.Debug("event handler error",
				"topic", evt.topic,
				"error", err,
				"subscription_id", sub.ID)
		}
	}

	if s.config.syncDelivery {
		deliver()
	} else {
		go deliver()
	}
}
