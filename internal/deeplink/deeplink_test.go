package deeplink

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mythoslabs/mythos/internal/events"
	"github.com/mythoslabs/mythos/internal/host"
)

type fakeRuntime struct {
	registerErr error
	registers   []string
	publishErrs map[string]error
	published   []string
	topics      []string
}

func (f *fakeRuntime) RegisterURLScheme(name string) error {
	f.registers = append(f.registers, name)
	if f.registerErr != nil {
		return &host.RegistrationError{Scheme: name, Err: f.registerErr}
	}
	return nil
}

func (f *fakeRuntime) Publish(topic, payload string) error {
	if err := f.publishErrs[payload]; err != nil {
		return &host.PublishError{Topic: topic, Err: err}
	}
	f.topics = append(f.topics, topic)
	f.published = append(f.published, payload)
	return nil
}

func newListener(t *testing.T, p Policy) *Listener {
	t.Helper()
	l, err := NewListener("mythos", p)
	require.NoError(t, err)
	return l
}

func TestRegisterSuccess(t *testing.T) {
	rt := &fakeRuntime{}
	l := newListener(t, PolicyStrict)

	require.NoError(t, l.Register(rt))
	assert.True(t, l.Registered())
	assert.Equal(t, []string{"mythos"}, rt.registers)
}

func TestRegisterAttemptedOnce(t *testing.T) {
	for _, p := range []Policy{PolicyStrict, PolicyLenient} {
		rt := &fakeRuntime{registerErr: errors.New("denied")}
		l := newListener(t, p)

		_ = l.Register(rt)
		err := l.Register(rt)
		assert.ErrorIs(t, err, ErrAlreadyRegistered, p.String())
		assert.Len(t, rt.registers, 1, p.String())
	}
}

func TestRegisterStrictFailureIsFatal(t *testing.T) {
	cause := errors.New("scheme registration unsupported in dev")
	rt := &fakeRuntime{registerErr: cause}
	l := newListener(t, PolicyStrict)

	err := l.Register(rt)
	require.Error(t, err)
	var re *host.RegistrationError
	assert.ErrorAs(t, err, &re)
	assert.ErrorIs(t, err, cause)
	assert.False(t, l.Registered())
}

func TestRegisterLenientFailureContinues(t *testing.T) {
	rt := &fakeRuntime{registerErr: ErrUnsupported}
	l := newListener(t, PolicyLenient)

	assert.NoError(t, l.Register(rt))
	assert.False(t, l.Registered())

	// URLs delivered by other means still go through.
	assert.Equal(t, 1, l.OnURLReceived(rt, []string{"mythos://auth/callback?code=abc"}))
}

func TestOnURLReceivedPublishesInOrder(t *testing.T) {
	rt := &fakeRuntime{}
	l := newListener(t, PolicyLenient)

	urls := []string{
		"mythos://auth/callback?code=abc",
		"mythos://open/doc/42",
		"mythos://auth/callback?code=abc",
	}
	n := l.OnURLReceived(rt, urls)

	assert.Equal(t, 3, n)
	assert.Equal(t, urls, rt.published)
	for _, topic := range rt.topics {
		assert.Equal(t, "deep-link://new-url", topic)
		assert.Equal(t, events.TopicDeepLinkNewURL, topic)
	}
}

func TestOnURLReceivedSingleCallback(t *testing.T) {
	rt := &fakeRuntime{}
	l := newListener(t, PolicyLenient)

	l.OnURLReceived(rt, []string{"mythos://auth/callback?code=abc"})
	assert.Equal(t, []string{"mythos://auth/callback?code=abc"}, rt.published)
}

func TestOnURLReceivedEmpty(t *testing.T) {
	rt := &fakeRuntime{}
	l := newListener(t, PolicyLenient)

	assert.Zero(t, l.OnURLReceived(rt, nil))
	assert.Empty(t, rt.published)
}

func TestOnURLReceivedContinuesPastFailures(t *testing.T) {
	rt := &fakeRuntime{publishErrs: map[string]error{"mythos://b": errors.New("gone")}}
	l := newListener(t, PolicyLenient)

	n := l.OnURLReceived(rt, []string{"mythos://a", "mythos://b", "mythos://c"})
	assert.Equal(t, 2, n)
	assert.Equal(t, []string{"mythos://a", "mythos://c"}, rt.published)
}

func TestOnURLReceivedThroughBus(t *testing.T) {
	b := host.NewBus(nil)
	defer b.Close()

	got := make(chan string, 4)
	b.Subscribe(events.TopicDeepLinkNewURL, func(p string) { got <- p })

	l := newListener(t, PolicyLenient)
	l.OnURLReceived(b, []string{"mythos://1", "mythos://2"})

	assert.Equal(t, "mythos://1", <-got)
	assert.Equal(t, "mythos://2", <-got)
}

func TestParsePolicy(t *testing.T) {
	tests := []struct {
		in      string
		want    Policy
		wantErr bool
	}{
		{"", PolicyLenient, false},
		{"lenient", PolicyLenient, false},
		{" Strict ", PolicyStrict, false},
		{"fatal", PolicyLenient, true},
	}
	for _, tt := range tests {
		got, err := ParsePolicy(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestValidateScheme(t *testing.T) {
	for _, ok := range []string{"mythos", "x-mythos", "my.app+dev", "M1"} {
		assert.NoError(t, ValidateScheme(ok), ok)
	}
	for _, bad := range []string{"", "1mythos", "my thos", "mythos://", "my/thos"} {
		assert.ErrorIs(t, ValidateScheme(bad), ErrInvalidScheme, bad)
	}

	_, err := NewListener("not a scheme", PolicyStrict)
	assert.ErrorIs(t, err, ErrInvalidScheme)
}

func TestURLsFromArgs(t *testing.T) {
	args := []string{
		"--headless",
		"mythos://auth/callback?code=abc",
		"https://example.com",
		"MYTHOS://open/1",
		"mythos:",
		"other://x",
	}
	got := URLsFromArgs("mythos", args)
	assert.Equal(t, []string{"mythos://auth/callback?code=abc", "MYTHOS://open/1"}, got)
	assert.Nil(t, URLsFromArgs("mythos", []string{"--verbose"}))
}
