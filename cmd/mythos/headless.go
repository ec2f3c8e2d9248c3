package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/mythoslabs/mythos/internal/bridge"
	"github.com/mythoslabs/mythos/internal/config"
	"github.com/mythoslabs/mythos/internal/deeplink"
	"github.com/mythoslabs/mythos/internal/events"
	"github.com/mythoslabs/mythos/internal/host"
	"github.com/mythoslabs/mythos/internal/logging"
)

// RunHeadless runs the relay on the in-process bus until stdin closes or the
// process is interrupted.
func RunHeadless(args []string) error {
	ctx, stop := signalContext()
	defer stop()
	return runHeadless(ctx, *AppConfig, newRegistrar(AppConfig), os.Stdin, os.Stdout, args)
}

func runHeadless(ctx context.Context, c config.Config, registrar host.Registrar, in io.Reader, out io.Writer, args []string) error {
	listener, err := deeplink.NewListener(c.DeepLink.Scheme, c.DeepLinkPolicy())
	if err != nil {
		return err
	}

	bus := host.NewBus(registrar,
		events.WithBufferSize(c.Bus.BufferSize),
		events.WithEmitTimeout(c.Bus.EmitTimeout))
	defer func() {
		bus.Close()
		logging.Info("headless relay stopped", "events", bus.EventCount())
	}()

	for _, topic := range []string{events.TopicEditorMessage, events.TopicDeepLinkNewURL} {
		bus.Subscribe(topic, func(payload string) {
			fmt.Fprintf(out, "%s\t%q\n", topic, payload)
		})
	}

	if err := listener.Register(bus); err != nil {
		return err
	}
	listener.OnURLReceived(bus, deeplink.URLsFromArgs(listener.Scheme(), args))

	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		scanner.Buffer(make([]byte, 64*1024), 16*1024*1024)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		if err := scanner.Err(); err != nil {
			logging.Warn("stdin read failed", "error", err)
		}
	}()

	logging.Info("headless relay running", "scheme", listener.Scheme(), "policy", listener.Policy().String())
	for {
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				return nil
			}
			// Publish failures are already logged by the bridge.
			_ = bridge.Forward(bus, line)
		}
	}
}
