// Package bridge relays messages from the editor web view to the frontend.
package bridge

import (
	"github.com/mythoslabs/mythos/internal/events"
	"github.com/mythoslabs/mythos/internal/host"
	"github.com/mythoslabs/mythos/internal/logging"
)

// Forward publishes payload unchanged on the editor-message topic.
// Every call emits its own event; nothing is parsed, stored or retried.
func Forward(p host.Publisher, payload string) error {
	if err := p.Publish(events.TopicEditorMessage, payload); err != nil {
		logging.Warn("editor message dropped", "error", err)
		return err
	}
	logging.Debug("editor message forwarded", "bytes", len(payload))
	return nil
}

// EditorService is bound into the web view. Wails exposes its exported
// methods to JavaScript and rejects the call's promise with err.Error().
type EditorService struct {
	pub host.Publisher
}

// NewEditorService returns a service publishing through pub.
func NewEditorService(pub host.Publisher) *EditorService {
	return &EditorService{pub: pub}
}

// EditorMessage receives one message from the editor web view.
func (s *EditorService) EditorMessage(message string) error {
	return Forward(s.pub, message)
}
