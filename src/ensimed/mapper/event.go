package mapper

import (
	"github.com/ensime/ensimed/src/ensimed/entity"
	"go.lsp.dev/jsonrpc2"
	"go.lsp.dev/protocol"
)

// EventMethod is the notification method used to push asynchronous events to clients.
const EventMethod = "ensime/event"

// EventPayload is the JSON form of a pushed event.
type EventPayload struct {
	entity.Event
	Diagnostics []protocol.PublishDiagnosticsParams `json:"diagnostics,omitempty"`
}

// EventToNotification wraps an event in a notification message.
func EventToNotification(e entity.Event) (*jsonrpc2.Notification, error) {
	payload := EventPayload{Event: e}
	if e.Kind == entity.EventNewNotes {
		payload.Diagnostics = NotesToPublishDiagnostics(e.Notes)
	}
	return jsonrpc2.NewNotification(EventMethod, payload)
}
