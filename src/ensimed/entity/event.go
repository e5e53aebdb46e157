package entity

// EventKind tags an asynchronous event.
type EventKind string

const (
	// EventIndexerReady is published once the indexer finished its initial load.
	EventIndexerReady EventKind = "IndexerReady"
	// EventAnalyzerReady is published once the analyzer finished its initial typecheck.
	EventAnalyzerReady EventKind = "AnalyzerReady"
	// EventFullTypeCheckComplete is published after a full reload of the working set.
	EventFullTypeCheckComplete EventKind = "FullTypeCheckComplete"
	// EventCompilerRestarted is published after the compiler dropped its caches.
	EventCompilerRestarted EventKind = "CompilerRestarted"
	// EventClearAllNotes tells clients to discard every note they hold.
	EventClearAllNotes EventKind = "ClearAllNotes"
	// EventNewNotes carries notes produced by a reporting pass.
	EventNewNotes EventKind = "NewNotes"
	// EventBackgroundMessage carries a message for the user's status area.
	EventBackgroundMessage EventKind = "BackgroundMessage"
	// EventClassfilesChanged reports build outputs that changed on disk.
	EventClassfilesChanged EventKind = "ClassfilesChanged"
)

// Event is an asynchronous notification pushed to every subscribed client.
// Only the fields relevant to Kind are set.
type Event struct {
	Kind   EventKind `json:"kind"`
	IsFull bool      `json:"isFull,omitempty"`
	Notes  []Note    `json:"notes,omitempty"`
	Code   int       `json:"code,omitempty"`
	Detail string    `json:"detail,omitempty"`
	Paths  []string  `json:"paths,omitempty"`
}

// IndexerReadyEvent returns an EventIndexerReady event.
func IndexerReadyEvent() Event { return Event{Kind: EventIndexerReady} }

// AnalyzerReadyEvent returns an EventAnalyzerReady event.
func AnalyzerReadyEvent() Event { return Event{Kind: EventAnalyzerReady} }

// FullTypeCheckCompleteEvent returns an EventFullTypeCheckComplete event.
func FullTypeCheckCompleteEvent() Event { return Event{Kind: EventFullTypeCheckComplete} }

// CompilerRestartedEvent returns an EventCompilerRestarted event.
func CompilerRestartedEvent() Event { return Event{Kind: EventCompilerRestarted} }

// ClearAllNotesEvent returns an EventClearAllNotes event.
func ClearAllNotesEvent() Event { return Event{Kind: EventClearAllNotes} }

// NewNotesEvent returns an EventNewNotes event carrying the given notes.
func NewNotesEvent(isFull bool, notes []Note) Event {
	return Event{Kind: EventNewNotes, IsFull: isFull, Notes: notes}
}

// BackgroundMessageEvent returns an EventBackgroundMessage event.
func BackgroundMessageEvent(code int, detail string) Event {
	return Event{Kind: EventBackgroundMessage, Code: code, Detail: detail}
}

// ClassfilesChangedEvent returns an EventClassfilesChanged event.
func ClassfilesChangedEvent(paths []string) Event {
	return Event{Kind: EventClassfilesChanged, Paths: paths}
}
