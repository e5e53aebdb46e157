package entity

// FileEdit replaces the bytes [From, To) of File with Text.
type FileEdit struct {
	File string `json:"file"`
	From int    `json:"from"`
	To   int    `json:"to"`
	Text string `json:"text"`
}

// Undo is a reversible batch of edits, addressed by a monotonically increasing id.
type Undo struct {
	ID      int64      `json:"id"`
	Summary string     `json:"summary"`
	Edits   []FileEdit `json:"edits"`
}

// UndoResult reports the files touched when an undo was executed.
type UndoResult struct {
	ID    int64    `json:"id"`
	Files []string `json:"files"`
}
