package entity

import "go.lsp.dev/protocol"

// FileParams names a single source unit.
type FileParams struct {
	File SourceFileInfo `json:"file"`
}

// FilesParams names several source units.
type FilesParams struct {
	Files []SourceFileInfo `json:"files"`
}

// PointParams locates a point in a source unit, either as a byte offset or as an
// editor position with UTF-16 columns. Offset wins when both are set.
type PointParams struct {
	File     SourceFileInfo     `json:"file"`
	Offset   *int               `json:"offset,omitempty"`
	Position *protocol.Position `json:"position,omitempty"`
}

// LinkPosParams asks for the declaration of a fully qualified name in the context of File.
type LinkPosParams struct {
	File SourceFileInfo `json:"file"`
	FQN  string         `json:"fqn"`
}

// ApplyEditsParams describes a batch of edits to apply to files on disk.
type ApplyEditsParams struct {
	Summary string     `json:"summary"`
	Edits   []FileEdit `json:"edits"`
}

// UndoParams addresses an undo entry.
type UndoParams struct {
	ID int64 `json:"id"`
}
