package errors

import (
	stderr "errors"
	"fmt"

	"github.com/gofrs/uuid"
)

// UndoNotFoundError reports that an undo id is not present in the undo log.
type UndoNotFoundError struct {
	ID int64
}

// Error is an implementation of the error interface.
func (n *UndoNotFoundError) Error() string {
	return fmt.Sprintf("undo %d not found", n.ID)
}

// NotFoundUndo returns the missing undo id and true if UndoNotFoundError is part of the error chain.
func NotFoundUndo(e error) (_ int64, ok bool) {
	var nf *UndoNotFoundError
	if !stderr.As(e, &nf) {
		return 0, false
	}
	return nf.ID, true
}

// SourceNotFoundError indicates that a source unit could not be resolved on disk or inside its archive.
type SourceNotFoundError struct {
	URI string
}

// Error is an implementation of the error interface.
func (n *SourceNotFoundError) Error() string {
	return fmt.Sprintf("source %q not found", n.URI)
}

// UUIDNotFoundError indicates that a session is not present in the repository.
type UUIDNotFoundError struct {
	UUID uuid.UUID
}

// Error is an implementation of the error interface.
func (n *UUIDNotFoundError) Error() string {
	return fmt.Sprintf("session %q not found", n.UUID.String())
}
