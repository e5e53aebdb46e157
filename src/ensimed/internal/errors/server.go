package errors

import "fmt"

// ServerAlreadyRunningError indicates that a non-empty discovery file was found at startup.
type ServerAlreadyRunningError struct {
	Path    string
	Content string
}

// Error is an implementation of the error interface.
func (n *ServerAlreadyRunningError) Error() string {
	return fmt.Sprintf("discovery file %q already contains %q, another server is running for this project", n.Path, n.Content)
}

// CompilerFailureError wraps an internal failure raised by the compiler during a pass.
type CompilerFailureError struct {
	Cause interface{}
}

// Error is an implementation of the error interface.
func (n *CompilerFailureError) Error() string {
	return fmt.Sprintf("compiler failure: %v", n.Cause)
}
