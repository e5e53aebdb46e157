//go:generate mockgen -destination=compilermock/compiler_mock.go -package=compilermock . Compiler

// Package compiler is the boundary to the compiler front end that parses and type-checks the working set.
package compiler

import (
	"context"
	"fmt"

	"github.com/ensime/ensimed/src/ensimed/entity"
	"go.lsp.dev/uri"
)

// Kind is the severity the front end attaches to a diagnostic.
// It is finer grained than entity.Severity.
type Kind int

const (
	// KindInfo is an informational message.
	KindInfo Kind = iota
	// KindWarning is a warning.
	KindWarning
	// KindMandatoryWarning is a warning the front end refuses to suppress, such as an unused variable.
	KindMandatoryWarning
	// KindError is an error.
	KindError
)

var _kindNames = map[Kind]string{
	KindInfo:             "info",
	KindWarning:          "warning",
	KindMandatoryWarning: "mandatory-warning",
	KindError:            "error",
}

// String implements fmt.Stringer.
func (k Kind) String() string {
	if name, ok := _kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Position is a location in a file. The zero value is unset.
type Position struct {
	Valid  bool
	Offset int
	Line   int
	Column int
}

// Diagnostic is a single message reported by the front end during a pass.
// Start and End cover the offending syntax when the front end could determine it;
// Point is always set when the message has a location.
type Diagnostic struct {
	File    uri.URI
	Name    string
	Message string
	Kind    Kind
	Start   Position
	End     Position
	Point   Position
}

// Listener receives the diagnostics of a pass.
type Listener interface {
	Report(d Diagnostic)
}

// ListenerFunc adapts a function to Listener.
type ListenerFunc func(d Diagnostic)

// Report calls f(d).
func (f ListenerFunc) Report(d Diagnostic) { f(d) }

// Silent discards every diagnostic.
var Silent Listener = ListenerFunc(func(Diagnostic) {})

// File is a source unit handed to the front end.
type File interface {
	URI() uri.URI
	Name() string
	Content() []byte
}

// Unit is the result of a pass for one file. It is valid until the next pass.
type Unit interface {
	URI() uri.URI
	// PathToPoint returns the syntax nodes enclosing offset, outermost first.
	PathToPoint(offset int) ([]entity.PathElement, error)
	// ScopeForPoint returns the names visible at offset, innermost scope first.
	ScopeForPoint(offset int) ([]entity.ScopeEntry, error)
	// DocSignatureAtPoint describes the symbol at offset, or returns nil when there is none.
	DocSignatureAtPoint(offset int) (*entity.SymbolInfo, error)
	// TypeAtPoint describes the type of the expression at offset, or returns nil when there is none.
	TypeAtPoint(offset int) (*entity.TypeInfo, error)
	// LinkPos returns the declaration position of a fully qualified name, or nil when it is unknown.
	LinkPos(fqn string) (*entity.OffsetPosition, error)
}

// Compiler drives one front-end instance. Passes are serialized by the implementation.
type Compiler interface {
	// NewFile creates a handle for the given contents. It performs no parsing.
	NewFile(u uri.URI, name string, content []byte) File
	// Run parses and type-checks files as one program and returns a unit per file.
	// Every diagnostic is reported to listener. Run may panic on adversarial input.
	Run(ctx context.Context, files []File, listener Listener) (map[uri.URI]Unit, error)
	// Reset drops every cache the front end keeps between passes.
	Reset()
}

type sourceFile struct {
	uri     uri.URI
	name    string
	content []byte
}

func (f *sourceFile) URI() uri.URI    { return f.uri }
func (f *sourceFile) Name() string    { return f.name }
func (f *sourceFile) Content() []byte { return f.content }
