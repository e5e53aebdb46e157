package entity

import "go.lsp.dev/protocol"

// OffsetPosition locates a point inside a source unit.
type OffsetPosition struct {
	File   string `json:"file"`
	Offset int    `json:"offset"`
	Line   int    `json:"line"`
	Column int    `json:"col"`
}

// PathElement is one syntax node enclosing a point, outermost first.
type PathElement struct {
	Kind  string `json:"kind"`
	Start int    `json:"start"`
	End   int    `json:"end"`
}

// ScopeEntry is a name visible at a point.
type ScopeEntry struct {
	Name string `json:"name"`
	Kind string `json:"kind"`
	Type string `json:"type"`
}

// SymbolInfo describes the symbol found at a point.
type SymbolInfo struct {
	Name      string          `json:"name"`
	FullName  string          `json:"fullName"`
	Kind      string          `json:"kind"`
	Type      string          `json:"type"`
	Signature string          `json:"signature"`
	Doc       string          `json:"doc,omitempty"`
	DeclPos   *OffsetPosition `json:"declPos,omitempty"`
}

// TypeInfo describes the type of the expression at a point.
type TypeInfo struct {
	Name     string          `json:"name"`
	FullName string          `json:"fullName"`
	Start    int             `json:"start"`
	End      int             `json:"end"`
	Range    *protocol.Range `json:"range,omitempty"`
}
