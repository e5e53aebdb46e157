package entity

import "fmt"

// Severity is the closed set of note severities reported to clients.
type Severity int

const (
	// SeverityInfo is an informational note.
	SeverityInfo Severity = iota
	// SeverityWarning is a warning, including mandatory warnings from the compiler.
	SeverityWarning
	// SeverityError is an error.
	SeverityError
)

var _severityNames = map[Severity]string{
	SeverityInfo:    "info",
	SeverityWarning: "warn",
	SeverityError:   "error",
}

// String implements fmt.Stringer.
func (s Severity) String() string {
	if name, ok := _severityNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Severity(%d)", int(s))
}

// MarshalText implements encoding.TextMarshaler.
func (s Severity) MarshalText() ([]byte, error) {
	name, ok := _severityNames[s]
	if !ok {
		return nil, fmt.Errorf("unknown severity %d", int(s))
	}
	return []byte(name), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Severity) UnmarshalText(text []byte) error {
	for k, v := range _severityNames {
		if v == string(text) {
			*s = k
			return nil
		}
	}
	return fmt.Errorf("unknown severity %q", string(text))
}

// Note is a single compiler diagnostic captured during a typecheck pass.
// Offsets are byte offsets into the file; lines and columns are 1-based and count bytes.
type Note struct {
	File      string   `json:"file"`
	Message   string   `json:"msg"`
	Severity  Severity `json:"severity"`
	Start     int      `json:"beg"`
	End       int      `json:"end"`
	Line      int      `json:"line"`
	Column    int      `json:"col"`
	EndLine   int      `json:"endLine"`
	EndColumn int      `json:"endCol"`
}
