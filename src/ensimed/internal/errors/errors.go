package errors

import stderr "errors"

// New returns an error that formats as the given text.
// Each call to New returns a distinct error value even if the text is identical.
func New(msg string) error {
	return stderr.New(msg)
}

var (
	// NoFileOnWireError reports that the request is missing a source file.
	NoFileOnWireError = New("source file is required")
	// NoParamsOnWireError reports that the request is missing its parameters.
	NoParamsOnWireError = New("no params on wire")
)

// IsBadRequest reports whether the error is a bad request from the caller.
func IsBadRequest(e error) bool {
	return stderr.Is(e, NoFileOnWireError) || stderr.Is(e, NoParamsOnWireError)
}

// IsUserError reports whether the error should be returned to the requester without being logged as a server failure.
func IsUserError(e error) bool {
	if IsBadRequest(e) {
		return true
	}
	if _, ok := NotFoundUndo(e); ok {
		return true
	}
	var snf *SourceNotFoundError
	return stderr.As(e, &snf)
}
