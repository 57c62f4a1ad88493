package plugin

import "errors"

// ErrorKind classifies an error so it survives the RPC boundary.
type ErrorKind string

// Error kinds.
const (
	KindAssetNotFound ErrorKind = "asset-not-found"
	KindInvalidColor  ErrorKind = "invalid-color"
	KindWriteFailure  ErrorKind = "write-failure"
	KindResolve       ErrorKind = "resolve"
)

// Sentinel errors, matched by kind with errors.Is.
var (
	ErrAssetNotFound = &Error{Kind: KindAssetNotFound, Message: "asset not found"}
	ErrInvalidColor  = &Error{Kind: KindInvalidColor, Message: "invalid color"}
	ErrWriteFailure  = &Error{Kind: KindWriteFailure, Message: "write failure"}
	ErrResolve       = &Error{Kind: KindResolve, Message: "size resolution failed"}
)

// Error is an error returned by the plugin.
type Error struct {
	Kind    ErrorKind
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Message == "" {
		return string(e.Kind)
	}
	return e.Message
}

// Is reports whether target is an *Error of the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// NewError returns an error of kind carrying err's message.
func NewError(kind ErrorKind, err error) *Error {
	return &Error{Kind: kind, Message: err.Error()}
}

// KindOf returns the kind of the first *Error in err's chain, or "".
func KindOf(err error) ErrorKind {
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Kind
	}
	return ""
}
