package domain

import (
	"errors"
	"fmt"
	"os"
)

// Kind is the coarse category of a failure, sufficient for a caller to pick a message
// without parsing free text.
type Kind int

const (
	KindUnknown Kind = iota
	KindFileSystem
	KindInvalidPath
	KindPermissionDenied
	KindConfiguration
)

// Exported error variables allow callers to use errors.Is() for error checking.
var (
	ErrUnknown          = errors.New("unknown error")
	ErrFileSystem       = errors.New("file system error")
	ErrInvalidPath      = errors.New("invalid path")
	ErrPermissionDenied = errors.New("permission denied")
	ErrConfiguration    = errors.New("configuration error")
)

var kindNames = map[Kind]string{
	KindUnknown:          "Unknown",
	KindFileSystem:       "FileSystem",
	KindInvalidPath:      "InvalidPath",
	KindPermissionDenied: "PermissionDenied",
	KindConfiguration:    "Configuration",
}

// String returns the wire name of the kind.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return kindNames[KindUnknown]
}

// ParseKind maps a wire name back to a Kind. Unrecognised names map to KindUnknown.
func ParseKind(name string) Kind {
	for kind, n := range kindNames {
		if n == name {
			return kind
		}
	}
	return KindUnknown
}

func (k Kind) sentinel() error {
	switch k {
	case KindFileSystem:
		return ErrFileSystem
	case KindInvalidPath:
		return ErrInvalidPath
	case KindPermissionDenied:
		return ErrPermissionDenied
	case KindConfiguration:
		return ErrConfiguration
	default:
		return ErrUnknown
	}
}

// Error is the typed error returned by every core operation.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind.sentinel(), e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind.sentinel(), e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is the sentinel of this error's kind.
func (e *Error) Is(target error) bool {
	return target == e.Kind.sentinel()
}

// New creates an Error of the given kind.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap creates an Error of the given kind that wraps err.
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

func FileSystem(message string, err error) *Error {
	return Wrap(KindFileSystem, message, err)
}

func InvalidPath(message string) *Error {
	return New(KindInvalidPath, message)
}

func PermissionDenied(message string, err error) *Error {
	return Wrap(KindPermissionDenied, message, err)
}

func Configuration(message string, err error) *Error {
	return Wrap(KindConfiguration, message, err)
}

// FromIO classifies an I/O error: not-exist becomes InvalidPath, permission problems become
// PermissionDenied and everything else FileSystem.
func FromIO(message string, err error) *Error {
	switch {
	case errors.Is(err, os.ErrNotExist):
		return Wrap(KindInvalidPath, message, err)
	case errors.Is(err, os.ErrPermission):
		return Wrap(KindPermissionDenied, message, err)
	default:
		return Wrap(KindFileSystem, message, err)
	}
}

// KindOf returns the kind of the first *Error in err's chain, or KindUnknown.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// MessageOf returns the human-readable message of the first *Error in err's chain,
// falling back to err.Error().
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	if err == nil {
		return ""
	}
	return err.Error()
}
