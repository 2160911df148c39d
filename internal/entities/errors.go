package entities

import (
	"errors"
	"fmt"
)

// Sentinel errors for broad classification.
var (
	ErrFileAccess      = errors.New("file access error")
	ErrMissingColumn   = errors.New("missing column")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrMissingField    = errors.New("missing field")
	ErrTypeMismatch    = errors.New("type mismatch")
)

// ErrorKind is a coarse-grained categorization for pipeline errors.
type ErrorKind string

const (
	KindFileAccess      ErrorKind = "file_access"
	KindMissingColumn   ErrorKind = "missing_column"
	KindInvalidArgument ErrorKind = "invalid_argument"
	KindMissingField    ErrorKind = "missing_field"
	KindTypeMismatch    ErrorKind = "type_mismatch"
)

var kindSentinels = map[ErrorKind]error{
	KindFileAccess:      ErrFileAccess,
	KindMissingColumn:   ErrMissingColumn,
	KindInvalidArgument: ErrInvalidArgument,
	KindMissingField:    ErrMissingField,
	KindTypeMismatch:    ErrTypeMismatch,
}

// OpError wraps an underlying error with operation context and a kind.
type OpError struct {
	Op   string
	Kind ErrorKind
	Path string // Optional: relevant file path
	Err  error
}

func (e *OpError) Error() string {
	if e == nil {
		return "<nil>"
	}

	base := fmt.Sprintf("%s: %s", e.Op, e.Kind)
	if e.Path != "" {
		base += fmt.Sprintf(" (path=%s)", e.Path)
	}
	if e.Err != nil {
		base += fmt.Sprintf(": %v", e.Err)
	}
	return base
}

func (e *OpError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is lets errors.Is match an OpError against the sentinel of its kind even
// when Err wraps something else (an *os.PathError, a csv.ParseError...).
func (e *OpError) Is(target error) bool {
	if e == nil {
		return false
	}
	s, ok := kindSentinels[e.Kind]
	return ok && s == target
}

// NewOpError builds an OpError whose message is formatted from format/args.
func NewOpError(op string, kind ErrorKind, path string, format string, args ...any) *OpError {
	return &OpError{
		Op:   op,
		Kind: kind,
		Path: path,
		Err:  fmt.Errorf(format, args...),
	}
}

// IsKind helps callers classify errors without depending on the producing package.
func IsKind(err error, kind ErrorKind) bool {
	var oe *OpError
	if errors.As(err, &oe) {
		return oe.Kind == kind
	}
	return false
}
