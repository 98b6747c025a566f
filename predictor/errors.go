package predictor

import (
	"errors"
	"fmt"
)

// Kind categorises input errors so callers can branch without matching
// message strings.
type Kind string

const (
	KindParse  Kind = "Parse"
	KindRange  Kind = "Range"
	KindFormat Kind = "Format"
)

// Sentinels matched by errors.Is against any *Error of the same kind.
var (
	ErrParse  = errors.New("malformed input")
	ErrRange  = errors.New("value out of range")
	ErrFormat = errors.New("invalid address length")
)

// Error reports an invalid input together with the field it was supplied for.
type Error struct {
	Kind  Kind
	Field string
	Input string
	Err   error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	msg := fmt.Sprintf("invalid %s", e.Field)
	if e.Input != "" {
		msg += fmt.Sprintf(" %q", e.Input)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func (e *Error) Is(target error) bool {
	switch target {
	case ErrParse:
		return e.Kind == KindParse
	case ErrRange:
		return e.Kind == KindRange
	case ErrFormat:
		return e.Kind == KindFormat
	}
	return false
}

// IsKind reports whether err is (or wraps) an *Error with the given kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.Kind == kind
}

// FieldOf returns the offending field name of a structured error, or "".
func FieldOf(err error) string {
	var e *Error
	if !errors.As(err, &e) {
		return ""
	}
	return e.Field
}

func parseError(field, input string, err error) error {
	return &Error{Kind: KindParse, Field: field, Input: input, Err: err}
}

func rangeError(field, input string, err error) error {
	return &Error{Kind: KindRange, Field: field, Input: input, Err: err}
}

func formatError(field, input string, err error) error {
	return &Error{Kind: KindFormat, Field: field, Input: input, Err: err}
}
