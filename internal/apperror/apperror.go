// Package apperror defines the error type shared by services and the HTTP
// layer. An Error carries a kind (mapped to a status code), an optional
// field name, and a message key that doubles as the English text and the
// lookup key of the translation catalog.
package apperror

import (
	"errors"
	"fmt"
)

type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindUnauthorized
	KindForbidden
	KindNotFound
	KindProvider
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindUnauthorized:
		return "unauthorized"
	case KindForbidden:
		return "forbidden"
	case KindNotFound:
		return "not_found"
	case KindProvider:
		return "provider"
	default:
		return "internal"
	}
}

type Error struct {
	Kind  Kind
	Field string
	Key   string
	Args  []any

	// Fields holds per-field errors of a joined validation error.
	Fields []*Error
	// Details is rendered verbatim next to the message.
	Details map[string]any
}

func (e *Error) Error() string {
	msg := fmt.Sprintf(e.Key, e.Args...)
	if e.Field != "" {
		return e.Field + ": " + msg
	}
	return msg
}

// Is reports errors with the same message key as equal, so sentinel errors
// still match after With or WithField produced a copy.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Key == e.Key
}

// With returns a copy carrying format arguments for the message key.
func (e *Error) With(args ...any) *Error {
	c := *e
	c.Args = args
	return &c
}

// WithField returns a copy attached to a request field.
func (e *Error) WithField(field string) *Error {
	c := *e
	c.Field = field
	return &c
}

// WithDetails returns a copy with extra response payload.
func (e *Error) WithDetails(details map[string]any) *Error {
	c := *e
	c.Details = details
	return &c
}

func New(kind Kind, key string) *Error {
	return &Error{Kind: kind, Key: key}
}

func Validation(key string) *Error   { return New(KindValidation, key) }
func NotFound(key string) *Error     { return New(KindNotFound, key) }
func Unauthorized(key string) *Error { return New(KindUnauthorized, key) }
func Forbidden(key string) *Error    { return New(KindForbidden, key) }

// FieldError is a validation error bound to a request field.
func FieldError(field, key string, args ...any) *Error {
	return &Error{Kind: KindValidation, Field: field, Key: key, Args: args}
}

// Provider wraps a message returned by an external provider. The message is
// shown to the client as is.
func Provider(msg string) *Error {
	return &Error{Kind: KindProvider, Key: "%s", Args: []any{msg}}
}

// ErrInvalidInput is the envelope of a joined validation error.
var ErrInvalidInput = Validation("invalid input")

// Join collects field errors into one validation error. It returns nil when
// there is nothing to report.
func Join(errs ...*Error) error {
	var fields []*Error
	for _, e := range errs {
		if e != nil {
			fields = append(fields, e)
		}
	}
	if len(fields) == 0 {
		return nil
	}
	if len(fields) == 1 {
		return fields[0]
	}
	joined := *ErrInvalidInput
	joined.Fields = fields
	return &joined
}

// As extracts an *Error from err.
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// KindOf returns the kind of err, KindInternal for foreign errors.
func KindOf(err error) Kind {
	if e, ok := As(err); ok {
		return e.Kind
	}
	return KindInternal
}
