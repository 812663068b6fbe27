package errs

import (
	"errors"
	"fmt"
)

type Kind int

const (
	KindNotFound Kind = iota
	KindValidation
	KindForbidden
)

// Error is the terminal error reported to callers: a kind for transport
// mapping plus a stable key with interpolation args for localized messages.
type Error struct {
	Kind Kind
	Key  string
	Args []interface{}
}

func (e *Error) Error() string {
	if len(e.Args) == 0 {
		return e.Key
	}
	return fmt.Sprintf("%s: %v", e.Key, e.Args)
}

func NotFound(key string, args ...interface{}) *Error {
	return &Error{Kind: KindNotFound, Key: key, Args: args}
}

func Validation(key string, args ...interface{}) *Error {
	return &Error{Kind: KindValidation, Key: key, Args: args}
}

func Forbidden(key string, args ...interface{}) *Error {
	return &Error{Kind: KindForbidden, Key: key, Args: args}
}

func IsNotFound(err error) bool   { return isKind(err, KindNotFound) }
func IsValidation(err error) bool { return isKind(err, KindValidation) }
func IsForbidden(err error) bool  { return isKind(err, KindForbidden) }

func isKind(err error, kind Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}

// KeyOf returns the stable key of a typed error, or the plain error text.
func KeyOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Key
	}
	return err.Error()
}
