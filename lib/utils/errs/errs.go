package errs

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind classifies business errors so controllers can pick an HTTP status
// without string matching.
type Kind int

const (
	KindUnknown Kind = iota
	KindNotFound
	KindValidation
	KindPermissionDenied
	KindConflict
)

type kindError struct {
	kind Kind
	msg  string
}

func (e *kindError) Error() string {
	return e.msg
}

func NotFound(format string, args ...interface{}) error {
	return &kindError{kind: KindNotFound, msg: fmt.Sprintf(format, args...)}
}

func Validation(format string, args ...interface{}) error {
	return &kindError{kind: KindValidation, msg: fmt.Sprintf(format, args...)}
}

func PermissionDenied(format string, args ...interface{}) error {
	return &kindError{kind: KindPermissionDenied, msg: fmt.Sprintf(format, args...)}
}

func Conflict(format string, args ...interface{}) error {
	return &kindError{kind: KindConflict, msg: fmt.Sprintf(format, args...)}
}

// GetKind unwraps pkg/errors wrapping down to the cause.
func GetKind(err error) Kind {
	if err == nil {
		return KindUnknown
	}
	if kErr, ok := errors.Cause(err).(*kindError); ok {
		return kErr.kind
	}
	return KindUnknown
}

func IsNotFound(err error) bool {
	return GetKind(err) == KindNotFound
}

func IsValidation(err error) bool {
	return GetKind(err) == KindValidation
}

func IsPermissionDenied(err error) bool {
	return GetKind(err) == KindPermissionDenied
}

func IsConflict(err error) bool {
	return GetKind(err) == KindConflict
}
