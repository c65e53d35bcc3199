package shape

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	ErrInvalidGeometry  = errors.New("invalid geometry")
	ErrOutOfRange       = errors.New("coordinate out of range")
	ErrUnknownShapeType = errors.New("unknown shape type")
	ErrBufferUnderrun   = errors.New("buffer underrun")
	ErrUnsupportedShape = errors.New("unsupported shape")
)

// Error is a failure of one of the kinds above. Reason holds the diagnostic
// text as produced by whoever detected the problem, kernel messages included.
type Error struct {
	Kind   error
	Reason string
	cause  error
}

func (e *Error) Error() string {
	if e.Reason == "" {
		return e.Kind.Error()
	}
	return fmt.Sprintf("%s: %s", e.Kind.Error(), e.Reason)
}

func (e *Error) Is(target error) bool {
	return target == e.Kind
}

func (e *Error) Unwrap() error {
	return e.cause
}

func newError(kind error, cause error, format string, args ...interface{}) error {
	return errors.WithStack(&Error{
		Kind:   kind,
		Reason: fmt.Sprintf(format, args...),
		cause:  cause,
	})
}

func InvalidGeometry(cause error, format string, args ...interface{}) error {
	return newError(ErrInvalidGeometry, cause, format, args...)
}

func OutOfRange(format string, args ...interface{}) error {
	return newError(ErrOutOfRange, nil, format, args...)
}

func UnknownShapeType(format string, args ...interface{}) error {
	return newError(ErrUnknownShapeType, nil, format, args...)
}

func BufferUnderrun(format string, args ...interface{}) error {
	return newError(ErrBufferUnderrun, nil, format, args...)
}

func UnsupportedShape(format string, args ...interface{}) error {
	return newError(ErrUnsupportedShape, nil, format, args...)
}

// Reason returns the diagnostic text of err, or its message when err is not
// one of ours.
func Reason(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Reason
	}
	return err.Error()
}
