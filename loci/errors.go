package loci

import (
	"errors"
	"fmt"
)

// ErrNotImplemented is matched by every NotImplementedError through
// errors.Is.
var ErrNotImplemented = errors.New("not implemented")

// ValidationError reports input that can never be processed, such as a
// non-positive distance or a marker with an impossible p-value.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// NotImplementedError is returned by independence methods that are declared
// but have no implementation.
type NotImplementedError struct {
	Method Method
}

func (e *NotImplementedError) Error() string {
	return fmt.Sprintf("independence method %q is not implemented", e.Method)
}

func (e *NotImplementedError) Is(target error) bool {
	return target == ErrNotImplemented
}
