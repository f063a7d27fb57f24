package generator

import (
	"errors"
	"fmt"
)

var (
	// ErrUnmappedType is matched by *UnmappedTypeError.
	ErrUnmappedType = errors.New("generator: unmapped property type")

	// ErrUnknownPreset is returned by Generate when the selected preset
	// is not configured.
	ErrUnknownPreset = errors.New("generator: unknown preset")
)

// UnmappedTypeError reports a model property whose declared type has no
// Swagger equivalent.
type UnmappedTypeError struct {
	Model string
	Field string
	Type  string
}

func (e *UnmappedTypeError) Error() string {
	return fmt.Sprintf("generator: model %s: property %s: unmapped type %q", e.Model, e.Field, e.Type)
}

// Is reports whether target is ErrUnmappedType.
func (e *UnmappedTypeError) Is(target error) bool {
	return target == ErrUnmappedType
}

// ModelCommentError reports a model doc comment that could not be parsed.
type ModelCommentError struct {
	Model string
	Err   error
}

func (e *ModelCommentError) Error() string {
	return fmt.Sprintf("generator: model %s: %v", e.Model, e.Err)
}

func (e *ModelCommentError) Unwrap() error {
	return e.Err
}

// RouteError attaches the route being assembled to a fatal error.
type RouteError struct {
	Method string
	URI    string
	Err    error
}

func (e *RouteError) Error() string {
	return fmt.Sprintf("generator: %s %s: %v", e.Method, e.URI, e.Err)
}

func (e *RouteError) Unwrap() error {
	return e.Err
}
