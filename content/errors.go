package content

import (
	"errors"
	"fmt"
)

// Sentinel errors for content operations.
var (
	ErrInvalidContent  = errors.New("invalid brochure content")
	ErrSchemaMismatch  = errors.New("cached content does not match current schema")
	ErrUnknownField    = errors.New("unknown field path")
	ErrItemNotFound    = errors.New("item not found")
	ErrIndexOutOfRange = errors.New("list index out of range")
	ErrUnsupportedFile = errors.New("unsupported content file extension")
)

// ValidationError reports a structural problem at a specific path of a payload.
type ValidationError struct {
	Path   string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s: %s", ErrInvalidContent, e.Path, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidContent
}
