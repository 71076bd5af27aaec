package newsletter

import "errors"

// Domain-specific errors for the newsletter package.
var (
	ErrEmptyEmail = errors.New("email has no usable body")
)
