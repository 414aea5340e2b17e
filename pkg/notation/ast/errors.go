package ast

import "errors"

var (
	// ErrInvalidState is returned by builder methods that would break the
	// redirect/sub-entry exclusion or produce text that cannot be parsed back.
	ErrInvalidState = errors.New("invalid entry state")

	// ErrInvalidRedirect is returned when a redirect is built with an empty
	// or malformed target or relation type.
	ErrInvalidRedirect = errors.New("invalid redirect")
)
