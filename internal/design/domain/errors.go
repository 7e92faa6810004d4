package domain

import "errors"

var (
	ErrUnknownElementType = errors.New("unknown_element_type")
	ErrMissingContent     = errors.New("missing_content")
)
