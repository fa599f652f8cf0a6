package validators

import "errors"

var (
	// ErrUnsupportedType is returned for values that are not structs or
	// pointers to structs.
	ErrUnsupportedType = errors.New("unsupported type for validation")

	// ErrValidationFailed is wrapped together with a human-readable description
	// of the first field that failed its rules.
	ErrValidationFailed = errors.New("validation failed")
)
