package entities

import "errors"

// ValidationError is a client-caused failure. Its message is safe to return to the caller.
type ValidationError struct {
	message string
}

func NewValidationError(message string) *ValidationError {
	return &ValidationError{message: message}
}

func (e *ValidationError) Error() string {
	return e.message
}

var (
	ErrNoPrompt               = NewValidationError("No prompt provided")
	ErrUnsupportedContentType = NewValidationError("Unsupported content type. Use application/json or multipart/form-data")
)

// IsValidationError reports whether err, or anything it wraps, is a ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
