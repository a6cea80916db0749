package model

// ValidationError reports a request that is well-formed JSON but breaks a field
// rule. Message is safe to return to the client as-is.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError returns a *ValidationError carrying msg.
func NewValidationError(msg string) *ValidationError {
	return &ValidationError{Message: msg}
}
