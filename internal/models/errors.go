package models

// ValidationError reports a missing or malformed required field. Handlers
// map it to 400 Bad Request.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Field + " is required"
}
