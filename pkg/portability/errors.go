package portability

// ExportError represents an error during export.
type ExportError struct {
	Route   string
	Message string
	Cause   error
}

func (e *ExportError) Error() string {
	msg := e.Message
	if e.Route != "" {
		msg = e.Route + ": " + msg
	}
	if e.Cause != nil {
		msg = msg + ": " + e.Cause.Error()
	}
	return msg
}

func (e *ExportError) Unwrap() error {
	return e.Cause
}
