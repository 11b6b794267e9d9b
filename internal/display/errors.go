package display

// DisplayError is returned when the host cannot reach GTK or a monitor.
type DisplayError struct {
	Op      string // e.g. "new host", "create surface"
	Message string
	Cause   error
}

func (e *DisplayError) Error() string {
	msg := e.Op + ": " + e.Message
	if e.Cause != nil {
		return msg + ": " + e.Cause.Error()
	}
	return msg
}

func (e *DisplayError) Unwrap() error {
	return e.Cause
}
