package loop

import "errors"

// ErrAlreadyRunning is returned when Run is called on a loop that is already running.
var ErrAlreadyRunning = errors.New("event loop already running")
