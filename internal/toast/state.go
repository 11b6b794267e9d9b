package toast

import "fmt"

// State is a toast's lifecycle state.
type State int

const (
	// StateEntering means the toast is sliding in from off-screen.
	StateEntering State = iota
	// StateAwaitingHover means entry finished but the pointer has not left the
	// toast yet, so the dismiss countdown is armed but not running.
	StateAwaitingHover
	// StateLive means the dismiss countdown is running.
	StateLive
	// StateExiting means the toast is fading out.
	StateExiting
	// StateClosed means the toast is destroyed.
	StateClosed
)

// String returns the string representation of State.
func (s State) String() string {
	switch s {
	case StateEntering:
		return "entering"
	case StateAwaitingHover:
		return "awaiting-hover"
	case StateLive:
		return "live"
	case StateExiting:
		return "exiting"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *State) UnmarshalText(text []byte) error {
	for st := StateEntering; st <= StateClosed; st++ {
		if st.String() == string(text) {
			*s = st
			return nil
		}
	}
	return fmt.Errorf("unknown toast state %q", text)
}

// CloseReason records why a toast went away.
type CloseReason int

const (
	// CloseReasonExpired means the dismiss countdown ran out and the fade finished.
	CloseReasonExpired CloseReason = iota + 1
	// CloseReasonDismissed means the user clicked the toast body.
	CloseReasonDismissed
	// CloseReasonClosed means the user pressed the close control and the fade finished.
	CloseReasonClosed
	// CloseReasonCleared means the manager was told to drop everything.
	CloseReasonCleared
)

// String returns the string representation of the close reason.
func (r CloseReason) String() string {
	switch r {
	case CloseReasonExpired:
		return "expired"
	case CloseReasonDismissed:
		return "dismissed"
	case CloseReasonClosed:
		return "closed"
	case CloseReasonCleared:
		return "cleared"
	default:
		return "unknown"
	}
}
