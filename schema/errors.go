package schema

import "errors"

var (
	// ErrInvalidContactIndex indicates a contact index that does not
	// resolve to a known friend or group.
	ErrInvalidContactIndex = errors.New("invalid contact index")
	// ErrNotATerminal indicates stdin/stdout are not connected to a tty.
	ErrNotATerminal = errors.New("stdin and stdout must be connected to a terminal")
	// ErrUnknownEngine indicates a configured engine name with no backend.
	ErrUnknownEngine = errors.New("unknown engine")
)
