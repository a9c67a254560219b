package repl

// ANSI control sequences shared by the screen and editor.
const (
	eraseLine = "\r\x1b[2K"
	ansiReset = "\x1b[0m"
)

// Theme holds the ANSI prefixes for each kind of output. Empty strings give
// a monochrome screen for non-terminal writers and tests.
type Theme struct {
	Prompt string
	Self   string
	Guest  string
	Info   string
	Warn   string
	Error  string
	Reset  string
}

// DefaultTheme returns the standard palette.
func DefaultTheme() Theme {
	return Theme{
		Prompt: "\x1b[34m",
		Self:   "\x1b[35m",
		Guest:  "\x1b[90m",
		Info:   "\x1b[36m",
		Warn:   "\x1b[33m",
		Error:  "\x1b[31m",
		Reset:  ansiReset,
	}
}

// PlainTheme returns a theme with no color codes at all.
func PlainTheme() Theme {
	return Theme{}
}
