package repl

import (
	"os"

	"golang.org/x/sys/unix"
)

const (
	ioctlGetTermios = unix.TCGETS
	// TCSETSF drains output and flushes pending input, matching
	// tcsetattr(TCSAFLUSH).
	ioctlSetTermios = unix.TCSETSF
)

// terminalPath resolves the device backing stdin so it can be reopened with
// its own flags.
func terminalPath() (string, error) {
	return os.Readlink("/proc/self/fd/0")
}
