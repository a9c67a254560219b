package repl

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/sys/unix"
	"golang.org/x/term"
	"pkt.systems/minitalk/schema"
	"pkt.systems/pslog"
)

// Terminal owns a raw-mode, non-blocking handle on the controlling
// terminal. The handle is opened fresh rather than borrowed from stdin so
// that O_NONBLOCK never leaks onto the inherited descriptor, and the
// original attributes are restored on Close.
type Terminal struct {
	fd    int
	saved unix.Termios
	log   pslog.Logger
}

// OpenTerminal verifies stdin and stdout are terminals, reopens the
// terminal device non-blocking and switches off canonical mode and echo.
func OpenTerminal(logger pslog.Logger) (*Terminal, error) {
	if logger == nil {
		logger = pslog.Ctx(context.Background())
	}
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return nil, schema.ErrNotATerminal
	}

	path, err := terminalPath()
	if err != nil {
		return nil, fmt.Errorf("resolve terminal device: %w", err)
	}
	fd, err := unix.Open(path, unix.O_RDONLY|unix.O_NONBLOCK, 0)
	if err != nil {
		return nil, fmt.Errorf("reopen %s: %w", path, err)
	}

	tio, err := unix.IoctlGetTermios(fd, ioctlGetTermios)
	if err != nil {
		_ = unix.Close(fd)
		return nil, fmt.Errorf("get terminal attributes: %w", err)
	}
	saved := *tio

	tio.Lflag &^= unix.ICANON | unix.ECHO
	tio.Cc[unix.VMIN] = 1
	tio.Cc[unix.VTIME] = 0
	if err := unix.IoctlSetTermios(fd, ioctlSetTermios, tio); err != nil {
		_ = unix.Close(fd)
		return nil, fmt.Errorf("set terminal attributes: %w", err)
	}

	return &Terminal{fd: fd, saved: saved, log: logger}, nil
}

// ReadPending reads whatever input bytes are immediately available. When
// none are, it returns 0 without blocking.
func (t *Terminal) ReadPending(p []byte) (int, error) {
	n, err := unix.Read(t.fd, p)
	if err != nil {
		if err == unix.EAGAIN || err == unix.EWOULDBLOCK {
			return 0, nil
		}
		return 0, fmt.Errorf("read terminal: %w", err)
	}
	if n < 0 {
		n = 0
	}
	return n, nil
}

// Close restores the saved terminal attributes and releases the handle.
func (t *Terminal) Close() error {
	if err := unix.IoctlSetTermios(t.fd, ioctlSetTermios, &t.saved); err != nil {
		t.log.Warn("failed to restore terminal attributes", "error", err)
	}
	return unix.Close(t.fd)
}
