// Package repl implements the asynchronous single-line terminal REPL: a
// non-blocking raw-mode terminal, a cursor-aware line editor fed one byte at
// a time, and the ANSI screen the client prints through.
package repl

import (
	"fmt"
	"io"
	"strings"
)

// Control bytes the editor reacts to.
const (
	ctrlA     = 0x01
	ctrlB     = 0x02
	ctrlE     = 0x05
	ctrlF     = 0x06
	ctrlH     = 0x08
	ctrlK     = 0x0b
	ctrlU     = 0x15
	ctrlW     = 0x17
	backspace = 0x7f
	esc       = 0x1b
)

// CtrlD is the byte that terminates the client immediately; the loop checks
// for it before feeding the editor.
const CtrlD = 0x04

// Editor is the line editor. Its fixed-capacity buffer is split in two: the
// before-cursor region grows from the front and occupies [0, nbuf); the
// after-cursor region grows from the back and occupies the last nstack
// bytes. Moving the cursor transfers one byte between the regions, so no
// shifting ever happens.
type Editor struct {
	// Prompt is printed on every redraw; the client swaps it when the
	// active conversation changes.
	Prompt string

	buf    []byte
	nbuf   int
	nstack int
	escape int
}

// NewEditor constructs an editor with the given buffer capacity. Input
// beyond the capacity is dropped.
func NewEditor(capacity int, prompt string) *Editor {
	if capacity <= 0 {
		capacity = 512
	}
	return &Editor{Prompt: prompt, buf: make([]byte, capacity)}
}

// Feed consumes one input byte. It returns the completed line (without the
// terminator) and true when Enter is seen; otherwise the editor is still
// collecting and the caller proceeds.
func (e *Editor) Feed(c byte) (string, bool) {
	if c == esc {
		e.escape = 1
		return "", false
	}
	if e.escape > 0 {
		e.escape++
	}

	switch c {
	case '\n':
		line := string(e.buf[:e.nbuf]) + string(e.buf[len(e.buf)-e.nstack:])
		e.nbuf = 0
		e.nstack = 0
		return line, true

	case ctrlH, backspace:
		if e.nbuf > 0 {
			e.nbuf--
		}

	case ctrlU:
		e.nbuf = 0

	case ctrlK:
		e.nstack = 0

	case ctrlA:
		for e.nbuf > 0 {
			e.cursorLeft()
		}

	case ctrlE:
		for e.nstack > 0 {
			e.cursorRight()
		}

	case ctrlB:
		if e.nbuf > 0 {
			e.cursorLeft()
		}

	case ctrlF:
		if e.nstack > 0 {
			e.cursorRight()
		}

	case ctrlW:
		for e.nbuf > 0 && e.buf[e.nbuf-1] == ' ' {
			e.nbuf--
		}
		for e.nbuf > 0 && e.buf[e.nbuf-1] != ' ' {
			e.nbuf--
		}

	default:
		// Arrow keys arrive as ESC [ D (left) / ESC [ C (right); the '['
		// landed in the buffer as an ordinary byte one step earlier. A
		// sequence that does not match falls through to plain insertion.
		if (c == 'D' || c == 'C') && e.escape == 3 && e.nbuf >= 1 && e.buf[e.nbuf-1] == '[' {
			e.nbuf--
			if c == 'D' && e.nbuf > 0 {
				e.cursorLeft()
			}
			if c == 'C' && e.nstack > 0 {
				e.cursorRight()
			}
			break
		}
		e.insert(c)
	}
	return "", false
}

// Line returns the current logical content, cursor split ignored.
func (e *Editor) Line() string {
	return string(e.buf[:e.nbuf]) + string(e.buf[len(e.buf)-e.nstack:])
}

// Redraw repaints the edit line: erase, prompt, both regions, then move the
// terminal cursor back over the after-cursor region. Safe to call anytime.
func (e *Editor) Redraw(w io.Writer) {
	var b strings.Builder
	b.WriteString(eraseLine)
	b.WriteString(e.Prompt)
	b.Write(e.buf[:e.nbuf])
	if e.nstack > 0 {
		b.Write(e.buf[len(e.buf)-e.nstack:])
		fmt.Fprintf(&b, "\x1b[%dD", e.nstack)
	}
	_, _ = io.WriteString(w, b.String())
}

func (e *Editor) cursorLeft() {
	e.nstack++
	e.buf[len(e.buf)-e.nstack] = e.buf[e.nbuf-1]
	e.nbuf--
}

func (e *Editor) cursorRight() {
	e.buf[e.nbuf] = e.buf[len(e.buf)-e.nstack]
	e.nbuf++
	e.nstack--
}

func (e *Editor) insert(c byte) {
	if e.nbuf+e.nstack >= len(e.buf) {
		return
	}
	e.buf[e.nbuf] = c
	e.nbuf++
}
