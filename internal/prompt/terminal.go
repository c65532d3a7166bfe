package prompt

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// Terminal prompts on the operator's terminal. When stdin is not a terminal
// it reads from the controlling terminal device instead, and only falls back
// to stdin if that device cannot be opened.
type Terminal struct {
	*Reader
	file  *os.File
	tty   *os.File
	out   io.Writer
	state *term.State
}

// NewTerminal builds a Terminal reading from stdin (or the controlling
// terminal) and writing prompts to out. Close releases the terminal device.
func NewTerminal(stdin *os.File, out io.Writer) *Terminal {
	t := &Terminal{file: stdin, out: out}
	if !term.IsTerminal(int(stdin.Fd())) {
		if tty, err := os.OpenFile(ttyDevice, os.O_RDWR, 0); err == nil {
			t.tty = tty
			t.file = tty
		}
	}
	if st, err := term.GetState(int(t.file.Fd())); err == nil {
		t.state = st
	}
	t.Reader = NewReader(t.file, out)
	return t
}

// Interactive reports whether answers come from a terminal.
func (t *Terminal) Interactive() bool {
	return term.IsTerminal(int(t.file.Fd()))
}

// ReadSecret reads without echo when possible.
func (t *Terminal) ReadSecret(msg string) (string, error) {
	if !t.Interactive() || t.Reader.in.Buffered() > 0 {
		return t.Reader.ReadLine(msg)
	}
	fmt.Fprint(t.out, msg)
	b, err := term.ReadPassword(int(t.file.Fd()))
	fmt.Fprintln(t.out)
	if errors.Is(err, io.EOF) {
		return "", ErrClosed
	}
	if err != nil {
		return "", fmt.Errorf("reading secret: %w", err)
	}
	return strings.TrimSpace(string(b)), nil
}

// Restore puts the terminal back into the mode it was in when t was created.
// It is safe to call from a signal handler while a secret is being read.
func (t *Terminal) Restore() {
	if t.state != nil {
		_ = term.Restore(int(t.file.Fd()), t.state)
	}
}

// Close releases the controlling terminal if one was opened.
func (t *Terminal) Close() error {
	if t.tty == nil {
		return nil
	}
	return t.tty.Close()
}
