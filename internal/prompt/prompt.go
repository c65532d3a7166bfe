package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrClosed is returned once the input has reached end-of-file. Callers treat
// it as the operator walking away, not as a failure.
var ErrClosed = errors.New("input closed")

// Prompter asks the operator for a line of input.
type Prompter interface {
	// ReadLine prints msg and returns the trimmed answer.
	ReadLine(msg string) (string, error)
	// ReadSecret is like ReadLine but does not echo the answer when the
	// input is a terminal.
	ReadSecret(msg string) (string, error)
}

// Reader is a Prompter over an arbitrary input stream.
type Reader struct {
	in  *bufio.Reader
	out io.Writer
}

// NewReader returns a Reader that prints prompts to out and reads answers
// from in.
func NewReader(in io.Reader, out io.Writer) *Reader {
	return &Reader{in: bufio.NewReader(in), out: out}
}

func (r *Reader) ReadLine(msg string) (string, error) {
	fmt.Fprint(r.out, msg)
	line, err := r.in.ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) {
			return "", fmt.Errorf("reading input: %w", err)
		}
		if line == "" {
			fmt.Fprintln(r.out)
			return "", ErrClosed
		}
	}
	return strings.TrimSpace(line), nil
}

func (r *Reader) ReadSecret(msg string) (string, error) {
	return r.ReadLine(msg)
}

// Confirm asks a yes/no question. Only "y" or "yes" (any case) confirms.
func Confirm(p Prompter, msg string) (bool, error) {
	answer, err := p.ReadLine(msg + " [y/N]: ")
	if err != nil {
		return false, err
	}
	answer = strings.ToLower(answer)
	return answer == "y" || answer == "yes", nil
}
