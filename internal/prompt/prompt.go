// Package prompt implements the interactive yes/no confirmation used before
// destructive changes.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrNoAnswer is returned when input ends before a Y or N is read.
var ErrNoAnswer = errors.New("no answer: input closed before Y or N")

// Unrecognized is printed before re-asking after an answer other than Y or N.
const Unrecognized = "Unrecognized argument. Please enter Y or N."

// Confirmer asks yes/no questions on a line-oriented stream.
type Confirmer struct {
	in  *bufio.Reader
	out io.Writer
}

// NewConfirmer reads answers from in and writes questions to out.
func NewConfirmer(in io.Reader, out io.Writer) *Confirmer {
	return &Confirmer{in: bufio.NewReader(in), out: out}
}

// Confirm prints question with a [Y/N] suffix and blocks until the answer
// is Y or N, ignoring case and surrounding space. Any other answer prints
// Unrecognized and asks again.
func (c *Confirmer) Confirm(question string) (bool, error) {
	fmt.Fprintf(c.out, "%s [Y/N] ", question)
	for {
		line, err := c.in.ReadString('\n')
		answer := strings.ToUpper(strings.TrimSpace(line))
		switch {
		case answer == "Y":
			return true, nil
		case answer == "N":
			return false, nil
		case err == io.EOF:
			fmt.Fprintln(c.out)
			return false, ErrNoAnswer
		case err != nil:
			return false, fmt.Errorf("reading answer: %w", err)
		}
		fmt.Fprintf(c.out, "%s\n%s [Y/N] ", Unrecognized, question)
	}
}
