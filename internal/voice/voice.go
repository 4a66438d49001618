// Package voice abstracts how the candidate's utterances enter and leave
// the system. The interview loop only sees Capturer and Speaker; the default
// implementation is a typed-text terminal exchange.
package voice

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrNoInput means the input stream closed before an utterance arrived.
var ErrNoInput = errors.New("no input captured")

// Capturer obtains one utterance from the candidate.
type Capturer interface {
	Capture() (string, error)
}

// Speaker delivers one message to the candidate.
type Speaker interface {
	Speak(text string) error
}

// TextIO implements both interfaces over reader/writer pairs: prompts and
// questions are printed, answers are read one line at a time.
type TextIO struct {
	scanner *bufio.Scanner
	out     io.Writer
	prompt  string
}

// NewTextIO creates a TextIO. prompt is printed before each capture.
func NewTextIO(in io.Reader, out io.Writer, prompt string) *TextIO {
	sc := bufio.NewScanner(in)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	return &TextIO{scanner: sc, out: out, prompt: prompt}
}

// Capture reads the next non-empty line.
func (t *TextIO) Capture() (string, error) {
	for {
		if t.prompt != "" {
			fmt.Fprint(t.out, t.prompt)
		}
		if !t.scanner.Scan() {
			if err := t.scanner.Err(); err != nil {
				return "", err
			}
			return "", ErrNoInput
		}
		line := strings.TrimSpace(t.scanner.Text())
		if line != "" {
			return line, nil
		}
	}
}

// Speak prints the text followed by a blank line.
func (t *TextIO) Speak(text string) error {
	_, err := fmt.Fprintf(t.out, "%s\n\n", text)
	return err
}
