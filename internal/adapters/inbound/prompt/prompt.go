// Package prompt reads line-oriented answers from the terminal.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ClearValue typed at a field prompt empties the field.
const ClearValue = "-"

// Prompter asks questions on out and reads answers from in, one line each.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

func New(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out}
}

// Line prints prompt and returns the next line without its newline. ok is false
// once the input is exhausted.
func (p *Prompter) Line(prompt string) (line string, ok bool, err error) {
	fmt.Fprint(p.out, prompt)
	line, err = p.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) {
			if line == "" {
				return "", false, nil
			}
			return strings.TrimRight(line, "\r\n"), true, nil
		}
		return "", false, err
	}
	return strings.TrimRight(line, "\r\n"), true, nil
}

// Field asks for a form value. An empty answer keeps current and ClearValue
// empties it.
func (p *Prompter) Field(label, current string) (string, error) {
	prompt := label + ": "
	if current != "" {
		prompt = fmt.Sprintf("%s [%s]: ", label, current)
	}
	line, ok, err := p.Line(prompt)
	if err != nil {
		return current, err
	}
	if !ok {
		return current, io.EOF
	}
	switch strings.TrimSpace(line) {
	case "":
		return current, nil
	case ClearValue:
		return "", nil
	}
	return line, nil
}

// Confirm implements domain.Confirmer. Only "y" or "yes" confirms.
func (p *Prompter) Confirm(question string) bool {
	line, ok, err := p.Line(question + " [y/N]: ")
	if err != nil || !ok {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}

// AssumeYes confirms everything. It backs --yes flags.
type AssumeYes struct{}

func (AssumeYes) Confirm(string) bool { return true }
