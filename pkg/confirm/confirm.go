// Package confirm provides console prompts for yes/no confirmations and
// free-form answers with defaults.
package confirm

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Confirmer asks the user to approve an action
type Confirmer interface {
	Confirm(question string) (bool, error)
}

// Prompter asks questions on an output stream and reads answers from an input stream.
// A single buffered reader is kept so consecutive prompts never lose input.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

// NewPrompter creates a prompter over in and out
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{
		in:  bufio.NewReader(in),
		out: out,
	}
}

// Confirm prints question followed by " (yes/no): " and accepts y or yes in any case.
// End of input counts as no.
func (p *Prompter) Confirm(question string) (bool, error) {
	fmt.Fprintf(p.out, "%s (yes/no): ", question)

	answer, err := p.readLine()
	if err != nil {
		return false, err
	}

	answer = strings.ToLower(answer)
	return answer == "y" || answer == "yes", nil
}

// Ask prints question with its default and returns the trimmed answer,
// or def when the answer is empty.
func (p *Prompter) Ask(question, def string) (string, error) {
	if def != "" {
		fmt.Fprintf(p.out, "%s (press Enter for default '%s'): ", question, def)
	} else {
		fmt.Fprintf(p.out, "%s: ", question)
	}

	answer, err := p.readLine()
	if err != nil {
		return "", err
	}
	if answer == "" {
		return def, nil
	}
	return answer, nil
}

func (p *Prompter) readLine() (string, error) {
	line, err := p.in.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("failed to read user input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// Always is a Confirmer that approves everything, used for --yes
type Always struct{}

func (Always) Confirm(string) (bool, error) { return true, nil }
