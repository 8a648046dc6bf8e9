// Package prompt reads answers from an interactive terminal.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

const (
	URLQuestion    = "Please paste your Amazon product url here: "
	ExportQuestion = "Save to File? (Y)es / (N)o:\n>"
	invalidPrefix  = "Invalid Input: "
)

type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

func New(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out}
}

// URL asks for the product page URL and returns the raw answer.
func (p *Prompter) URL() (string, error) {
	if _, err := fmt.Fprint(p.out, URLQuestion); err != nil {
		return "", err
	}
	line, err := p.readLine()
	if err != nil {
		return "", fmt.Errorf("failed to read URL: %w", err)
	}
	return line, nil
}

// Confirm asks question until the answer is y or n (any case).
// End of input counts as n.
func (p *Prompter) Confirm(question string) (bool, error) {
	ask := question
	for {
		if _, err := fmt.Fprint(p.out, ask); err != nil {
			return false, err
		}

		line, err := p.readLine()
		if errors.Is(err, io.EOF) {
			return false, nil
		}
		if err != nil {
			return false, fmt.Errorf("failed to read answer: %w", err)
		}

		switch strings.ToLower(line) {
		case "y":
			return true, nil
		case "n":
			return false, nil
		}
		ask = invalidPrefix + question
	}
}

// readLine returns the next line without surrounding whitespace. A final
// line without a newline is returned; io.EOF only when nothing was read.
func (p *Prompter) readLine() (string, error) {
	line, err := p.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}
