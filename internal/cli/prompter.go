package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Prompter asks the user yes/no questions on the terminal. Its Confirm method
// satisfies service.ConfirmFunc, so the consistency engine can delegate its
// confirmation decisions here without knowing about terminals.
type Prompter struct {
	reader *NonBlockingReader
	out    io.Writer
}

// NewPrompter creates a prompter reading answers from in and writing
// questions to out.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{
		reader: NewNonBlockingReader(in),
		out:    out,
	}
}

// Confirm asks a yes/no question and returns the user's answer. Only "y" or
// "yes" (any case) count as yes; anything else, including a bare newline, is
// no. EOF on input is treated as a decline rather than an error, so piped
// input that runs dry falls back to the safe default.
func (p *Prompter) Confirm(ctx context.Context, question string) (bool, error) {
	fmt.Fprint(p.out, FormatPrompt(question))

	line, err := p.reader.ReadLine(ctx)
	if errors.Is(err, io.EOF) {
		fmt.Fprintln(p.out)
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read confirmation: %w", err)
	}

	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}
