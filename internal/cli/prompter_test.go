package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrompterConfirm(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{name: "lowercase y", input: "y\n", want: true},
		{name: "yes", input: "yes\n", want: true},
		{name: "uppercase", input: "YES\n", want: true},
		{name: "padded yes", input: "  y  \n", want: true},
		{name: "n", input: "n\n", want: false},
		{name: "no", input: "no\n", want: false},
		{name: "bare newline defaults to no", input: "\n", want: false},
		{name: "gibberish is no", input: "maybe\n", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			p := NewPrompter(strings.NewReader(tt.input), &out)

			got, err := p.Confirm(context.Background(), "Proceed?")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Contains(t, out.String(), "Proceed?")
		})
	}
}

func TestPrompterConfirmEOF(t *testing.T) {
	var out bytes.Buffer
	p := NewPrompter(strings.NewReader(""), &out)

	got, err := p.Confirm(context.Background(), "Proceed?")
	require.NoError(t, err)
	assert.False(t, got, "exhausted input must decline")
}

func TestPrompterConfirmContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	// A reader that never delivers data; only the canceled context unblocks us.
	p := NewPrompter(blockingReader{}, &out)

	_, err := p.Confirm(ctx, "Proceed?")
	assert.ErrorIs(t, err, ErrInputCancelled)
}

// blockingReader blocks forever, standing in for a terminal nobody types on.
type blockingReader struct{}

func (blockingReader) Read(_ []byte) (int, error) {
	select {}
}

func TestNonBlockingReaderReadLine(t *testing.T) {
	r := NewNonBlockingReader(strings.NewReader("  hello world  \n"))

	line, err := r.ReadLine(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "hello world", line)
}

func TestNonBlockingReaderCancellation(t *testing.T) {
	r := NewNonBlockingReader(blockingReader{})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := r.ReadString(ctx, '\n')
	assert.ErrorIs(t, err, ErrInputCancelled)
}
