package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/Veraticus/costctl/internal/model"
)

// ErrInputCancelled is returned when input is canceled by context.
var ErrInputCancelled = errors.New("input canceled")

// LineReader reads lines and gives up when the context ends.
type LineReader struct {
	reader *bufio.Reader
	mu     sync.Mutex
}

// NewLineReader wraps r.
func NewLineReader(r io.Reader) *LineReader {
	return &LineReader{reader: bufio.NewReader(r)}
}

// ReadLine reads one line without its line ending.
// A final line without a newline is returned as is.
func (r *LineReader) ReadLine(ctx context.Context) (string, error) {
	type result struct {
		err   error
		value string
	}
	resultCh := make(chan result, 1)

	go func() {
		r.mu.Lock()
		defer r.mu.Unlock()

		value, err := r.reader.ReadString('\n')
		if errors.Is(err, io.EOF) && value != "" {
			err = nil
		}
		resultCh <- result{value: strings.TrimRight(value, "\r\n"), err: err}
	}()

	select {
	case <-ctx.Done():
		return "", ErrInputCancelled
	case res := <-resultCh:
		return res.value, res.err
	}
}

// PhrasePrompt asks the operator to type the clear confirmation phrase.
type PhrasePrompt struct {
	reader *LineReader
	writer io.Writer
}

// NewPhrasePrompt creates a prompt reading from r and writing to w.
func NewPhrasePrompt(r io.Reader, w io.Writer) *PhrasePrompt {
	return &PhrasePrompt{reader: NewLineReader(r), writer: w}
}

// Ask shows what will be cleared and returns whatever the operator typed.
func (p *PhrasePrompt) Ask(ctx context.Context, req model.ClearRequest) (string, error) {
	warning := RenderBox(WarningIcon+" データのクリア",
		"次のデータを削除します: "+strings.Join(req.Targets(), "、")+"\nこの操作は元に戻せません。")
	if _, err := fmt.Fprintln(p.writer, warning); err != nil {
		return "", fmt.Errorf("failed to write warning: %w", err)
	}
	if _, err := fmt.Fprint(p.writer, FormatPrompt(fmt.Sprintf("確認のため「%s」と入力してください", model.ConfirmationPhrase))); err != nil {
		return "", fmt.Errorf("failed to write prompt: %w", err)
	}

	phrase, err := p.reader.ReadLine(ctx)
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return phrase, nil
}
