package shell

import (
	"bufio"
	"fmt"
	"io"
)

// lineReader reads command lines from a non-interactive input, keeping the
// same history as the terminal prompt would.
type lineReader struct {
	scanner *bufio.Scanner
	history []string
}

func newLineReader(r io.Reader) *lineReader {
	return &lineReader{scanner: bufio.NewScanner(r)}
}

func (l *lineReader) Prompt(prompt string) (string, error) {
	if !l.scanner.Scan() {
		if err := l.scanner.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return l.scanner.Text(), nil
}

func (l *lineReader) AppendHistory(item string) {
	l.history = append(l.history, item)
}

func (l *lineReader) ReadHistory(r io.Reader) (int, error) {
	scanner := bufio.NewScanner(r)
	num := 0
	for scanner.Scan() {
		l.history = append(l.history, scanner.Text())
		num++
	}
	return num, scanner.Err()
}

func (l *lineReader) WriteHistory(w io.Writer) (int, error) {
	for i, item := range l.history {
		if _, err := fmt.Fprintln(w, item); err != nil {
			return i, err
		}
	}
	return len(l.history), nil
}

func (l *lineReader) Close() error {
	return nil
}
