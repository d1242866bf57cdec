// Package dump loads the textual unwind table dumps that cfastates
// analyzes.
package dump

import (
	"bufio"
	"io"
	"io/ioutil"
	"os"
	"strings"

	"github.com/hitzhangjie/cfastates/pkg/logflags"
)

// Stdin is the path used to name the standard input stream.
const Stdin = "-"

// maxLineSize bounds a single line of the dump
const maxLineSize = 16 * 1024 * 1024

// Open opens the dump at path. An empty path or "-" selects stdin, which
// is not closed by the returned ReadCloser. A nil stdin means os.Stdin.
func Open(path string, stdin io.Reader) (io.ReadCloser, error) {
	if path == "" || path == Stdin {
		if stdin == nil {
			stdin = os.Stdin
		}
		return ioutil.NopCloser(stdin), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, &InputError{Path: path, Err: err}
	}
	return f, nil
}

// ReadLines reads r until EOF and splits it into lines, without the line
// terminators.
func ReadLines(r io.Reader) ([]string, error) {
	scanner := bufio.NewScanner(r)
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, maxLineSize)

	lines := []string{}
	for scanner.Scan() {
		lines = append(lines, strings.TrimSuffix(scanner.Text(), "\r"))
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}

// Load reads every line of the dump at path, see Open.
func Load(path string, stdin io.Reader) ([]string, error) {
	name := path
	if name == "" {
		name = Stdin
	}
	log := logflags.InputLogger().WithField("path", name)

	rc, err := Open(path, stdin)
	if err != nil {
		log.WithError(err).Debug("open failed")
		return nil, err
	}
	defer rc.Close()

	lines, err := ReadLines(rc)
	if err != nil {
		return nil, &InputError{Path: name, Err: err}
	}
	log.Debugf("read %d lines", len(lines))
	return lines, nil
}
