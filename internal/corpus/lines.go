// Package corpus streams newline-delimited text corpora and acquires the
// large external corpus file.
package corpus

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Lines iterates a corpus file one line at a time. Lines may be arbitrarily
// long and only the trailing newline is stripped; no other normalization is
// applied. A trailing newline at end of file does not yield an extra empty
// line, and a final line without a terminator is still yielded. Memory use
// is bounded by the longest single line, not the file size.
type Lines struct {
	path string
	f    *os.File
	r    *bufio.Reader
	err  error
	done bool
}

// Open opens a corpus for one streaming pass. Each vocabulary pass re-opens
// the corpus; a Lines value is not restartable.
func Open(path string) (*Lines, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open corpus %s: %w", path, err)
	}
	return &Lines{path: path, f: f, r: bufio.NewReaderSize(f, 1<<20)}, nil
}

// Next returns the next line and true, or "" and false when the corpus is
// exhausted or a read error occurred (check Err after the loop).
func (l *Lines) Next() (string, bool) {
	if l.done {
		return "", false
	}

	line, err := l.r.ReadString('\n')
	if err == io.EOF {
		l.done = true
		if line == "" {
			return "", false
		}
		// Final line without a terminator.
		return line, true
	}
	if err != nil {
		l.done = true
		l.err = fmt.Errorf("read corpus %s: %w", l.path, err)
		return "", false
	}

	return strings.TrimSuffix(line, "\n"), true
}

// Err reports the first read error encountered, if any.
func (l *Lines) Err() error { return l.err }

// Close releases the underlying file.
func (l *Lines) Close() error { return l.f.Close() }
