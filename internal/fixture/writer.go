package fixture

import (
	"bufio"
	"fmt"
	"os"
)

// Writer streams records to a fixture file. Memory use is bounded by one
// record plus the write buffer, independent of corpus size.
type Writer struct {
	path string
	f    *os.File
	w    *bufio.Writer
}

// Create truncates path (or creates it) and returns a Writer for a fresh
// vocabulary pass. There are no append semantics; prior runs are replaced.
func Create(path string) (*Writer, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create fixture %s: %w", path, err)
	}
	return &Writer{path: path, f: f, w: bufio.NewWriterSize(f, 1<<16)}, nil
}

// WriteRecord appends one record as a single self-delimited line.
func (w *Writer) WriteRecord(ids []int) error {
	b, err := MarshalRecord(ids)
	if err != nil {
		return err
	}
	if _, err := w.w.Write(b); err != nil {
		return fmt.Errorf("write fixture %s: %w", w.path, err)
	}
	if err := w.w.WriteByte('\n'); err != nil {
		return fmt.Errorf("write fixture %s: %w", w.path, err)
	}
	return nil
}

// Close flushes buffered records and closes the file.
func (w *Writer) Close() error {
	if err := w.w.Flush(); err != nil {
		_ = w.f.Close()
		return fmt.Errorf("flush fixture %s: %w", w.path, err)
	}
	if err := w.f.Close(); err != nil {
		return fmt.Errorf("close fixture %s: %w", w.path, err)
	}
	return nil
}

// Discard abandons a partially written fixture: the file is closed and
// removed, so an incomplete file can never be mistaken for a finished one.
func (w *Writer) Discard() {
	_ = w.f.Close()
	_ = os.Remove(w.path)
}

// Path returns the destination path.
func (w *Writer) Path() string { return w.path }
