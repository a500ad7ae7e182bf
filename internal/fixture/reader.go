package fixture

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Reader streams records back out of a fixture file without buffering the
// whole file. Consumers see records in written (corpus) order.
type Reader struct {
	path string
	f    *os.File
	r    *bufio.Reader
	err  error
	done bool
}

// Open opens a fixture file for streaming reads.
func Open(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open fixture %s: %w", path, err)
	}
	return &Reader{path: path, f: f, r: bufio.NewReaderSize(f, 1<<20)}, nil
}

// Next returns the next record and true, or nil and false when the file is
// exhausted or a read/parse error occurred (check Err after the loop).
func (r *Reader) Next() ([]int, bool) {
	if r.done {
		return nil, false
	}

	line, err := r.r.ReadString('\n')
	if err == io.EOF {
		r.done = true
		if line == "" {
			return nil, false
		}
	} else if err != nil {
		r.done = true
		r.err = fmt.Errorf("read fixture %s: %w", r.path, err)
		return nil, false
	}

	ids, perr := UnmarshalRecord([]byte(strings.TrimSuffix(line, "\n")))
	if perr != nil {
		r.done = true
		r.err = fmt.Errorf("fixture %s: %w", r.path, perr)
		return nil, false
	}
	return ids, true
}

// Err reports the first read or parse error encountered, if any.
func (r *Reader) Err() error { return r.err }

// Close releases the underlying file.
func (r *Reader) Close() error { return r.f.Close() }
