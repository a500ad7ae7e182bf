// Package testutil provides shared corpus helpers for pipeline tests.
package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// WriteCorpus writes the given lines, newline-terminated, to a fresh temp
// file and returns its path.
func WriteCorpus(tb testing.TB, lines ...string) string {
	tb.Helper()

	var b strings.Builder
	for _, l := range lines {
		b.WriteString(l)
		b.WriteByte('\n')
	}

	path := filepath.Join(tb.TempDir(), "corpus.txt")
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		tb.Fatalf("write corpus: %v", err)
	}
	return path
}

// ReadLines returns a file's lines with terminators stripped. A trailing
// newline does not produce an extra empty line.
func ReadLines(tb testing.TB, path string) []string {
	tb.Helper()

	raw, err := os.ReadFile(path)
	if err != nil {
		tb.Fatalf("read %s: %v", path, err)
	}
	content := strings.TrimSuffix(string(raw), "\n")
	if content == "" {
		return nil
	}
	return strings.Split(content, "\n")
}
