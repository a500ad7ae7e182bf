// Package fixture reads and writes ground-truth fixture files: one JSON
// array of token IDs per line, in corpus order. The Nth record of a fixture
// file is the encoding of the Nth corpus line, and the record count always
// equals the corpus line count.
package fixture

import (
	"encoding/json"
	"fmt"
)

// MarshalRecord serializes one token-ID sequence as a JSON array. An empty
// record serializes to "[]", never to a blank line, so zero-token lines
// still occupy exactly one output line.
func MarshalRecord(ids []int) ([]byte, error) {
	if ids == nil {
		ids = []int{}
	}
	b, err := json.Marshal(ids)
	if err != nil {
		return nil, fmt.Errorf("marshal record: %w", err)
	}
	return b, nil
}

// UnmarshalRecord parses one fixture line back into its token-ID sequence.
// "[]" parses to an empty, non-nil slice.
func UnmarshalRecord(line []byte) ([]int, error) {
	ids := []int{}
	if err := json.Unmarshal(line, &ids); err != nil {
		return nil, fmt.Errorf("parse record %q: %w", string(line), err)
	}
	return ids, nil
}
