// Package encoder wraps reference BPE implementations behind a small
// line-oriented interface. Encoding is deterministic: the same vocabulary
// and input always produce the same token IDs, which is what makes the
// generated fixtures usable as ground truth.
package encoder

import (
	"fmt"
	"sync"

	"github.com/pkoukk/tiktoken-go"
	tiktoken_loader "github.com/pkoukk/tiktoken-go-loader"
)

// The standard vocabularies fixtures are generated for.
const (
	R50KBase   = "r50k_base"
	P50KBase   = "p50k_base"
	CL100KBase = "cl100k_base"
)

// Encoder converts one line of text into reference token IDs. Implementations
// are stateless between calls and must accept arbitrary input, including the
// empty string (which encodes to an empty record).
type Encoder interface {
	Name() string
	EncodeLine(line string) ([]int, error)
}

var offlineLoaderOnce sync.Once

// Tiktoken adapts one tiktoken encoding to the Encoder interface. The BPE
// dictionaries come from the embedded offline loader, so loading never
// touches the network and results do not depend on cached downloads.
type Tiktoken struct {
	name string
	enc  *tiktoken.Tiktoken
}

// NewTiktoken loads the named encoding. The returned adapter is reused for
// every line of a vocabulary pass.
func NewTiktoken(name string) (*Tiktoken, error) {
	offlineLoaderOnce.Do(func() {
		tiktoken.SetBpeLoader(tiktoken_loader.NewOfflineLoader())
	})

	enc, err := tiktoken.GetEncoding(name)
	if err != nil {
		return nil, fmt.Errorf("load encoding %q: %w", name, err)
	}
	return &Tiktoken{name: name, enc: enc}, nil
}

// Name returns the encoding name, e.g. "cl100k_base".
func (t *Tiktoken) Name() string { return t.name }

// EncodeLine tokenizes a line as plain data. Passing nil allowed and
// disallowed special-token sets disables special-token recognition
// entirely: input that looks like a special token (e.g. "<|endoftext|>")
// is encoded literally, and no input is ever rejected.
func (t *Tiktoken) EncodeLine(line string) ([]int, error) {
	ids := t.enc.Encode(line, nil, nil)
	if ids == nil {
		ids = []int{}
	}
	return ids, nil
}
