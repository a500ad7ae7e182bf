// Package generate drives fixture generation: one streaming pass per
// vocabulary over the corpus, with exactly one record written per corpus
// line. Passes run sequentially and share no state; a failed pass never
// leaves a fixture file behind and never touches fixtures from passes that
// already completed.
package generate

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/example/go-token-fixtures/internal/corpus"
	"github.com/example/go-token-fixtures/internal/encoder"
	"github.com/example/go-token-fixtures/internal/fixture"
)

// Stats counts the work done in one vocabulary pass. Observational only;
// the fixture file itself is the contract.
type Stats struct {
	Lines  int64
	Tokens int64
}

// Reporter prints pass progress for the operator. Write failures are
// ignored: reporting must never abort a pass.
type Reporter struct {
	Out io.Writer
}

func (r Reporter) out() io.Writer {
	if r.Out == nil {
		return io.Discard
	}
	return r.Out
}

// StartPass announces the vocabulary and destination before a pass begins.
func (r Reporter) StartPass(encoding, path string) {
	_, _ = fmt.Fprintf(r.out(), "%s: writing to %s... ", encoding, path)
}

// FinishPass prints the summary line. It is called only after a fully
// successful pass, so its presence implies a complete fixture.
func (r Reporter) FinishPass(stats Stats) {
	_, _ = fmt.Fprintf(r.out(), "OK! (%d test cases, %d tokens)\n", stats.Lines, stats.Tokens)
}

// FailPass terminates the banner line; the error itself propagates to the
// caller.
func (r Reporter) FailPass() {
	_, _ = fmt.Fprintln(r.out(), "FAILED")
}

type PassOptions struct {
	CorpusPath string
	Encoder    encoder.Encoder
	OutPath    string
	Reporter   Reporter
}

// Pass encodes every corpus line with one vocabulary and writes one record
// per line to OutPath, in corpus order. The corpus is opened before the
// output file is created, so a missing corpus produces no output at all;
// any later failure removes the partial file.
func Pass(opts PassOptions) (Stats, error) {
	opts.Reporter.StartPass(opts.Encoder.Name(), opts.OutPath)

	lines, err := corpus.Open(opts.CorpusPath)
	if err != nil {
		opts.Reporter.FailPass()
		return Stats{}, err
	}
	defer lines.Close()

	w, err := fixture.Create(opts.OutPath)
	if err != nil {
		opts.Reporter.FailPass()
		return Stats{}, err
	}

	var stats Stats
	for {
		line, ok := lines.Next()
		if !ok {
			break
		}

		ids, err := opts.Encoder.EncodeLine(line)
		if err != nil {
			w.Discard()
			opts.Reporter.FailPass()
			return Stats{}, fmt.Errorf("encode line %d with %s: %w", stats.Lines+1, opts.Encoder.Name(), err)
		}
		if err := w.WriteRecord(ids); err != nil {
			w.Discard()
			opts.Reporter.FailPass()
			return Stats{}, err
		}

		stats.Lines++
		stats.Tokens += int64(len(ids))
	}
	if err := lines.Err(); err != nil {
		w.Discard()
		opts.Reporter.FailPass()
		return Stats{}, err
	}

	if err := w.Close(); err != nil {
		w.Discard()
		opts.Reporter.FailPass()
		return Stats{}, err
	}

	opts.Reporter.FinishPass(stats)
	return stats, nil
}

type RunOptions struct {
	CorpusPath  string
	OutDir      string
	Encodings   []string
	Reporter    Reporter
	NewEncoder  func(name string) (encoder.Encoder, error)
	FixtureName func(encoding string) string
}

// Run generates fixtures for each configured vocabulary, strictly in
// sequence. The corpus is checked eagerly so the run aborts before any
// pass starts writing when the corpus is unavailable.
func Run(opts RunOptions) error {
	if opts.NewEncoder == nil {
		opts.NewEncoder = func(name string) (encoder.Encoder, error) {
			return encoder.NewTiktoken(name)
		}
	}
	if opts.FixtureName == nil {
		opts.FixtureName = func(encoding string) string {
			return encoding + ".txt"
		}
	}

	if _, err := os.Stat(opts.CorpusPath); err != nil {
		return fmt.Errorf("corpus unavailable: %w", err)
	}

	for _, name := range opts.Encodings {
		enc, err := opts.NewEncoder(name)
		if err != nil {
			return fmt.Errorf("vocabulary %s: %w", name, err)
		}

		outPath := filepath.Join(opts.OutDir, opts.FixtureName(name))
		stats, err := Pass(PassOptions{
			CorpusPath: opts.CorpusPath,
			Encoder:    enc,
			OutPath:    outPath,
			Reporter:   opts.Reporter,
		})
		if err != nil {
			return fmt.Errorf("vocabulary %s: %w", name, err)
		}

		slog.Debug("pass complete",
			"encoding", name,
			"fixture", outPath,
			"lines", stats.Lines,
			"tokens", stats.Tokens)
	}

	return nil
}
