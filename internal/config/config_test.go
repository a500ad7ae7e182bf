package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
)

// fakeBinder wraps a pflag.FlagSet to satisfy the flagBinder interface.
type fakeBinder struct {
	fs *pflag.FlagSet
}

func (f *fakeBinder) Flags() *pflag.FlagSet { return f.fs }

// newFlagBinder creates a FlagSet with all config flags registered at their defaults.
func newFlagBinder(defaults Config) *fakeBinder {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterFlags(fs, defaults)

	return &fakeBinder{fs: fs}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Paths.SampleCorpus != "testdata/samples.txt" {
		t.Errorf("SampleCorpus = %q; want %q", cfg.Paths.SampleCorpus, "testdata/samples.txt")
	}

	if cfg.Paths.LargeCorpus != "pae-enwiki-2023-04-1gb.txt" {
		t.Errorf("LargeCorpus = %q; want %q", cfg.Paths.LargeCorpus, "pae-enwiki-2023-04-1gb.txt")
	}

	if cfg.Paths.OutDir != "testdata" {
		t.Errorf("OutDir = %q; want %q", cfg.Paths.OutDir, "testdata")
	}

	if cfg.Run.Regime != "standard" {
		t.Errorf("Run.Regime = %q; want %q", cfg.Run.Regime, "standard")
	}

	want := []string{"r50k_base", "p50k_base", "cl100k_base"}
	if len(cfg.Run.Encodings) != len(want) {
		t.Fatalf("Run.Encodings = %v; want %v", cfg.Run.Encodings, want)
	}
	for i, enc := range want {
		if cfg.Run.Encodings[i] != enc {
			t.Errorf("Run.Encodings[%d] = %q; want %q", i, cfg.Run.Encodings[i], enc)
		}
	}

	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q; want %q", cfg.LogLevel, "info")
	}
}

func TestParseRegime(t *testing.T) {
	tests := []struct {
		in      string
		want    Regime
		wantErr bool
	}{
		{in: "standard", want: RegimeStandard},
		{in: "large", want: RegimeLarge},
		{in: " Large ", want: RegimeLarge},
		{in: "STANDARD", want: RegimeStandard},
		{in: "", wantErr: true},
		{in: "huge", wantErr: true},
	}

	for _, tt := range tests {
		got, err := ParseRegime(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseRegime(%q) expected error, got %q", tt.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseRegime(%q) error = %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseRegime(%q) = %q; want %q", tt.in, got, tt.want)
		}
	}
}

func TestFixtureFilename(t *testing.T) {
	tests := []struct {
		encoding string
		regime   Regime
		want     string
	}{
		{"r50k_base", RegimeStandard, "r50k_base.txt"},
		{"p50k_base", RegimeStandard, "p50k_base.txt"},
		{"cl100k_base", RegimeStandard, "cl100k_base.txt"},
		{"r50k_base", RegimeLarge, "r50k_1gb.txt"},
		{"p50k_base", RegimeLarge, "p50k_1gb.txt"},
		{"cl100k_base", RegimeLarge, "cl100k_1gb.txt"},
	}

	for _, tt := range tests {
		got := FixtureFilename(tt.encoding, tt.regime)
		if got != tt.want {
			t.Errorf("FixtureFilename(%q, %q) = %q; want %q", tt.encoding, tt.regime, got, tt.want)
		}
	}
}

func TestCorpusPathFollowsRegime(t *testing.T) {
	cfg := DefaultConfig()

	if got := cfg.CorpusPath(RegimeStandard); got != cfg.Paths.SampleCorpus {
		t.Errorf("CorpusPath(standard) = %q; want %q", got, cfg.Paths.SampleCorpus)
	}
	if got := cfg.CorpusPath(RegimeLarge); got != cfg.Paths.LargeCorpus {
		t.Errorf("CorpusPath(large) = %q; want %q", got, cfg.Paths.LargeCorpus)
	}
}

func TestLoadUsesDefaults(t *testing.T) {
	cfg, err := Load(LoadOptions{Defaults: DefaultConfig()})
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if cfg.Run.Regime != "standard" {
		t.Errorf("Run.Regime = %q; want %q", cfg.Run.Regime, "standard")
	}
	if len(cfg.Run.Encodings) != 3 {
		t.Errorf("len(Run.Encodings) = %d; want 3", len(cfg.Run.Encodings))
	}
}

func TestLoadFlagsOverrideDefaults(t *testing.T) {
	binder := newFlagBinder(DefaultConfig())
	if err := binder.fs.Set("run-regime", "large"); err != nil {
		t.Fatalf("set flag: %v", err)
	}
	if err := binder.fs.Set("paths-out-dir", "/tmp/fixtures"); err != nil {
		t.Fatalf("set flag: %v", err)
	}

	cfg, err := Load(LoadOptions{Cmd: binder, Defaults: DefaultConfig()})
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if cfg.Run.Regime != "large" {
		t.Errorf("Run.Regime = %q; want %q", cfg.Run.Regime, "large")
	}
	if cfg.Paths.OutDir != "/tmp/fixtures" {
		t.Errorf("Paths.OutDir = %q; want %q", cfg.Paths.OutDir, "/tmp/fixtures")
	}
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tokenfix.yaml")
	content := "run:\n  regime: large\n  encodings:\n    - cl100k_base\npaths:\n  out_dir: out\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(LoadOptions{ConfigFile: path, Defaults: DefaultConfig()})
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if cfg.Run.Regime != "large" {
		t.Errorf("Run.Regime = %q; want %q", cfg.Run.Regime, "large")
	}
	if len(cfg.Run.Encodings) != 1 || cfg.Run.Encodings[0] != "cl100k_base" {
		t.Errorf("Run.Encodings = %v; want [cl100k_base]", cfg.Run.Encodings)
	}
	if cfg.Paths.OutDir != "out" {
		t.Errorf("Paths.OutDir = %q; want %q", cfg.Paths.OutDir, "out")
	}
	// Keys absent from the file keep their defaults.
	if cfg.Paths.SampleCorpus != "testdata/samples.txt" {
		t.Errorf("Paths.SampleCorpus = %q; want default", cfg.Paths.SampleCorpus)
	}
}

func TestLoadRejectsInvalidRegime(t *testing.T) {
	defaults := DefaultConfig()
	defaults.Run.Regime = "gigantic"

	_, err := Load(LoadOptions{Defaults: defaults})
	if err == nil {
		t.Fatal("expected error for invalid regime")
	}
}

func TestLoadRejectsEmptyEncodings(t *testing.T) {
	defaults := DefaultConfig()
	defaults.Run.Encodings = nil

	_, err := Load(LoadOptions{Defaults: defaults})
	if err == nil {
		t.Fatal("expected error for empty encodings")
	}
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("TOKENFIX_RUN_REGIME", "large")

	cfg, err := Load(LoadOptions{Defaults: DefaultConfig()})
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if cfg.Run.Regime != "large" {
		t.Errorf("Run.Regime = %q; want %q (from env)", cfg.Run.Regime, "large")
	}
}
