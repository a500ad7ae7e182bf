package config

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type Config struct {
	Paths    PathsConfig `mapstructure:"paths"`
	Run      RunConfig   `mapstructure:"run"`
	Fetch    FetchConfig `mapstructure:"fetch"`
	LogLevel string      `mapstructure:"log_level"`
}

type PathsConfig struct {
	SampleCorpus string `mapstructure:"sample_corpus"`
	LargeCorpus  string `mapstructure:"large_corpus"`
	OutDir       string `mapstructure:"out_dir"`
}

type RunConfig struct {
	Regime    string   `mapstructure:"regime"`
	Encodings []string `mapstructure:"encodings"`
}

type FetchConfig struct {
	URL string `mapstructure:"url"`
}

// Regime selects which corpus a generation run reads and how its fixture
// files are named.
type Regime string

const (
	// RegimeStandard uses the small bundled sample corpus.
	RegimeStandard Regime = "standard"
	// RegimeLarge uses the external multi-gigabyte corpus.
	RegimeLarge Regime = "large"
)

// ParseRegime validates a regime string from configuration.
func ParseRegime(s string) (Regime, error) {
	switch Regime(strings.ToLower(strings.TrimSpace(s))) {
	case RegimeStandard:
		return RegimeStandard, nil
	case RegimeLarge:
		return RegimeLarge, nil
	default:
		return "", fmt.Errorf("unknown regime %q (want %q or %q)", s, RegimeStandard, RegimeLarge)
	}
}

// CorpusPath returns the corpus file for the given regime.
func (c Config) CorpusPath(r Regime) string {
	if r == RegimeLarge {
		return c.Paths.LargeCorpus
	}
	return c.Paths.SampleCorpus
}

// FixtureFilename derives the output filename for one (encoding, regime)
// pair. Standard-regime fixtures are named after the encoding itself;
// large-regime fixtures replace the "_base" suffix with "_1gb", e.g.
// r50k_base -> r50k_1gb.txt.
func FixtureFilename(encoding string, regime Regime) string {
	if regime == RegimeLarge {
		return strings.TrimSuffix(encoding, "_base") + "_1gb.txt"
	}
	return encoding + ".txt"
}

type LoadOptions struct {
	Cmd        flagBinder
	ConfigFile string
	Defaults   Config
}

type flagBinder interface {
	Flags() *pflag.FlagSet
}

func DefaultConfig() Config {
	return Config{
		Paths: PathsConfig{
			SampleCorpus: "testdata/samples.txt",
			LargeCorpus:  "pae-enwiki-2023-04-1gb.txt",
			OutDir:       "testdata",
		},
		Run: RunConfig{
			Regime:    string(RegimeStandard),
			Encodings: []string{"r50k_base", "p50k_base", "cl100k_base"},
		},
		Fetch: FetchConfig{
			URL: "https://gotoken.phebert.dev/pae-enwiki-2023-04-1gb.txt.gz",
		},
		LogLevel: "info",
	}
}

func RegisterFlags(fs *pflag.FlagSet, defaults Config) {
	fs.String("paths-sample-corpus", defaults.Paths.SampleCorpus, "Path to the bundled sample corpus")
	fs.String("paths-large-corpus", defaults.Paths.LargeCorpus, "Path to the large corpus file")
	fs.String("paths-out-dir", defaults.Paths.OutDir, "Directory where fixture files are written")
	fs.String("run-regime", defaults.Run.Regime, "Corpus regime: standard or large")
	fs.StringSlice("run-encodings", defaults.Run.Encodings, "Vocabularies to generate fixtures for")
	fs.String("fetch-url", defaults.Fetch.URL, "URL of the gzip-compressed large corpus")
	fs.String("log-level", defaults.LogLevel, "Log level (debug|info|warn|error)")
}

func Load(opts LoadOptions) (Config, error) {
	v := viper.New()

	setDefaults(v, opts.Defaults)
	if opts.Cmd != nil {
		if err := v.BindPFlags(opts.Cmd.Flags()); err != nil {
			return Config{}, fmt.Errorf("bind flags: %w", err)
		}
	}
	registerAliases(v)

	v.SetEnvPrefix("TOKENFIX")
	replacer := strings.NewReplacer("-", "_", ".", "_", "__", "_")
	v.SetEnvKeyReplacer(replacer)
	v.AutomaticEnv()

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	} else {
		v.SetConfigName("tokenfix")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return Config{}, fmt.Errorf("read config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}

	if _, err := ParseRegime(cfg.Run.Regime); err != nil {
		return Config{}, err
	}
	if len(cfg.Run.Encodings) == 0 {
		return Config{}, fmt.Errorf("run.encodings must name at least one vocabulary")
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper, c Config) {
	v.SetDefault("paths.sample_corpus", c.Paths.SampleCorpus)
	v.SetDefault("paths.large_corpus", c.Paths.LargeCorpus)
	v.SetDefault("paths.out_dir", c.Paths.OutDir)
	v.SetDefault("run.regime", c.Run.Regime)
	v.SetDefault("run.encodings", c.Run.Encodings)
	v.SetDefault("fetch.url", c.Fetch.URL)
	v.SetDefault("log_level", c.LogLevel)
}

func registerAliases(v *viper.Viper) {
	v.RegisterAlias("paths.sample_corpus", "paths-sample-corpus")
	v.RegisterAlias("paths.large_corpus", "paths-large-corpus")
	v.RegisterAlias("paths.out_dir", "paths-out-dir")
	v.RegisterAlias("run.regime", "run-regime")
	v.RegisterAlias("run.encodings", "run-encodings")
	v.RegisterAlias("fetch.url", "fetch-url")
	v.RegisterAlias("log_level", "log-level")
}
