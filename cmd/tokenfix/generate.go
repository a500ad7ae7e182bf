package main

import (
	"os"

	"github.com/example/go-token-fixtures/internal/config"
	"github.com/example/go-token-fixtures/internal/generate"
	"github.com/spf13/cobra"
)

func newGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate token fixtures for each configured vocabulary",
		Long: `Generate runs one streaming pass per vocabulary over the configured
corpus and writes one fixture file per vocabulary: one JSON array of
token IDs per corpus line, in corpus order. Special-token text is always
encoded as plain data.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := requireConfig()
			if err != nil {
				return err
			}

			regime, err := config.ParseRegime(cfg.Run.Regime)
			if err != nil {
				return err
			}

			if err := os.MkdirAll(cfg.Paths.OutDir, 0o755); err != nil {
				return err
			}

			return generate.Run(generate.RunOptions{
				CorpusPath: cfg.CorpusPath(regime),
				OutDir:     cfg.Paths.OutDir,
				Encodings:  cfg.Run.Encodings,
				Reporter:   generate.Reporter{Out: cmd.OutOrStdout()},
				FixtureName: func(encoding string) string {
					return config.FixtureFilename(encoding, regime)
				},
			})
		},
	}

	return cmd
}
