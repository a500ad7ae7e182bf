package main

import (
	"fmt"

	"github.com/example/go-token-fixtures/internal/corpus"
	"github.com/spf13/cobra"
)

func newCorpusFetchCmd() *cobra.Command {
	var url string
	var dest string

	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Download and decompress the large test corpus",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := requireConfig()
			if err != nil {
				return err
			}

			if url == "" {
				url = cfg.Fetch.URL
			}
			if dest == "" {
				dest = cfg.Paths.LargeCorpus
			}

			err = corpus.Fetch(corpus.FetchOptions{
				URL:      url,
				DestPath: dest,
				Progress: cmd.OutOrStdout(),
			})
			if err != nil {
				return fmt.Errorf("corpus fetch failed: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&url, "url", "", "Corpus URL (defaults to fetch.url)")
	cmd.Flags().StringVar(&dest, "dest", "", "Destination path (defaults to paths.large_corpus)")

	return cmd
}
