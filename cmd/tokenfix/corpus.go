package main

import "github.com/spf13/cobra"

func newCorpusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "corpus",
		Short: "Corpus acquisition commands",
	}

	cmd.AddCommand(newCorpusFetchCmd())
	return cmd
}
