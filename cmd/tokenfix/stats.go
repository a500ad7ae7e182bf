package main

import (
	"fmt"

	"github.com/example/go-token-fixtures/internal/fixture"
	"github.com/spf13/cobra"
)

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats <fixture-file>",
		Short: "Recount records and tokens in an existing fixture file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]

			r, err := fixture.Open(path)
			if err != nil {
				return err
			}
			defer r.Close()

			var lines, tokens int64
			for {
				ids, ok := r.Next()
				if !ok {
					break
				}
				lines++
				tokens += int64(len(ids))
			}
			if err := r.Err(); err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s: %d test cases, %d tokens\n", path, lines, tokens)
			return nil
		},
	}

	return cmd
}
