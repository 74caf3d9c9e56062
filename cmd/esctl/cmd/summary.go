package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func summaryCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "summary <url>",
		Short:   "Fetch and summarize an article",
		Example: `  esctl summary https://example.com/dubai-market-report`,
		Args:    cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			c := newClient()
			resp, err := c.SummarizeArticle(context.Background(), args[0])
			if err != nil {
				return err
			}

			if jsonOutput() {
				return outputJSON(resp)
			}

			if !resp.Success {
				fmt.Println("Summary failed:", resp.Message)
				return nil
			}

			fmt.Println(resp.Summary)
			return nil
		},
	}
}
