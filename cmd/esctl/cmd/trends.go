package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func trendsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "trends <city>",
		Short: "Fetch the price analysis for a city",
		Long: "Fetch the price trend analysis for a city. Serves the cached\n" +
			"detailed trend when the server has a fresh one, otherwise a list\n" +
			"of recent market articles.",
		Example: `  esctl trends Dubai
  esctl trends "Abu Dhabi" --output json`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			c := newClient()
			resp, err := c.CityPriceAnalysis(context.Background(), args[0])
			if err != nil {
				return err
			}

			if jsonOutput() {
				return outputJSON(resp)
			}

			if !resp.Success {
				fmt.Println("Analysis failed:", resp.Message)
				return nil
			}

			if resp.DetailedPriceTrend != nil {
				if err := printTrendDetail(resp.DetailedPriceTrend); err != nil {
					return err
				}
				if resp.Analysis != "" {
					fmt.Println("\n" + resp.Analysis)
				}
				return nil
			}

			if len(resp.Articles) == 0 {
				fmt.Println("No articles found.")
				return nil
			}
			return printArticlesTable(resp.Articles)
		},
	}
}
