package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	apiclient "github.com/karimhaddad/estate-scout/internal/api/client"
)

func searchCmd() *cobra.Command {
	var (
		city     string
		maxPrice float64
		limit    int
		category string
		propType string
	)

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Run a live property search with AI analysis",
		Long: "Search live UAE property listings through the scraping provider\n" +
			"and generate an AI analysis of the surviving matches.",
		Example: `  # Flats in Dubai under AED 2.5 million
  esctl search --city Dubai --max-price 2.5 --type flat

  # Commercial properties in Abu Dhabi, at most 4 results
  esctl search --city "Abu Dhabi" --max-price 10 --category commercial --limit 4`,
		RunE: func(_ *cobra.Command, _ []string) error {
			c := newClient()
			resp, err := c.SearchProperties(context.Background(), &apiclient.SearchRequest{
				City:             city,
				MaxPrice:         maxPrice,
				Limit:            limit,
				PropertyCategory: category,
				PropertyType:     propType,
			})
			if err != nil {
				return err
			}

			if jsonOutput() {
				return outputJSON(resp)
			}

			if !resp.Success {
				fmt.Println("Search failed:", resp.Message)
				return nil
			}

			if len(resp.Properties) == 0 {
				fmt.Println("No matching properties found.")
			} else {
				if err := printListingsTable(resp.Properties); err != nil {
					return err
				}
			}

			if resp.Analysis != "" {
				fmt.Println("\n" + resp.Analysis)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&city, "city", "", "city to search in (required)")
	cmd.Flags().Float64Var(&maxPrice, "max-price", 0, "budget ceiling in millions of AED (required)")
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum listings to return (capped at 6)")
	cmd.Flags().StringVar(&category, "category", "", "property category (residential, commercial)")
	cmd.Flags().StringVar(&propType, "type", "", "property type (flat, villa, penthouse, townhouse)")

	return cmd
}
