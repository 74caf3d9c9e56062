package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	apiclient "github.com/karimhaddad/estate-scout/internal/api/client"
)

func propertiesCmd() *cobra.Command {
	propertiesRoot := &cobra.Command{
		Use:   "properties",
		Short: "Browse the property catalog",
	}

	propertiesRoot.AddCommand(
		propertiesListCmd(),
	)

	return propertiesRoot
}

func propertiesListCmd() *cobra.Command {
	var (
		availability string
		location     string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List catalog properties with optional filters",
		Example: `  # All properties
  esctl properties list

  # Properties for sale in the Marina
  esctl properties list --type buy --location Marina`,
		RunE: func(_ *cobra.Command, _ []string) error {
			c := newClient()

			var (
				resp *apiclient.PropertiesResponse
				err  error
			)
			if availability == "" && location == "" {
				resp, err = c.ListAllProperties(context.Background())
			} else {
				resp, err = c.ListProperties(context.Background(), &apiclient.ListPropertiesParams{
					Type:     availability,
					Location: location,
				})
			}
			if err != nil {
				return err
			}

			if jsonOutput() {
				return outputJSON(resp)
			}

			if len(resp.Properties) == 0 {
				fmt.Println("No properties found.")
				return nil
			}

			return printPropertiesTable(resp.Properties)
		},
	}

	cmd.Flags().StringVar(&availability, "type", "", "availability filter (buy, rent)")
	cmd.Flags().StringVar(&location, "location", "", "location substring filter")

	return cmd
}
