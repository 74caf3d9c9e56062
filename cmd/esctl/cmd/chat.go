package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func chatCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "chat <message...>",
		Short: "Send a message to the assistant",
		Example: `  esctl chat hello
  esctl chat "What are the current trends in Dubai Marina?"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			c := newClient()
			resp, err := c.Chat(context.Background(), strings.Join(args, " "))
			if err != nil {
				return err
			}

			if jsonOutput() {
				return outputJSON(resp)
			}

			if resp.Error != "" {
				fmt.Println("Chat failed:", resp.Error)
				return nil
			}

			fmt.Println(resp.Reply)
			return nil
		},
	}
}
