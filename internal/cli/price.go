package cli

import (
	"github.com/spf13/cobra"
)

func newPriceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "price",
		Short: "Show the current ETH price",
		Long: `Fetch the latest Ethereum price snapshot from the server.

Requires an active session; sign in first with "tickergate auth login".`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Price

			if err := client.Get("/api/v1/price", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}
