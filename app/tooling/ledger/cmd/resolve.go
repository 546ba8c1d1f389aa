package cmd

import (
	"github.com/ardanlabs/ledger/foundation/blockchain/state"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve",
	Short: "Replace the chain of the node with the longest valid peer chain",
	RunE: func(cmd *cobra.Command, args []string) error {
		var resp struct {
			Replaced bool           `json:"replaced"`
			Chain    state.Snapshot `json:"chain"`
		}
		if err := send(cmd.Context(), "POST", "/nodes/resolve", nil, &resp); err != nil {
			return err
		}

		switch resp.Replaced {
		case true:
			pterm.Success.Println("chain was replaced")
		default:
			pterm.Info.Println("chain is authoritative")
		}

		return renderBlocks(resp.Chain.Chain)
	},
}

func init() {
	rootCmd.AddCommand(resolveCmd)
}
