package cmd

import (
	"github.com/ardanlabs/ledger/foundation/blockchain/database"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var mineCmd = &cobra.Command{
	Use:   "mine",
	Short: "Seal the pending transactions into a new block",
	RunE: func(cmd *cobra.Command, args []string) error {
		spinner, _ := pterm.DefaultSpinner.Start("mining")

		var resp struct {
			Hash database.BlockHash `json:"hash"`
		}
		if err := send(cmd.Context(), "GET", "/mine", nil, &resp); err != nil {
			spinner.Fail("mining failed")
			return err
		}

		spinner.Success("block mined, previous hash ", resp.Hash)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(mineCmd)
}
