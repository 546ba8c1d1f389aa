package cmd

import (
	"github.com/ardanlabs/ledger/foundation/blockchain/database"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var (
	sender    string
	recipient string
	amount    float64
)

var sendCmd = &cobra.Command{
	Use:   "send",
	Short: "Add a transaction to the pending pool",
	RunE: func(cmd *cobra.Command, args []string) error {
		tx := database.NewTx(sender, recipient, amount)

		var pool []database.Tx
		if err := send(cmd.Context(), "POST", "/transactions/new", tx, &pool); err != nil {
			return err
		}

		pterm.Success.Printfln("transaction added, %d pending", len(pool))
		return renderTxs(pool)
	},
}

func init() {
	rootCmd.AddCommand(sendCmd)
	sendCmd.Flags().StringVarP(&sender, "sender", "s", "", "Sender of the amount.")
	sendCmd.Flags().StringVarP(&recipient, "recipient", "r", "", "Recipient of the amount.")
	sendCmd.Flags().Float64VarP(&amount, "amount", "a", 0, "Amount to send.")
	sendCmd.MarkFlagRequired("sender")
	sendCmd.MarkFlagRequired("recipient")
	sendCmd.MarkFlagRequired("amount")
}
