package cmd

import (
	"fmt"
	"strconv"
	"time"

	"github.com/ardanlabs/ledger/foundation/blockchain/database"
	"github.com/ardanlabs/ledger/foundation/blockchain/state"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var chainCmd = &cobra.Command{
	Use:   "chain",
	Short: "Print the chain of the node",
	RunE: func(cmd *cobra.Command, args []string) error {
		var snapshot state.Snapshot
		if err := send(cmd.Context(), "GET", "/chain", nil, &snapshot); err != nil {
			return err
		}

		if err := renderBlocks(snapshot.Chain); err != nil {
			return err
		}

		if len(snapshot.PendingTransactions) > 0 {
			pterm.DefaultSection.Println("Pending")
			if err := renderTxs(snapshot.PendingTransactions); err != nil {
				return err
			}
		}

		if len(snapshot.Peers) > 0 {
			pterm.DefaultSection.Println("Peers")
			pterm.DefaultBulletList.WithItems(bullets(snapshot.Peers)).Render()
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(chainCmd)
}

func renderBlocks(chain []database.Block) error {
	data := pterm.TableData{
		{"Index", "Sealed", "Txs", "Proof", "Previous Hash"},
	}
	for _, blk := range chain {
		data = append(data, []string{
			strconv.FormatUint(blk.Index, 10),
			time.UnixMilli(blk.TimeStamp).UTC().Format(time.RFC3339),
			strconv.Itoa(len(blk.Transactions)),
			strconv.FormatUint(blk.Proof, 10),
			blk.PrevHash.String(),
		})
	}

	return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

func renderTxs(txs []database.Tx) error {
	data := pterm.TableData{
		{"Sender", "Recipient", "Amount"},
	}
	for _, tx := range txs {
		data = append(data, []string{tx.Sender, tx.Recipient, fmt.Sprintf("%g", tx.Amount)})
	}

	return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

func bullets(items []string) []pterm.BulletListItem {
	list := make([]pterm.BulletListItem, len(items))
	for i, item := range items {
		list[i] = pterm.BulletListItem{Level: 0, Text: item}
	}
	return list
}
