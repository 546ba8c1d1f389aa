package cmd

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var registerCmd = &cobra.Command{
	Use:   "register <peer>...",
	Short: "Register peers with the node",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var peers []string
		if err := send(cmd.Context(), "POST", "/nodes/register", args, &peers); err != nil {
			return err
		}

		pterm.Success.Printfln("%d known peers", len(peers))
		return pterm.DefaultBulletList.WithItems(bullets(peers)).Render()
	},
}

func init() {
	rootCmd.AddCommand(registerCmd)
}
