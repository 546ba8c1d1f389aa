// Package cmd contains the ledger client commands.
package cmd

import (
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var url string

func init() {
	rootCmd.PersistentFlags().StringVarP(&url, "url", "u", "http://localhost:8000", "Url of the node.")
}

var rootCmd = &cobra.Command{
	Use:           "ledger",
	Short:         "Client for a proof of work ledger node",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the command selected on the command line.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}
}
