package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"starledger/logx"
)

var rootCmd = &cobra.Command{
	Use:   "starledger",
	Short: "Star registry ledger node CLI",
	Long:  "Command line interface for running and interacting with a star registry ledger node.",
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		logx.Error("CMD", "Command execution failed:", err)
		os.Exit(1)
	}
}
