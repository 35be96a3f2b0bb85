package cmd

import (
	"log"

	"github.com/spf13/cobra"

	"starledger/jsonrpc"
)

var (
	rpcAddr          string
	challengeAddress string
)

var challengeCmd = &cobra.Command{
	Use:   "challenge",
	Short: "Request an ownership challenge from a node",
	Run: func(cmd *cobra.Command, args []string) {
		if challengeAddress == "" {
			log.Fatal("Missing --address")
		}
		var resp struct {
			Address   string `json:"address"`
			Challenge string `json:"challenge"`
		}
		err := rpcCall(rpcAddr, jsonrpc.MethodOwnershipRequestChallenge,
			map[string]string{"address": challengeAddress}, &resp)
		if err != nil {
			log.Fatalf("Challenge request failed: %v", err)
		}
		printJSON(resp)
	},
}

func init() {
	rootCmd.AddCommand(challengeCmd)
	rootCmd.PersistentFlags().StringVar(&rpcAddr, "rpc", "localhost:8000", "Node JSON-RPC address")
	challengeCmd.Flags().StringVarP(&challengeAddress, "address", "a", "", "Wallet address")
}
