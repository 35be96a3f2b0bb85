package cmd

import (
	"log"

	"github.com/spf13/cobra"

	"starledger/jsonrpc"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the chain of a running node",
	Run: func(cmd *cobra.Command, args []string) {
		var resp map[string]interface{}
		if err := rpcCall(rpcAddr, jsonrpc.MethodChainValidate, nil, &resp); err != nil {
			log.Fatalf("Validate failed: %v", err)
		}
		printJSON(resp)
	},
}

var starsAddress string

var starsCmd = &cobra.Command{
	Use:   "stars",
	Short: "List the stars registered by a wallet address",
	Run: func(cmd *cobra.Command, args []string) {
		if starsAddress == "" {
			log.Fatal("Missing --address")
		}
		var resp map[string]interface{}
		err := rpcCall(rpcAddr, jsonrpc.MethodChainGetStarsByAddress,
			map[string]string{"address": starsAddress}, &resp)
		if err != nil {
			log.Fatalf("Stars lookup failed: %v", err)
		}
		printJSON(resp)
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(starsCmd)
	starsCmd.Flags().StringVarP(&starsAddress, "address", "a", "", "Wallet address")
}
