package cmd

import (
	"encoding/json"
	"log"

	"github.com/spf13/cobra"

	"starledger/jsonrpc"
)

var (
	submitAddress   string
	submitChallenge string
	submitSignature string
	submitStarJSON  string
)

var submitCmd = &cobra.Command{
	Use:   "submit",
	Short: "Submit a signed challenge and star payload to a node",
	Run: func(cmd *cobra.Command, args []string) {
		if submitAddress == "" || submitChallenge == "" || submitSignature == "" || submitStarJSON == "" {
			log.Fatal("Missing one of --address, --challenge, --signature, --star")
		}
		if !json.Valid([]byte(submitStarJSON)) {
			log.Fatal("--star must be a valid JSON document")
		}
		var resp map[string]interface{}
		err := rpcCall(rpcAddr, jsonrpc.MethodOwnershipSubmitStar, map[string]interface{}{
			"address":   submitAddress,
			"challenge": submitChallenge,
			"signature": submitSignature,
			"star":      json.RawMessage(submitStarJSON),
		}, &resp)
		if err != nil {
			log.Fatalf("Submit failed: %v", err)
		}
		printJSON(resp)
	},
}

func init() {
	rootCmd.AddCommand(submitCmd)
	submitCmd.Flags().StringVarP(&submitAddress, "address", "a", "", "Wallet address")
	submitCmd.Flags().StringVarP(&submitChallenge, "challenge", "m", "", "Challenge message that was signed")
	submitCmd.Flags().StringVarP(&submitSignature, "signature", "s", "", "Base58 signature over the challenge")
	submitCmd.Flags().StringVar(&submitStarJSON, "star", "", "Star payload as a JSON document")
}
