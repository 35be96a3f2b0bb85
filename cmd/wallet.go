package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"starledger/wallet"
)

var (
	walletKeyPath string
	walletMessage string
)

var walletCmd = &cobra.Command{
	Use:   "wallet",
	Short: "Manage signing keys",
}

var walletNewCmd = &cobra.Command{
	Use:   "new",
	Short: "Generate a new wallet key",
	Run: func(cmd *cobra.Command, args []string) {
		w, err := wallet.NewWallet()
		if err != nil {
			log.Fatalf("Failed to generate wallet: %v", err)
		}
		if err := w.Save(walletKeyPath); err != nil {
			log.Fatalf("Failed to save key file: %v", err)
		}
		fmt.Println("Wallet address:", w.Address)
		fmt.Println("Key file:", walletKeyPath)
	},
}

var walletSignCmd = &cobra.Command{
	Use:   "sign",
	Short: "Sign a challenge with a wallet key",
	Run: func(cmd *cobra.Command, args []string) {
		w, err := wallet.Load(walletKeyPath)
		if err != nil {
			log.Fatalf("Failed to load key file: %v", err)
		}
		if walletMessage == "" {
			log.Fatal("Missing --message")
		}
		fmt.Println("Address:  ", w.Address)
		fmt.Println("Signature:", w.Sign(walletMessage))
	},
}

func init() {
	rootCmd.AddCommand(walletCmd)
	walletCmd.AddCommand(walletNewCmd)
	walletCmd.AddCommand(walletSignCmd)
	walletCmd.PersistentFlags().StringVarP(&walletKeyPath, "key", "k", "wallet.key", "Path to the wallet key file")
	walletSignCmd.Flags().StringVarP(&walletMessage, "message", "m", "", "Challenge message to sign")
}
