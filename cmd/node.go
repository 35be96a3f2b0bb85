package cmd

import (
	"context"
	"log"
	"time"

	"github.com/spf13/cobra"

	"starledger/chain"
	"starledger/config"
	"starledger/jsonrpc"
	"starledger/monitoring"
	"starledger/ownership"
	"starledger/service"
)

var configPath string

var nodeCmd = &cobra.Command{
	Use:   "node",
	Short: "Run the ledger node",
	Run: func(cmd *cobra.Command, args []string) {
		runNode(configPath)
	},
}

func init() {
	rootCmd.AddCommand(nodeCmd)
	nodeCmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to node YAML config")
}

func runNode(configPath string) {
	cfg := config.DefaultNodeConfig()
	if configPath != "" {
		loaded, err := config.LoadNodeConfig(configPath)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
		cfg = loaded
	}

	verifier, err := ownership.VerifierForScheme(cfg.Ownership.Scheme)
	if err != nil {
		log.Fatalf("Failed to resolve signature scheme: %v", err)
	}

	monitoring.InitMetrics()

	ledgerChain := chain.New()
	ledgerChain.Initialize()

	gateOpts := []ownership.Option{ownership.WithVerifier(verifier)}
	if cfg.Ownership.DomainTag != "" {
		gateOpts = append(gateOpts, ownership.WithDomainTag(cfg.Ownership.DomainTag))
	}
	if cfg.Ownership.WindowSeconds > 0 {
		gateOpts = append(gateOpts, ownership.WithChallengeWindow(time.Duration(cfg.Ownership.WindowSeconds)*time.Second))
	}
	gate := ownership.NewGate(ledgerChain, gateOpts...)

	ledgerSvc := service.NewLedgerService(ledgerChain)
	ownershipSvc := service.NewOwnershipService(gate)
	healthSvc := service.NewHealthService(ledgerChain)

	server := jsonrpc.NewServer(cfg.RPCAddr, ledgerSvc, ownershipSvc, healthSvc)
	server.SetCORSConfig(jsonrpc.CORSConfig{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		AllowedMethods: cfg.CORS.AllowedMethods,
		AllowedHeaders: cfg.CORS.AllowedHeaders,
		MaxAge:         cfg.CORS.MaxAge,
	})
	server.Start()

	<-context.Background().Done()
}
