package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"starledger/logx"
)

// DefaultNodeConfig returns the configuration used when no file is given.
func DefaultNodeConfig() *NodeConfig {
	return &NodeConfig{
		RPCAddr: DefaultRPCAddr,
		Ownership: OwnershipConfig{
			Scheme: DefaultScheme,
		},
	}
}

// LoadNodeConfig reads and parses a node YAML config file. Fields left
// empty fall back to defaults.
func LoadNodeConfig(path string) (*NodeConfig, error) {
	file, err := os.Open(path)
	if err != nil {
		logx.Error("CONFIG", "Failed to open config file ", path, ": ", err)
		return nil, err
	}
	defer file.Close()

	var cfgFile ConfigFile
	decoder := yaml.NewDecoder(file)
	if err := decoder.Decode(&cfgFile); err != nil {
		logx.Error("CONFIG", "Failed to decode YAML: ", err)
		return nil, err
	}

	cfg := cfgFile.Config
	if cfg.RPCAddr == "" {
		cfg.RPCAddr = DefaultRPCAddr
	}
	if cfg.Ownership.Scheme == "" {
		cfg.Ownership.Scheme = DefaultScheme
	}
	logx.Info("CONFIG", "Loaded config from ", path, ", rpc_addr=", cfg.RPCAddr, ", scheme=", cfg.Ownership.Scheme)
	return &cfg, nil
}
