package config

// ConfigFile is the top-level YAML document.
type ConfigFile struct {
	Config NodeConfig `yaml:"config"`
}

// NodeConfig holds everything the node command needs to run.
type NodeConfig struct {
	RPCAddr   string          `yaml:"rpc_addr"`
	Ownership OwnershipConfig `yaml:"ownership"`
	CORS      CORSSettings    `yaml:"cors"`
}

// OwnershipConfig tunes the challenge/response gate.
type OwnershipConfig struct {
	// Scheme selects the signature verifier: "ed25519" or "secp256k1".
	Scheme string `yaml:"scheme"`
	// DomainTag replaces the default challenge domain tag when set.
	DomainTag string `yaml:"domain_tag"`
	// WindowSeconds replaces the default challenge expiry window when > 0.
	WindowSeconds int `yaml:"window_seconds"`
}

// CORSSettings configures the RPC server's CORS headers.
type CORSSettings struct {
	AllowedOrigins []string `yaml:"allowed_origins"`
	AllowedMethods []string `yaml:"allowed_methods"`
	AllowedHeaders []string `yaml:"allowed_headers"`
	MaxAge         int      `yaml:"max_age"`
}
