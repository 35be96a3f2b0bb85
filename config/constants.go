package config

const (
	// DefaultRPCAddr is where the JSON-RPC server listens when config
	// does not say otherwise.
	DefaultRPCAddr = ":8000"

	// DefaultScheme is the default ownership signature scheme.
	DefaultScheme = "ed25519"
)
