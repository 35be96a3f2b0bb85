package types

// StarEntry is one owned block with its payload decoded back from the
// hex wire encoding to structured form.
type StarEntry struct {
	Height    uint64      `json:"height"`
	Hash      string      `json:"hash"`
	Owner     string      `json:"owner"`
	Timestamp int64       `json:"timestamp"`
	Star      interface{} `json:"star"`
}

// HealthStatus summarizes node liveness for the health endpoint.
type HealthStatus struct {
	Status      string `json:"status"`
	ChainLength int    `json:"chain_length"`
	ChainHeight uint64 `json:"chain_height"`
	FaultCount  int    `json:"fault_count"`
}
