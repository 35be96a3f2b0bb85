package block

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"starledger/jsonx"
)

// HashHexLen is the length of a block hash rendered as lowercase hex.
const HashHexLen = 64

// GenesisData is the payload marker carried by the block at height 0.
const GenesisData = "Genesis Block"

// Block is one unit of the ledger. A block starts unsealed (only Payload
// and Owner set) and is sealed exactly once by the chain, which assigns
// Height, PrevHash, Timestamp and Hash. Sealed blocks are never mutated.
type Block struct {
	Height    uint64 `json:"height"`
	Hash      string `json:"hash"`
	PrevHash  string `json:"prev_hash"` // empty for the genesis block only
	Timestamp int64  `json:"timestamp"` // unix seconds, assigned at seal time
	Owner     string `json:"owner,omitempty"`
	Payload   string `json:"payload"` // hex-encoded JSON document
}

// hashInput is the canonical serialization a block hash commits to.
// Every field except the hash itself participates, in this fixed order.
type hashInput struct {
	Height    uint64 `json:"height"`
	PrevHash  string `json:"prev_hash"`
	Timestamp int64  `json:"timestamp"`
	Owner     string `json:"owner"`
	Payload   string `json:"payload"`
}

// New constructs an unsealed block from a raw JSON payload.
func New(payload []byte) *Block {
	return &Block{
		Payload: hex.EncodeToString(payload),
	}
}

// NewOwned constructs an unsealed block bound to a wallet address.
func NewOwned(payload []byte, owner string) *Block {
	b := New(payload)
	b.Owner = owner
	return b
}

// NewGenesis constructs the unsealed genesis block with its fixed payload
// marker. It carries no owner.
func NewGenesis() *Block {
	data, _ := jsonx.Marshal(map[string]string{"data": GenesisData})
	return New(data)
}

// Seal assigns the chain-derived fields and computes the block hash over
// them. The chain calls this exactly once per block, under its write lock.
func (b *Block) Seal(height uint64, prevHash string, timestamp int64) {
	b.Height = height
	b.PrevHash = prevHash
	b.Timestamp = timestamp
	b.Hash = b.ComputeHash()
}

// ComputeHash returns the sha256 digest of the block's canonical
// serialization, rendered as 64 lowercase hex characters. The stored Hash
// field never participates, so the result is stable for a sealed block.
func (b *Block) ComputeHash() string {
	input, err := jsonx.Marshal(hashInput{
		Height:    b.Height,
		PrevHash:  b.PrevHash,
		Timestamp: b.Timestamp,
		Owner:     b.Owner,
		Payload:   b.Payload,
	})
	if err != nil {
		// hashInput only contains scalar fields, marshal cannot fail
		panic(fmt.Sprintf("block: marshal hash input: %v", err))
	}
	sum := sha256.Sum256(input)
	return hex.EncodeToString(sum[:])
}

// IsGenesis reports whether this block is the chain's trusted root. The
// predicate is intrinsic to the block, not to its slice position.
func (b *Block) IsGenesis() bool {
	return b.Height == 0 && b.PrevHash == ""
}

// WellFormed reports whether a sealed block carries a digest of exactly
// the expected length and a timestamp. Height is checked against chain
// position by the chain itself.
func (b *Block) WellFormed() bool {
	if len(b.Hash) != HashHexLen {
		return false
	}
	if b.Timestamp == 0 {
		return false
	}
	return true
}

// DecodePayload reverses the hex wire encoding and unmarshals the payload
// back to its structured form.
func (b *Block) DecodePayload() (interface{}, error) {
	raw, err := hex.DecodeString(b.Payload)
	if err != nil {
		return nil, fmt.Errorf("failed to decode payload hex: %w", err)
	}
	var decoded interface{}
	if err := jsonx.Unmarshal(raw, &decoded); err != nil {
		return nil, fmt.Errorf("failed to unmarshal payload: %w", err)
	}
	return decoded, nil
}

// Clone returns an independent copy. The chain hands out clones so no
// caller ever holds a mutable reference to a sealed block.
func (b *Block) Clone() *Block {
	c := *b
	return &c
}
