package chain

import (
	"fmt"

	"starledger/block"
)

// FaultKind classifies a validation fault.
type FaultKind string

const (
	// FaultIntegrity means a block's stored hash does not match its content.
	FaultIntegrity FaultKind = "integrity"
	// FaultLinkage means a block's prev-hash does not match its predecessor.
	FaultLinkage FaultKind = "linkage"
)

// Fault describes one validation failure at a specific height.
type Fault struct {
	Height uint64    `json:"height"`
	Kind   FaultKind `json:"kind"`
	Detail string    `json:"detail"`
}

func (f Fault) String() string {
	return fmt.Sprintf("block %d: %s fault: %s", f.Height, f.Kind, f.Detail)
}

// validateBlocks walks the chain once in ascending height order and
// collects every fault it finds. Faults are independent: an integrity
// fault at height h does not suppress the linkage fault it causes at
// height h+1. The genesis block is the trusted root and is skipped by
// its own predicate, never by loop position.
func validateBlocks(blocks []*block.Block) []Fault {
	faults := []Fault{}
	for i, b := range blocks {
		if b.IsGenesis() {
			continue
		}
		if recomputed := b.ComputeHash(); recomputed != b.Hash {
			faults = append(faults, Fault{
				Height: b.Height,
				Kind:   FaultIntegrity,
				Detail: fmt.Sprintf("stored hash %s, recomputed %s", b.Hash, recomputed),
			})
		}
		if i == 0 {
			// non-genesis block at position 0 has no predecessor to link to
			faults = append(faults, Fault{
				Height: b.Height,
				Kind:   FaultLinkage,
				Detail: "non-genesis block has no predecessor",
			})
			continue
		}
		// Linkage is checked against the parent's recomputed hash, so a
		// tampered parent surfaces both its own integrity fault and a
		// linkage fault here.
		if parentHash := blocks[i-1].ComputeHash(); b.PrevHash != parentHash {
			faults = append(faults, Fault{
				Height: b.Height,
				Kind:   FaultLinkage,
				Detail: fmt.Sprintf("prev hash %s, parent hash %s", b.PrevHash, parentHash),
			})
		}
	}
	return faults
}
