package chain

import (
	"sync"
	"time"

	"starledger/block"
	"starledger/errors"
	"starledger/logx"
	"starledger/monitoring"
)

// Chain is the append-only, hash-linked block sequence. A single RWMutex
// enforces the write discipline: validate-then-append runs as one critical
// section, so sequential heights and the valid-before-grow precondition
// cannot race. Readers only ever see fully sealed blocks, and only as
// copies.
type Chain struct {
	mu     sync.RWMutex
	blocks []*block.Block

	// now is swappable so sealing timestamps can be pinned in tests.
	now func() time.Time
}

// New constructs an empty chain. Call Initialize to create the genesis
// block before accepting data blocks.
func New() *Chain {
	return &Chain{
		blocks: []*block.Block{},
		now:    time.Now,
	}
}

// Initialize seals and appends the genesis block if the chain is empty.
// It is idempotent: a non-empty chain is left untouched. Genesis bypasses
// the valid-before-grow precondition since there is nothing to validate.
func (c *Chain) Initialize() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.blocks) > 0 {
		return
	}
	genesis := block.NewGenesis()
	genesis.Seal(0, "", c.now().Unix())
	c.blocks = append(c.blocks, genesis)
	monitoring.SetChainHeight(0)
	logx.Info("CHAIN", "Initialized chain with genesis block ", genesis.Hash)
}

// Append seals the given unsealed block and appends it. It fails with
// chain_invalid if the existing chain has any validation fault, and with
// block_invalid if the sealed block fails its own well-formedness check.
// On failure the chain is unmodified. The returned block is a copy of the
// sealed block.
func (c *Chain) Append(b *block.Block) (*block.Block, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if faults := validateBlocks(c.blocks); len(faults) > 0 {
		logx.Error("CHAIN", "Refusing append, chain has ", len(faults), " faults")
		return nil, errors.NewError(errors.ErrCodeChainInvalid, errors.ErrMsgChainInvalid)
	}

	height := uint64(len(c.blocks))
	prevHash := ""
	if n := len(c.blocks); n > 0 {
		prevHash = c.blocks[n-1].Hash
	}
	b.Seal(height, prevHash, c.now().Unix())

	if !b.WellFormed() {
		return nil, errors.NewError(errors.ErrCodeBlockInvalid, errors.ErrMsgBlockInvalid)
	}

	// store a private copy; the caller keeps no reference to the
	// sealed block the chain owns
	c.blocks = append(c.blocks, b.Clone())
	monitoring.IncreaseAppendedBlocks()
	monitoring.SetChainHeight(height)
	logx.Info("CHAIN", "Appended block ", height, " hash ", b.Hash)
	return b.Clone(), nil
}

// GetByHash returns a copy of the first block whose hash matches, or nil.
// The digest is collision resistant, so first match is the only match.
func (c *Chain) GetByHash(hash string) *block.Block {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, b := range c.blocks {
		if b.Hash == hash {
			return b.Clone()
		}
	}
	return nil
}

// GetByHeight returns a copy of the block at the given height, or nil
// when the height is out of range.
func (c *Chain) GetByHeight(height uint64) *block.Block {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if height >= uint64(len(c.blocks)) {
		return nil
	}
	return c.blocks[height].Clone()
}

// GetByOwner returns copies of all blocks owned by the given address, in
// ascending height order. An address with no blocks yields an empty
// slice, never an error. Genesis carries no owner and never matches.
func (c *Chain) GetByOwner(address string) []*block.Block {
	c.mu.RLock()
	defer c.mu.RUnlock()

	owned := []*block.Block{}
	for _, b := range c.blocks {
		if b.Owner != "" && b.Owner == address {
			owned = append(owned, b.Clone())
		}
	}
	return owned
}

// Height returns the height of the last block. The boolean is false for
// an uninitialized (empty) chain.
func (c *Chain) Height() (uint64, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if len(c.blocks) == 0 {
		return 0, false
	}
	return uint64(len(c.blocks) - 1), true
}

// Length returns the number of blocks in the chain.
func (c *Chain) Length() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.blocks)
}

// Validate walks the whole chain and returns every fault found. A valid
// chain yields an empty slice. The chain is never mutated.
func (c *Chain) Validate() []Fault {
	c.mu.RLock()
	defer c.mu.RUnlock()

	faults := validateBlocks(c.blocks)
	monitoring.SetValidationFaults(len(faults))
	return faults
}
