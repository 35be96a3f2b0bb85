package service

import (
	"context"

	"starledger/block"
	"starledger/chain"
	"starledger/logx"
	"starledger/types"
)

type LedgerServiceImpl struct {
	chain *chain.Chain
}

func NewLedgerService(c *chain.Chain) *LedgerServiceImpl {
	return &LedgerServiceImpl{chain: c}
}

func (ls *LedgerServiceImpl) InitializeChain(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	ls.chain.Initialize()
	return nil
}

// GetBlockByHash returns nil without error when no block matches; a miss
// is an empty result, not a failure.
func (ls *LedgerServiceImpl) GetBlockByHash(ctx context.Context, hash string) (*block.Block, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return ls.chain.GetByHash(hash), nil
}

func (ls *LedgerServiceImpl) GetBlockByHeight(ctx context.Context, height uint64) (*block.Block, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return ls.chain.GetByHeight(height), nil
}

// GetStarsByAddress returns the address's blocks in ascending height
// order with payloads decoded. Blocks whose payload fails to decode are
// skipped with a log entry rather than failing the whole listing.
func (ls *LedgerServiceImpl) GetStarsByAddress(ctx context.Context, address string) ([]types.StarEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	owned := ls.chain.GetByOwner(address)
	stars := []types.StarEntry{}
	for _, b := range owned {
		star, err := b.DecodePayload()
		if err != nil {
			logx.Error("SERVICE", "Undecodable payload at height ", b.Height, ": ", err)
			continue
		}
		stars = append(stars, types.StarEntry{
			Height:    b.Height,
			Hash:      b.Hash,
			Owner:     b.Owner,
			Timestamp: b.Timestamp,
			Star:      star,
		})
	}
	return stars, nil
}

func (ls *LedgerServiceImpl) ValidateChain(ctx context.Context) ([]chain.Fault, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return ls.chain.Validate(), nil
}
