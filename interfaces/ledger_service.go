package interfaces

import (
	"context"

	"starledger/block"
	"starledger/chain"
	"starledger/types"
)

type LedgerService interface {
	InitializeChain(ctx context.Context) error
	GetBlockByHash(ctx context.Context, hash string) (*block.Block, error)
	GetBlockByHeight(ctx context.Context, height uint64) (*block.Block, error)
	GetStarsByAddress(ctx context.Context, address string) ([]types.StarEntry, error)
	ValidateChain(ctx context.Context) ([]chain.Fault, error)
}
