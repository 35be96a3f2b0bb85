package interfaces

import (
	"context"

	"starledger/block"
)

type OwnershipService interface {
	RequestChallenge(ctx context.Context, address string) (string, error)
	SubmitStar(ctx context.Context, address, challenge, signature string, star []byte) (*block.Block, error)
}
