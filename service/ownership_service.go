package service

import (
	"context"

	"starledger/block"
	"starledger/ownership"
)

type OwnershipServiceImpl struct {
	gate *ownership.Gate
}

func NewOwnershipService(g *ownership.Gate) *OwnershipServiceImpl {
	return &OwnershipServiceImpl{gate: g}
}

func (os *OwnershipServiceImpl) RequestChallenge(ctx context.Context, address string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return os.gate.RequestChallenge(address)
}

func (os *OwnershipServiceImpl) SubmitStar(ctx context.Context, address, challenge, signature string, star []byte) (*block.Block, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return os.gate.SubmitProof(address, challenge, signature, star)
}
