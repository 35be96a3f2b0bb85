package service

import (
	"context"

	"starledger/chain"
	"starledger/types"
)

type HealthServiceImpl struct {
	chain *chain.Chain
}

func NewHealthService(c *chain.Chain) *HealthServiceImpl {
	return &HealthServiceImpl{chain: c}
}

func (hs *HealthServiceImpl) Check(ctx context.Context) (*types.HealthStatus, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	height, ok := hs.chain.Height()
	status := "ok"
	if !ok {
		status = "uninitialized"
	}
	faults := hs.chain.Validate()
	if len(faults) > 0 {
		status = "corrupt"
	}
	return &types.HealthStatus{
		Status:      status,
		ChainLength: hs.chain.Length(),
		ChainHeight: height,
		FaultCount:  len(faults),
	}, nil
}
