package interfaces

import (
	"context"

	"starledger/types"
)

type HealthService interface {
	Check(ctx context.Context) (*types.HealthStatus, error)
}
