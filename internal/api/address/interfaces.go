package address

import (
	"context"

	"github.com/futig/census-agent/internal/entity"
)

type AddressUsecase interface {
	Lookup(ctx context.Context, phone string) (*entity.AddressLookupResponse, error)
	Verify(ctx context.Context, req *entity.VerifyAddressRequest) (*entity.VerifyAddressResponse, error)
}
