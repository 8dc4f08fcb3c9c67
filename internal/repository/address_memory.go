package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/futig/census-agent/internal/entity"
	"github.com/patrickmn/go-cache"
)

const (
	addressKeyPrefix = "address:"
	phoneKeyPrefix   = "phone:"
)

var _ AddressRepository = &AddressMemory{}

// AddressMemory is an in-process address file
type AddressMemory struct {
	entries *cache.Cache
}

func NewAddressMemory(addresses ...entity.Address) *AddressMemory {
	r := &AddressMemory{entries: cache.New(cache.NoExpiration, 0)}
	for _, a := range addresses {
		r.Add(a)
	}
	return r
}

// Add stores an address and indexes it by phone number
func (r *AddressMemory) Add(a entity.Address) {
	r.entries.Set(addressKeyPrefix+a.AddressID, a, cache.NoExpiration)
	r.entries.Set(phoneKeyPrefix+a.PhoneNumber, a.AddressID, cache.NoExpiration)
}

func (r *AddressMemory) get(addressID string) (entity.Address, bool) {
	v, ok := r.entries.Get(addressKeyPrefix + addressID)
	if !ok {
		return entity.Address{}, false
	}
	return v.(entity.Address), true
}

func (r *AddressMemory) FindByPhone(_ context.Context, phone string) (*entity.Address, error) {
	id, ok := r.entries.Get(phoneKeyPrefix + phone)
	if !ok {
		return nil, fmt.Errorf("%w: phone %s", entity.ErrAddressNotFound, phone)
	}

	a, ok := r.get(id.(string))
	if !ok {
		return nil, fmt.Errorf("%w: phone %s", entity.ErrAddressNotFound, phone)
	}
	return &a, nil
}

func (r *AddressMemory) RecordCorrection(_ context.Context, addressID, correctedAddress string, at time.Time) error {
	a, ok := r.get(addressID)
	if !ok {
		return fmt.Errorf("%w: address %s", entity.ErrAddressNotFound, addressID)
	}

	verified := false
	a.CorrectedAddress = &correctedAddress
	a.AddressVerified = &verified
	a.VerifiedAt = &at
	r.entries.Set(addressKeyPrefix+addressID, a, cache.NoExpiration)
	return nil
}
