package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/futig/census-agent/internal/entity"
	"github.com/jackc/pgx/v5"
)

// AddressRepository defines the interface for the address file
type AddressRepository interface {
	FindByPhone(ctx context.Context, phone string) (*entity.Address, error)
	RecordCorrection(ctx context.Context, addressID, correctedAddress string, at time.Time) error
}

const findAddressByPhone = `
SELECT address_id, phone_number, street_address, city, state, zip_code,
       COALESCE(case_id, ''), attempt_number, corrected_address, address_verified, verified_at
FROM census_addresses
WHERE phone_number = $1
LIMIT 1`

const recordAddressCorrection = `
UPDATE census_addresses
SET corrected_address = $2,
    address_verified  = FALSE,
    verified_at       = $3
WHERE address_id = $1`

var _ AddressRepository = &AddressPostgres{}

// AddressPostgres implements AddressRepository on the census_addresses table
type AddressPostgres struct {
	db DBTX
}

func NewAddressPostgres(db DBTX) *AddressPostgres {
	return &AddressPostgres{db: db}
}

func (r *AddressPostgres) FindByPhone(ctx context.Context, phone string) (*entity.Address, error) {
	var a entity.Address
	err := r.db.QueryRow(ctx, findAddressByPhone, phone).Scan(
		&a.AddressID,
		&a.PhoneNumber,
		&a.StreetAddress,
		&a.City,
		&a.State,
		&a.ZipCode,
		&a.CaseID,
		&a.AttemptNumber,
		&a.CorrectedAddress,
		&a.AddressVerified,
		&a.VerifiedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: phone %s", entity.ErrAddressNotFound, phone)
		}
		return nil, fmt.Errorf("query address: %w", err)
	}

	return &a, nil
}

func (r *AddressPostgres) RecordCorrection(ctx context.Context, addressID, correctedAddress string, at time.Time) error {
	tag, err := r.db.Exec(ctx, recordAddressCorrection, addressID, correctedAddress, at)
	if err != nil {
		return fmt.Errorf("record address correction: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: address %s", entity.ErrAddressNotFound, addressID)
	}
	return nil
}
