package address

import (
	"context"
	"errors"
	"fmt"

	"github.com/futig/census-agent/internal/config"
	"github.com/futig/census-agent/internal/entity"
	"github.com/futig/census-agent/internal/pkg/validator"
	"github.com/futig/census-agent/internal/repository"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// Demo address returned for unknown numbers when demo fallback is on
const (
	demoAddressPrefix = "DEMO-"
	demoUnknownPhone  = "unknown"
	demoStreet        = "123 Main Street"
	demoCity          = "Springfield"
	demoState         = "IL"
	demoZip           = "62701"
)

// AddressUsecase looks up and verifies the address on file for a caller
type AddressUsecase struct {
	addressRepo repository.AddressRepository
	ids         IDGenerator
	validator   *validator.Validator
	cfg         config.AddressConfig
}

// NewUsecase creates a new address use case
func NewUsecase(
	addressRepo repository.AddressRepository,
	ids IDGenerator,
	validator *validator.Validator,
	cfg config.AddressConfig,
) *AddressUsecase {
	return &AddressUsecase{
		addressRepo: addressRepo,
		ids:         ids,
		validator:   validator,
		cfg:         cfg,
	}
}

// Lookup finds the address on file for a phone number. Each lookup counts as a
// contact attempt.
func (uc *AddressUsecase) Lookup(ctx context.Context, phone string) (*entity.AddressLookupResponse, error) {
	if err := uc.validator.ValidateLookup(phone); err != nil {
		return nil, err
	}
	normalized := validator.NormalizePhone(phone)

	address, err := uc.addressRepo.FindByPhone(ctx, normalized)
	if err == nil {
		caseID := address.CaseID
		if caseID == "" {
			caseID = uc.ids.CaseID()
		}

		ctxzap.Info(ctx, "address found",
			zap.String("address_id", address.AddressID),
			zap.String("case_id", caseID),
		)

		return &entity.AddressLookupResponse{
			AddressFound:  true,
			AddressID:     address.AddressID,
			StreetAddress: address.StreetAddress,
			City:          address.City,
			State:         address.State,
			ZipCode:       address.ZipCode,
			CaseID:        caseID,
			AttemptNumber: address.AttemptNumber + 1,
		}, nil
	}

	if !uc.cfg.DemoFallback {
		if errors.Is(err, entity.ErrAddressNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("find address by phone: %w", err)
	}

	if errors.Is(err, entity.ErrAddressNotFound) {
		ctxzap.Info(ctx, "address not found, answering with demo address")
	} else {
		ctxzap.Warn(ctx, "address lookup failed, answering with demo address", zap.Error(err))
	}
	return uc.demoAddress(normalized), nil
}

func (uc *AddressUsecase) demoAddress(phone string) *entity.AddressLookupResponse {
	if phone == "" {
		phone = demoUnknownPhone
	}
	return &entity.AddressLookupResponse{
		AddressFound:  true,
		AddressID:     demoAddressPrefix + phone,
		StreetAddress: demoStreet,
		City:          demoCity,
		State:         demoState,
		ZipCode:       demoZip,
		CaseID:        uc.ids.CaseID(),
		AttemptNumber: 1,
		Demo:          true,
	}
}

// Verify records the caller's answer to the address on file. A correction is
// stored only when the address was rejected and a replacement was given.
func (uc *AddressUsecase) Verify(ctx context.Context, req *entity.VerifyAddressRequest) (*entity.VerifyAddressResponse, error) {
	if err := uc.validator.ValidateVerifyAddress(req); err != nil {
		return nil, err
	}

	if !req.IsCorrect && req.CorrectedAddress != "" {
		err := uc.addressRepo.RecordCorrection(ctx, req.AddressID, req.CorrectedAddress, uc.ids.Now().UTC())
		switch {
		case errors.Is(err, entity.ErrAddressNotFound):
			// Demo addresses have no row to update
			ctxzap.Warn(ctx, "corrected address has no address on file",
				zap.String("address_id", req.AddressID),
			)
		case err != nil:
			return nil, fmt.Errorf("record address correction: %w", err)
		default:
			ctxzap.Info(ctx, "address correction recorded",
				zap.String("address_id", req.AddressID),
				zap.String("case_id", req.CaseID),
			)
		}
	}

	return &entity.VerifyAddressResponse{
		AddressVerified:   req.IsCorrect,
		CaseID:            req.CaseID,
		ProceedWithSurvey: req.IsCorrect,
	}, nil
}
