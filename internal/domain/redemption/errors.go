package redemption

import (
	"errors"

	"github.com/ua-volunteer/volunteer-api/internal/domain/benefit"
	"github.com/ua-volunteer/volunteer-api/internal/domain/ledger"
	"github.com/ua-volunteer/volunteer-api/internal/domain/volunteer"
)

var (
	ErrVolunteerNotFound = volunteer.ErrVolunteerNotFound
	ErrBenefitNotFound   = benefit.ErrBenefitNotFound
	ErrBenefitInactive   = benefit.ErrBenefitInactive

	// ErrInsufficientPoints matches *ledger.InsufficientBalanceError through errors.Is.
	ErrInsufficientPoints = ledger.ErrInsufficientBalance

	ErrPartnerNotFound  = errors.New("no partner benefits match provider")
	ErrProviderRequired = errors.New("provider is required")
)
