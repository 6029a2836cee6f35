package application

import (
	"errors"

	"github.com/ua-volunteer/volunteer-api/internal/domain/opportunity"
)

var (
	ErrApplicationNotFound     = errors.New("application not found")
	ErrAlreadyApplied          = errors.New("volunteer has already applied to this opportunity")
	ErrInvalidStatusTransition = errors.New("invalid status transition")

	// Shared with the opportunity package so callers can match either.
	ErrOpportunityNotFound  = opportunity.ErrOpportunityNotFound
	ErrNotOpportunityOwner  = opportunity.ErrNotOpportunityOwner
	ErrOpportunityConcluded = opportunity.ErrAlreadyConcluded
)
