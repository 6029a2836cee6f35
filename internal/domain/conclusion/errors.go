package conclusion

import (
	"github.com/ua-volunteer/volunteer-api/internal/domain/application"
	"github.com/ua-volunteer/volunteer-api/internal/domain/opportunity"
)

var (
	ErrOpportunityNotFound = opportunity.ErrOpportunityNotFound
	ErrNotOpportunityOwner = opportunity.ErrNotOpportunityOwner
	ErrAlreadyConcluded    = opportunity.ErrAlreadyConcluded
	ErrApplicationNotFound = application.ErrApplicationNotFound
)
