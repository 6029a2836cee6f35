package opportunity

import "errors"

var (
	ErrOpportunityNotFound = errors.New("opportunity not found")
	ErrNotOpportunityOwner = errors.New("only the promoter who created the opportunity can manage it")
	ErrAlreadyConcluded    = errors.New("opportunity already concluded")
	ErrInvalidPromoter     = errors.New("promoter does not exist")
)
