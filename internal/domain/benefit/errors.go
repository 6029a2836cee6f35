package benefit

import "errors"

var (
	ErrBenefitNotFound = errors.New("benefit not found")
	ErrBenefitInactive = errors.New("benefit is not active")
)
