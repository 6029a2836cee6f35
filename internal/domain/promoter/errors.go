package promoter

import "errors"

var (
	ErrEmailAlreadyExists = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrPromoterNotFound   = errors.New("promoter not found")
)
