package volunteer

import "errors"

var (
	ErrVolunteerNotFound = errors.New("volunteer not found")
	ErrNameRequired      = errors.New("name is required to register a new volunteer")
)
