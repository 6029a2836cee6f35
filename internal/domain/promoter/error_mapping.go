package promoter

import (
	"errors"
	"fmt"

	"github.com/lib/pq"
)

const (
	sqlStateUniqueViolation = "23505"
	emailUniqueConstraint   = "promoters_email_key"
)

func isEmailAlreadyExistsError(err error) bool {
	if errors.Is(err, ErrEmailAlreadyExists) {
		return true
	}
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	return string(pqErr.Code) == sqlStateUniqueViolation && pqErr.Constraint == emailUniqueConstraint
}

func wrapRegisterError(step string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("register step %s: %w", step, err)
}
