package game

import (
	"errors"
	"fmt"
)

// Validation failures carry a user-facing meaning and guarantee that no
// state was mutated. Store failures are wrapped repository errors and pass
// through untouched.
var (
	ErrInvalidLandType  = errors.New("invalid land type")
	ErrPropertyNotFound = errors.New("property not found")
	ErrAlreadyRepaired  = errors.New("property is in perfect condition")
)

// InsufficientBalanceError is a validation failure computed strictly from
// the pre-operation balance.
type InsufficientBalanceError struct {
	Need int64
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("insufficient balance, need $%d", e.Need)
}

// IsValidation reports whether err is a user-facing validation failure as
// opposed to a store failure.
func IsValidation(err error) bool {
	var ibe *InsufficientBalanceError
	return errors.Is(err, ErrInvalidLandType) ||
		errors.Is(err, ErrPropertyNotFound) ||
		errors.Is(err, ErrAlreadyRepaired) ||
		errors.As(err, &ibe)
}
