package payments

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrInsufficientBalance matches every *InsufficientBalanceError with errors.Is.
var ErrInsufficientBalance = errors.New("insufficient balance")

// InsufficientBalanceError reports a payment, or a payment increase, larger
// than what the client still owes.
type InsufficientBalanceError struct {
	ClientID  uint
	Needed    decimal.Decimal
	Available decimal.Decimal
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("insufficient balance for client %d: needed %s, available %s",
		e.ClientID, e.Needed.StringFixed(2), e.Available.StringFixed(2))
}

// Is lets errors.Is(err, ErrInsufficientBalance) match.
func (e *InsufficientBalanceError) Is(target error) bool {
	return target == ErrInsufficientBalance
}
