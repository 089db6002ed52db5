package repo_errors

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	ErrNotFound      = errors.New("entity not found")
	ErrLotNotActive  = errors.New("lot is not active")
	ErrAlreadyExists = errors.New("entity already exists")
)

// BidBelowMinimumError is returned by the bid repository when the amount check
// fails while the lot row is locked. It carries the minimum acceptable amount
// so the caller can report it.
type BidBelowMinimumError struct {
	Minimum decimal.Decimal
}

func (e *BidBelowMinimumError) Error() string {
	return fmt.Sprintf("bid must exceed %s", e.Minimum.StringFixed(2))
}
