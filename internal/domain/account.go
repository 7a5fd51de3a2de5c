package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Account is the unit of balance ownership. Balance is an exact decimal and
// is never negative for an active account after a committed operation. A
// non-nil DeletedAt hides the account from every read and mutation path.
type Account struct {
	ID        uuid.UUID
	Owner     string
	Balance   decimal.Decimal
	Version   int64
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}

func (a *Account) Deleted() bool {
	return a.DeletedAt != nil
}
