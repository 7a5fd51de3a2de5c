package domain

import "errors"

var (
	ErrNotFound               = errors.New("not found")
	ErrInsufficientFunds      = errors.New("insufficient funds")
	ErrInvalidAmount          = errors.New("amount must be greater than zero")
	ErrNegativeBalance        = errors.New("initial balance cannot be negative")
	ErrInvalidOwner           = errors.New("owner is required")
	ErrInvalidTransactionType = errors.New("invalid transaction type")
	ErrSelfTransfer           = errors.New("cannot transfer to the same account")
	ErrVersionConflict        = errors.New("optimistic lock conflict")
	ErrBusy                   = errors.New("could not acquire account lock in time")
)
