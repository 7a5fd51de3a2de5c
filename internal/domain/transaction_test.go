package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTransactionTypeIsValid(t *testing.T) {
	tests := []struct {
		name  string
		typ   TransactionType
		valid bool
	}{
		{"deposit", TransactionTypeDeposit, true},
		{"withdrawal", TransactionTypeWithdrawal, true},
		{"transfer", TransactionTypeTransfer, true},
		{"empty", TransactionType(""), false},
		{"unknown", TransactionType("refund"), false},
		{"case sensitive", TransactionType("Deposit"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valid, tt.typ.IsValid())
		})
	}
}

func TestAccountDeleted(t *testing.T) {
	a := &Account{}
	assert.False(t, a.Deleted())

	now := a.CreatedAt
	a.DeletedAt = &now
	assert.True(t, a.Deleted())
}
