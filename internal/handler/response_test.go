package handler

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/finledger/ledger-api/internal/domain"
)

func TestRespondDomainErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"not found", domain.ErrNotFound, http.StatusNotFound, "RESOURCE_NOT_FOUND"},
		{"insufficient funds", domain.ErrInsufficientFunds, http.StatusUnprocessableEntity, "INSUFFICIENT_FUNDS"},
		{"invalid amount", domain.ErrInvalidAmount, http.StatusBadRequest, "INVALID_AMOUNT"},
		{"negative balance", domain.ErrNegativeBalance, http.StatusBadRequest, "NEGATIVE_BALANCE"},
		{"invalid owner", domain.ErrInvalidOwner, http.StatusBadRequest, "INVALID_OWNER"},
		{"invalid type", domain.ErrInvalidTransactionType, http.StatusBadRequest, "INVALID_TRANSACTION_TYPE"},
		{"self transfer", domain.ErrSelfTransfer, http.StatusBadRequest, "SELF_TRANSFER_NOT_ALLOWED"},
		{"busy", domain.ErrBusy, http.StatusConflict, "ACCOUNT_BUSY"},
		{"version conflict", domain.ErrVersionConflict, http.StatusConflict, "VERSION_CONFLICT"},
		{"storage failure stays generic", errors.New("pq: connection reset"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			RespondDomainError(rec, fmt.Errorf("SomeOp: %w", tt.err))

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantCode)
		})
	}
}

// raw storage errors must never leak to callers
func TestRespondDomainErrorHidesInternalCause(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondDomainError(rec, errors.New("pq: password authentication failed for user admin"))

	assert.NotContains(t, rec.Body.String(), "password")
	assert.Contains(t, rec.Body.String(), "INTERNAL_ERROR")
}
