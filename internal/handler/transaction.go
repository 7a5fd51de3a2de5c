package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finledger/ledger-api/internal/domain"
	"github.com/finledger/ledger-api/internal/logging"
)

type journalService interface {
	RecordTransaction(ctx context.Context, accountID uuid.UUID, amount decimal.Decimal, txType domain.TransactionType) (*domain.Transaction, error)
	ListTransactions(ctx context.Context, accountID uuid.UUID) ([]domain.Transaction, error)
	DeleteTransaction(ctx context.Context, id uuid.UUID) error
}

type TransactionHandler struct {
	journal journalService
}

func NewTransactionHandler(journal journalService) *TransactionHandler {
	return &TransactionHandler{journal: journal}
}

type recordTransactionRequest struct {
	Amount decimal.Decimal `json:"amount"`
	Type   string          `json:"type" validate:"required,oneof=deposit withdrawal transfer"`
}

type transactionDTO struct {
	ID        uuid.UUID       `json:"id"`
	AccountID uuid.UUID       `json:"account_id"`
	Amount    decimal.Decimal `json:"amount"`
	Type      string          `json:"type"`
	CreatedAt time.Time       `json:"created_at"`
}

func toTransactionDTO(tr *domain.Transaction) transactionDTO {
	return transactionDTO{
		ID:        tr.ID,
		AccountID: tr.AccountID,
		Amount:    tr.Amount,
		Type:      string(tr.Type),
		CreatedAt: tr.CreatedAt,
	}
}

func (h *TransactionHandler) List(w http.ResponseWriter, r *http.Request) {
	accountID, appErr := accountIDFromPath(r)
	if appErr != nil {
		RespondAppError(w, appErr, nil)
		return
	}

	transactions, err := h.journal.ListTransactions(r.Context(), accountID)
	if err != nil {
		logging.FromContext(r.Context()).Error("failed to list transactions", "error", err, "account_id", accountID)
		RespondDomainError(w, err)
		return
	}

	dtos := make([]transactionDTO, len(transactions))
	for i := range transactions {
		dtos[i] = toTransactionDTO(&transactions[i])
	}

	RespondSuccess(w, http.StatusOK, dtos)
}

func (h *TransactionHandler) Record(w http.ResponseWriter, r *http.Request) {
	accountID, appErr := accountIDFromPath(r)
	if appErr != nil {
		RespondAppError(w, appErr, nil)
		return
	}

	var req recordTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondAppError(w, ErrInvalidRequest, nil)
		return
	}

	if fields := validateRequest(req); len(fields) > 0 {
		RespondValidationError(w, fields)
		return
	}

	tr, err := h.journal.RecordTransaction(r.Context(), accountID, req.Amount, domain.TransactionType(req.Type))
	if err != nil {
		logging.FromContext(r.Context()).Error("failed to record transaction", "error", err, "account_id", accountID)
		RespondDomainError(w, err)
		return
	}

	RespondSuccess(w, http.StatusCreated, toTransactionDTO(tr))
}

func (h *TransactionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	transactionID, err := uuid.Parse(r.PathValue("transaction_id"))
	if err != nil {
		RespondAppError(w, ErrResourceNotFound, nil)
		return
	}

	if err := h.journal.DeleteTransaction(r.Context(), transactionID); err != nil {
		RespondDomainError(w, err)
		return
	}

	RespondSuccess(w, http.StatusOK, map[string]string{"message": "transaction deleted"})
}
