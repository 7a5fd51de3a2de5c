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

type ledgerService interface {
	CreateAccount(ctx context.Context, owner string, initialBalance decimal.Decimal) (*domain.Account, error)
	GetAccount(ctx context.Context, id uuid.UUID) (*domain.Account, error)
	ListAccounts(ctx context.Context) ([]domain.Account, error)
	UpdateAccount(ctx context.Context, id uuid.UUID, owner string, balance decimal.Decimal) (*domain.Account, error)
	Deposit(ctx context.Context, id uuid.UUID, amount decimal.Decimal) (*domain.Account, error)
	Withdraw(ctx context.Context, id uuid.UUID, amount decimal.Decimal) (*domain.Account, error)
	DeleteAccount(ctx context.Context, id uuid.UUID) error
}

type transferService interface {
	Transfer(ctx context.Context, sourceID, targetID uuid.UUID, amount decimal.Decimal) (*domain.Account, *domain.Account, error)
}

type AccountHandler struct {
	ledger    ledgerService
	transfers transferService
}

func NewAccountHandler(ledger ledgerService, transfers transferService) *AccountHandler {
	return &AccountHandler{ledger: ledger, transfers: transfers}
}

type createAccountRequest struct {
	Owner   string          `json:"owner" validate:"required,max=120"`
	Balance decimal.Decimal `json:"balance" validate:"gte=0"`
}

type updateAccountRequest struct {
	Owner   string          `json:"owner" validate:"required,max=120"`
	Balance decimal.Decimal `json:"balance"`
}

type amountRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

type transferRequest struct {
	TargetAccountID string          `json:"target_account_id" validate:"required,uuid"`
	Amount          decimal.Decimal `json:"amount"`
}

type accountDTO struct {
	ID        uuid.UUID       `json:"id"`
	Owner     string          `json:"owner"`
	Balance   decimal.Decimal `json:"balance"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

func toAccountDTO(a *domain.Account) accountDTO {
	return accountDTO{
		ID:        a.ID,
		Owner:     a.Owner,
		Balance:   a.Balance,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

type transferResponse struct {
	SourceAccount accountDTO `json:"source_account"`
	TargetAccount accountDTO `json:"target_account"`
}

func (h *AccountHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondAppError(w, ErrInvalidRequest, nil)
		return
	}

	if fields := validateRequest(req); len(fields) > 0 {
		RespondValidationError(w, fields)
		return
	}

	account, err := h.ledger.CreateAccount(r.Context(), req.Owner, req.Balance)
	if err != nil {
		logging.FromContext(r.Context()).Error("failed to create account", "error", err)
		RespondDomainError(w, err)
		return
	}

	RespondSuccess(w, http.StatusCreated, toAccountDTO(account))
}

func (h *AccountHandler) List(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.ledger.ListAccounts(r.Context())
	if err != nil {
		logging.FromContext(r.Context()).Error("failed to list accounts", "error", err)
		RespondDomainError(w, err)
		return
	}

	dtos := make([]accountDTO, len(accounts))
	for i := range accounts {
		dtos[i] = toAccountDTO(&accounts[i])
	}

	RespondSuccess(w, http.StatusOK, dtos)
}

func (h *AccountHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, appErr := accountIDFromPath(r)
	if appErr != nil {
		RespondAppError(w, appErr, nil)
		return
	}

	account, err := h.ledger.GetAccount(r.Context(), id)
	if err != nil {
		RespondDomainError(w, err)
		return
	}

	RespondSuccess(w, http.StatusOK, toAccountDTO(account))
}

func (h *AccountHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, appErr := accountIDFromPath(r)
	if appErr != nil {
		RespondAppError(w, appErr, nil)
		return
	}

	var req updateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondAppError(w, ErrInvalidRequest, nil)
		return
	}

	if fields := validateRequest(req); len(fields) > 0 {
		RespondValidationError(w, fields)
		return
	}

	account, err := h.ledger.UpdateAccount(r.Context(), id, req.Owner, req.Balance)
	if err != nil {
		logging.FromContext(r.Context()).Error("failed to update account", "error", err, "account_id", id)
		RespondDomainError(w, err)
		return
	}

	RespondSuccess(w, http.StatusOK, toAccountDTO(account))
}

func (h *AccountHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, appErr := accountIDFromPath(r)
	if appErr != nil {
		RespondAppError(w, appErr, nil)
		return
	}

	if err := h.ledger.DeleteAccount(r.Context(), id); err != nil {
		RespondDomainError(w, err)
		return
	}

	RespondSuccess(w, http.StatusOK, map[string]string{"message": "account deleted"})
}

func (h *AccountHandler) Deposit(w http.ResponseWriter, r *http.Request) {
	h.applyAmount(w, r, h.ledger.Deposit)
}

func (h *AccountHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	h.applyAmount(w, r, h.ledger.Withdraw)
}

func (h *AccountHandler) applyAmount(w http.ResponseWriter, r *http.Request, op func(context.Context, uuid.UUID, decimal.Decimal) (*domain.Account, error)) {
	id, appErr := accountIDFromPath(r)
	if appErr != nil {
		RespondAppError(w, appErr, nil)
		return
	}

	var req amountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondAppError(w, ErrInvalidRequest, nil)
		return
	}

	account, err := op(r.Context(), id, req.Amount)
	if err != nil {
		RespondDomainError(w, err)
		return
	}

	RespondSuccess(w, http.StatusOK, toAccountDTO(account))
}

func (h *AccountHandler) Transfer(w http.ResponseWriter, r *http.Request) {
	sourceID, appErr := accountIDFromPath(r)
	if appErr != nil {
		RespondAppError(w, appErr, nil)
		return
	}

	var req transferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondAppError(w, ErrInvalidRequest, nil)
		return
	}

	if fields := validateRequest(req); len(fields) > 0 {
		RespondValidationError(w, fields)
		return
	}

	targetID, err := uuid.Parse(req.TargetAccountID)
	if err != nil {
		RespondValidationError(w, []FieldError{{Field: "target_account_id", Message: "must be a valid UUID"}})
		return
	}

	source, target, err := h.transfers.Transfer(r.Context(), sourceID, targetID, req.Amount)
	if err != nil {
		logging.FromContext(r.Context()).Error("transfer failed",
			"error", err,
			"source_account", sourceID,
			"target_account", targetID,
		)
		RespondDomainError(w, err)
		return
	}

	RespondSuccess(w, http.StatusOK, transferResponse{
		SourceAccount: toAccountDTO(source),
		TargetAccount: toAccountDTO(target),
	})
}

func accountIDFromPath(r *http.Request) (uuid.UUID, *AppError) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		return uuid.Nil, ErrResourceNotFound
	}
	return id, nil
}
