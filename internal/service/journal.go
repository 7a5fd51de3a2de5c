package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finledger/ledger-api/internal/domain"
	"github.com/finledger/ledger-api/internal/logging"
)

// JournalService is a pure event log keyed by account id. It never touches
// account balances and does not verify that the account exists; callers own
// that responsibility.
type JournalService struct {
	journal transactionRepository
}

func NewJournalService(journal transactionRepository) *JournalService {
	return &JournalService{journal: journal}
}

func (s *JournalService) RecordTransaction(ctx context.Context, accountID uuid.UUID, amount decimal.Decimal, txType domain.TransactionType) (*domain.Transaction, error) {
	log := logging.FromContext(ctx)

	if !txType.IsValid() {
		return nil, fmt.Errorf("RecordTransaction: %q: %w", txType, domain.ErrInvalidTransactionType)
	}

	tr := &domain.Transaction{
		ID:        uuid.New(),
		AccountID: accountID,
		Amount:    amount,
		Type:      txType,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.journal.Create(ctx, tr); err != nil {
		return nil, fmt.Errorf("RecordTransaction: %w", err)
	}

	log.Info("transaction recorded",
		"transaction_id", tr.ID,
		"account_id", accountID,
		"type", txType,
		"amount", amount,
	)

	return tr, nil
}

func (s *JournalService) ListTransactions(ctx context.Context, accountID uuid.UUID) ([]domain.Transaction, error) {
	transactions, err := s.journal.ListByAccountID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("ListTransactions: %w", err)
	}
	return transactions, nil
}

func (s *JournalService) DeleteTransaction(ctx context.Context, id uuid.UUID) error {
	log := logging.FromContext(ctx)

	if err := s.journal.SoftDelete(ctx, id, time.Now().UTC()); err != nil {
		return fmt.Errorf("DeleteTransaction: %w", err)
	}

	log.Info("transaction deleted", "transaction_id", id)
	return nil
}
