package service

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finledger/ledger-api/internal/domain"
	"github.com/finledger/ledger-api/internal/logging"
)

// TransferService moves money between two accounts atomically: both balance
// updates and both journal entries commit together or not at all.
type TransferService struct {
	accounts accountRepository
	journal  transactionRepository
	db       txBeginner
}

func NewTransferService(accounts accountRepository, journal transactionRepository, db txBeginner) *TransferService {
	return &TransferService{accounts: accounts, journal: journal, db: db}
}

// Transfer debits source and credits target. Row locks are taken in
// ascending id order regardless of transfer direction so two opposing
// transfers cannot deadlock.
func (s *TransferService) Transfer(ctx context.Context, sourceID, targetID uuid.UUID, amount decimal.Decimal) (*domain.Account, *domain.Account, error) {
	log := logging.FromContext(ctx)

	if !amount.IsPositive() {
		return nil, nil, fmt.Errorf("Transfer: %w", domain.ErrInvalidAmount)
	}
	if sourceID == targetID {
		return nil, nil, fmt.Errorf("Transfer: %w", domain.ErrSelfTransfer)
	}

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("Transfer: begin tx: %w", err)
	}
	defer tx.Rollback()

	locked, err := lockAccountsInOrder(ctx, tx, s.accounts, sourceID, targetID)
	if err != nil {
		return nil, nil, fmt.Errorf("Transfer: %w", err)
	}

	source, target := locked[sourceID], locked[targetID]

	if source.Balance.LessThan(amount) {
		return nil, nil, fmt.Errorf("Transfer: %w", domain.ErrInsufficientFunds)
	}

	now := time.Now().UTC()
	sourceBalance := source.Balance.Sub(amount)
	targetBalance := target.Balance.Add(amount)

	if err := s.accounts.UpdateBalance(ctx, tx, sourceID, sourceBalance, source.Version+1, now); err != nil {
		return nil, nil, fmt.Errorf("Transfer: update source: %w", err)
	}
	if err := s.accounts.UpdateBalance(ctx, tx, targetID, targetBalance, target.Version+1, now); err != nil {
		return nil, nil, fmt.Errorf("Transfer: update target: %w", err)
	}

	if err := s.writeJournalEntries(ctx, tx, sourceID, targetID, amount, now); err != nil {
		return nil, nil, fmt.Errorf("Transfer: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, nil, fmt.Errorf("Transfer: commit: %w", err)
	}

	source.Balance = sourceBalance
	source.Version++
	source.UpdatedAt = now
	target.Balance = targetBalance
	target.Version++
	target.UpdatedAt = now

	log.Info("transfer completed",
		"source_account", sourceID,
		"target_account", targetID,
		"amount", amount,
		"source_balance", sourceBalance,
		"target_balance", targetBalance,
	)

	return source, target, nil
}

func (s *TransferService) writeJournalEntries(ctx context.Context, tx *sql.Tx, sourceID, targetID uuid.UUID, amount decimal.Decimal, now time.Time) error {
	debit := &domain.Transaction{
		ID:        uuid.New(),
		AccountID: sourceID,
		Amount:    amount,
		Type:      domain.TransactionTypeWithdrawal,
		CreatedAt: now,
	}
	if err := s.journal.CreateInTx(ctx, tx, debit); err != nil {
		return fmt.Errorf("writeJournalEntries: debit: %w", err)
	}

	credit := &domain.Transaction{
		ID:        uuid.New(),
		AccountID: targetID,
		Amount:    amount,
		Type:      domain.TransactionTypeDeposit,
		CreatedAt: now,
	}
	if err := s.journal.CreateInTx(ctx, tx, credit); err != nil {
		return fmt.Errorf("writeJournalEntries: credit: %w", err)
	}

	return nil
}

func lockAccountsInOrder(ctx context.Context, tx *sql.Tx, accounts accountRepository, ids ...uuid.UUID) (map[uuid.UUID]*domain.Account, error) {
	sorted := make([]uuid.UUID, len(ids))
	copy(sorted, ids)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].String() < sorted[j].String()
	})

	result := make(map[uuid.UUID]*domain.Account, len(ids))
	for _, id := range sorted {
		acct, err := accounts.GetForUpdate(ctx, tx, id)
		if err != nil {
			return nil, fmt.Errorf("lockAccountsInOrder: %w", err)
		}
		result[id] = acct
	}
	return result, nil
}
