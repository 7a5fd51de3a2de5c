package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finledger/ledger-api/internal/domain"
	"github.com/finledger/ledger-api/internal/logging"
)

// LedgerService owns account records and their balance mutation. Every
// balance change happens inside one database transaction under an exclusive
// row lock, and journals a matching transaction entry in the same commit.
type LedgerService struct {
	accounts accountRepository
	journal  transactionRepository
	db       txBeginner
}

func NewLedgerService(accounts accountRepository, journal transactionRepository, db txBeginner) *LedgerService {
	return &LedgerService{accounts: accounts, journal: journal, db: db}
}

func (s *LedgerService) CreateAccount(ctx context.Context, owner string, initialBalance decimal.Decimal) (*domain.Account, error) {
	log := logging.FromContext(ctx)

	if strings.TrimSpace(owner) == "" {
		return nil, fmt.Errorf("CreateAccount: %w", domain.ErrInvalidOwner)
	}
	if initialBalance.IsNegative() {
		return nil, fmt.Errorf("CreateAccount: %w", domain.ErrNegativeBalance)
	}

	now := time.Now().UTC()
	account := &domain.Account{
		ID:        uuid.New(),
		Owner:     owner,
		Balance:   initialBalance,
		Version:   1,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.accounts.Create(ctx, account); err != nil {
		return nil, fmt.Errorf("CreateAccount: %w", err)
	}

	log.Info("account created",
		"account_id", account.ID,
		"owner", owner,
		"balance", initialBalance,
	)

	return account, nil
}

func (s *LedgerService) GetAccount(ctx context.Context, id uuid.UUID) (*domain.Account, error) {
	account, err := s.accounts.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("GetAccount: %w", err)
	}
	return account, nil
}

func (s *LedgerService) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	accounts, err := s.accounts.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("ListAccounts: %w", err)
	}
	return accounts, nil
}

// UpdateAccount overwrites owner and balance directly. This is the
// administrative correction path; it does not check non-negativity, that is
// left to the database constraint. Normal balance movement goes through
// Deposit and Withdraw.
func (s *LedgerService) UpdateAccount(ctx context.Context, id uuid.UUID, owner string, balance decimal.Decimal) (*domain.Account, error) {
	if strings.TrimSpace(owner) == "" {
		return nil, fmt.Errorf("UpdateAccount: %w", domain.ErrInvalidOwner)
	}

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("UpdateAccount: begin tx: %w", err)
	}
	defer tx.Rollback()

	account, err := s.accounts.GetForUpdate(ctx, tx, id)
	if err != nil {
		return nil, fmt.Errorf("UpdateAccount: %w", err)
	}

	now := time.Now().UTC()
	if err := s.accounts.Update(ctx, tx, id, owner, balance, account.Version+1, now); err != nil {
		return nil, fmt.Errorf("UpdateAccount: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("UpdateAccount: commit: %w", err)
	}

	account.Owner = owner
	account.Balance = balance
	account.Version++
	account.UpdatedAt = now
	return account, nil
}

func (s *LedgerService) Deposit(ctx context.Context, id uuid.UUID, amount decimal.Decimal) (*domain.Account, error) {
	log := logging.FromContext(ctx)

	if !amount.IsPositive() {
		return nil, fmt.Errorf("Deposit: %w", domain.ErrInvalidAmount)
	}

	account, err := s.applyBalanceChange(ctx, id, amount, domain.TransactionTypeDeposit)
	if err != nil {
		return nil, fmt.Errorf("Deposit: %w", err)
	}

	log.Info("deposit completed",
		"account_id", id,
		"amount", amount,
		"balance", account.Balance,
	)
	return account, nil
}

func (s *LedgerService) Withdraw(ctx context.Context, id uuid.UUID, amount decimal.Decimal) (*domain.Account, error) {
	log := logging.FromContext(ctx)

	if !amount.IsPositive() {
		return nil, fmt.Errorf("Withdraw: %w", domain.ErrInvalidAmount)
	}

	account, err := s.applyBalanceChange(ctx, id, amount.Neg(), domain.TransactionTypeWithdrawal)
	if err != nil {
		return nil, fmt.Errorf("Withdraw: %w", err)
	}

	log.Info("withdrawal completed",
		"account_id", id,
		"amount", amount,
		"balance", account.Balance,
	)
	return account, nil
}

// DeleteAccount soft-deletes: the row keeps its balance and timestamps but
// disappears from every read and mutation. Repeating the call reports not
// found.
func (s *LedgerService) DeleteAccount(ctx context.Context, id uuid.UUID) error {
	log := logging.FromContext(ctx)

	if err := s.accounts.SoftDelete(ctx, id, time.Now().UTC()); err != nil {
		return fmt.Errorf("DeleteAccount: %w", err)
	}

	log.Info("account deleted", "account_id", id)
	return nil
}

// applyBalanceChange is the single read-modify-write path for deposits and
// withdrawals. delta is signed; a withdrawal that would take the balance
// negative rolls back untouched.
func (s *LedgerService) applyBalanceChange(ctx context.Context, id uuid.UUID, delta decimal.Decimal, txType domain.TransactionType) (*domain.Account, error) {
	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("applyBalanceChange: begin tx: %w", err)
	}
	defer tx.Rollback()

	account, err := s.accounts.GetForUpdate(ctx, tx, id)
	if err != nil {
		return nil, fmt.Errorf("applyBalanceChange: %w", err)
	}

	newBalance := account.Balance.Add(delta)
	if newBalance.IsNegative() {
		return nil, fmt.Errorf("applyBalanceChange: %w", domain.ErrInsufficientFunds)
	}

	now := time.Now().UTC()
	if err := s.accounts.UpdateBalance(ctx, tx, id, newBalance, account.Version+1, now); err != nil {
		return nil, fmt.Errorf("applyBalanceChange: %w", err)
	}

	entry := &domain.Transaction{
		ID:        uuid.New(),
		AccountID: id,
		Amount:    delta.Abs(),
		Type:      txType,
		CreatedAt: now,
	}
	if err := s.journal.CreateInTx(ctx, tx, entry); err != nil {
		return nil, fmt.Errorf("applyBalanceChange: journal: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("applyBalanceChange: commit: %w", err)
	}

	account.Balance = newBalance
	account.Version++
	account.UpdatedAt = now
	return account, nil
}
