package service

import (
	"context"
	"strings"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/ledger-server/internal/storage"
	"github.com/carson-networks/ledger-server/internal/storage/sqlconfig"
)

// TransactionService handles transaction business logic.
type TransactionService struct {
	storage *storage.Storage
}

// NewTransactionService creates a new TransactionService.
func NewTransactionService(store *storage.Storage) *TransactionService {
	return &TransactionService{storage: store}
}

// CreateTransaction validates and stores a transaction for the session and returns its ID.
func (s *TransactionService) CreateTransaction(ctx context.Context, sessionID string, transaction NewTransaction) (uuid.UUID, error) {
	if strings.TrimSpace(transaction.Title) == "" {
		return uuid.Nil, ErrEmptyTitle
	}
	if transaction.Amount.IsNegative() {
		return uuid.Nil, ErrNegativeAmount
	}
	if !transaction.Type.Valid() {
		return uuid.Nil, ErrInvalidTransactionType
	}

	storageCreate := &sqlconfig.TransactionCreate{
		Title:     transaction.Title,
		Amount:    signedAmount(transaction.Amount, transaction.Type),
		SessionID: sessionID,
	}

	return s.storage.Transactions.Insert(ctx, storageCreate)
}

// ListTransactions returns every transaction of the session.
func (s *TransactionService) ListTransactions(ctx context.Context, sessionID string) ([]Transaction, error) {
	rows, err := s.storage.Transactions.List(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	convertedTransactions := make([]Transaction, len(rows))
	for i, row := range rows {
		convertedTransactions[i] = fromStorage(row)
	}

	return convertedTransactions, nil
}

// GetTransaction returns the session's transaction with the given ID, or nil
// when the session has no such transaction.
func (s *TransactionService) GetTransaction(ctx context.Context, sessionID string, id uuid.UUID) (*Transaction, error) {
	row, err := s.storage.Transactions.FindByID(ctx, sessionID, id)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, nil
	}

	transaction := fromStorage(row)
	return &transaction, nil
}

// Summary returns the session's balance.
func (s *TransactionService) Summary(ctx context.Context, sessionID string) (Summary, error) {
	sum, err := s.storage.Transactions.Sum(ctx, sessionID)
	if err != nil {
		return Summary{}, err
	}
	if !sum.Valid {
		return Summary{}, nil
	}

	amount := sum.Decimal
	return Summary{Amount: &amount}, nil
}

func fromStorage(row *sqlconfig.Transaction) Transaction {
	return Transaction{
		ID:        row.ID,
		Title:     row.Title,
		Amount:    row.Amount,
		SessionID: row.SessionID,
		CreatedAt: row.CreatedAt,
	}
}
