package sqlconfig

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
)

// Transaction represents a transaction record.
type Transaction struct {
	ID        uuid.UUID       `db:"id"`
	Title     string          `db:"title"`
	Amount    decimal.Decimal `db:"amount"`
	SessionID string          `db:"session_id"`
	CreatedAt time.Time       `db:"created_at"`
}

// TransactionCreate is the input for creating a new transaction.
// Amount is stored as given, already signed.
type TransactionCreate struct {
	Title     string
	Amount    decimal.Decimal
	SessionID string
}

// ITransactionTable defines the interface for transaction storage operations.
// Every operation is scoped to a single session.
//
//go:generate mockery --name ITransactionTable --inpackage --with-expecter --filename mock_ITransactionTable.go
type ITransactionTable interface {
	List(ctx context.Context, sessionID string) ([]*Transaction, error)
	FindByID(ctx context.Context, sessionID string, id uuid.UUID) (*Transaction, error)
	Sum(ctx context.Context, sessionID string) (decimal.NullDecimal, error)
	Insert(ctx context.Context, create *TransactionCreate) (uuid.UUID, error)
}
