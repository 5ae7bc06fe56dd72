package service

import (
	"errors"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
)

var (
	ErrNegativeAmount         = errors.New("amount must not be negative")
	ErrInvalidTransactionType = errors.New("type must be credit or debit")
	ErrEmptyTitle             = errors.New("title must not be empty")
)

// TransactionType says whether an entry adds to or takes from the balance.
type TransactionType string

const (
	TransactionTypeCredit TransactionType = "credit"
	TransactionTypeDebit  TransactionType = "debit"
)

func (t TransactionType) Valid() bool {
	return t == TransactionTypeCredit || t == TransactionTypeDebit
}

// NewTransaction is a transaction as submitted by a client. Amount is a
// non-negative magnitude; Type decides the sign it is stored with.
type NewTransaction struct {
	Title  string
	Amount decimal.Decimal
	Type   TransactionType
}

// Transaction represents a stored transaction in the service layer.
type Transaction struct {
	ID        uuid.UUID
	Title     string
	Amount    decimal.Decimal
	SessionID string
	CreatedAt time.Time
}

// Summary is the balance of a session. Amount is nil when the session has no transactions.
type Summary struct {
	Amount *decimal.Decimal
}

// signedAmount applies the credit/debit sign encoding.
func signedAmount(amount decimal.Decimal, transactionType TransactionType) decimal.Decimal {
	if transactionType == TransactionTypeDebit {
		return amount.Neg()
	}
	return amount
}
