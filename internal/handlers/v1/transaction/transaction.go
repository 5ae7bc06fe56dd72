package transaction

import (
	"context"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/ledger-server/internal/logging"
	"github.com/carson-networks/ledger-server/internal/service"
	"github.com/carson-networks/ledger-server/internal/session"
)

// Transaction is the API response model for a transaction.
// It is used only for responses, not for request bodies.
type Transaction struct {
	ID        string  `json:"id" doc:"Transaction UUID"`
	Title     string  `json:"title" doc:"Title of the transaction"`
	Amount    float64 `json:"amount" doc:"Signed amount, negative for debits"`
	SessionID string  `json:"session_id" doc:"Session that created the transaction"`
	CreatedAt string  `json:"created_at" doc:"RFC3339 creation time"`
}

func toAPITransaction(tx service.Transaction) Transaction {
	return Transaction{
		ID:        tx.ID.String(),
		Title:     tx.Title,
		Amount:    tx.Amount.InexactFloat64(),
		SessionID: tx.SessionID,
		CreatedAt: tx.CreatedAt.Format(time.RFC3339),
	}
}

// routePath joins the configured prefix with an operation path. The list and
// create operations live on the bare prefix.
func routePath(prefix, path string) string {
	if prefix == "" {
		return path
	}
	if path == "/" {
		return prefix
	}
	return prefix + path
}

// logError records a store failure on the request's log data.
func logError(ctx context.Context, err error) {
	if logData := logging.GetLogData(ctx); logData != nil {
		logData.AddData("error", err.Error())
	}
}

// transactionService is everything the transaction routes need from the service layer.
type transactionService interface {
	transactionCreator
	transactionLister
	transactionGetter
	summaryReader
}

// Register mounts every transaction operation under prefix.
func Register(api huma.API, prefix string, svc transactionService, resolver *session.Resolver) {
	NewCreateTransactionHandler(svc, resolver).Register(api, prefix)
	NewListTransactionsHandler(svc).Register(api, prefix)
	NewSummaryHandler(svc).Register(api, prefix)
	NewGetTransactionHandler(svc).Register(api, prefix)
}
