package transaction

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/ledger-server/internal/logging"
	"github.com/carson-networks/ledger-server/internal/service"
	"github.com/carson-networks/ledger-server/internal/session"
)

// GetTransactionInput is the Huma input for fetching one transaction.
type GetTransactionInput struct {
	ID string `path:"id" format:"uuid" doc:"Transaction UUID"`
}

// GetTransactionResponseBody holds the transaction, or null when the
// session has no transaction with that ID.
type GetTransactionResponseBody struct {
	Transaction *Transaction `json:"transaction" doc:"The transaction, null when not found"`
}

// GetTransactionOutput is the Huma output for fetching one transaction.
type GetTransactionOutput struct {
	Body GetTransactionResponseBody
}

type transactionGetter interface {
	GetTransaction(ctx context.Context, sessionID string, id uuid.UUID) (*service.Transaction, error)
}

// GetTransactionHandler handles GET /{id}.
type GetTransactionHandler struct {
	TransactionService transactionGetter
}

func NewGetTransactionHandler(svc transactionGetter) *GetTransactionHandler {
	return &GetTransactionHandler{TransactionService: svc}
}

func (h *GetTransactionHandler) Register(api huma.API, prefix string) {
	huma.Register(api, huma.Operation{
		OperationID: "get-transaction",
		Method:      http.MethodGet,
		Path:        routePath(prefix, "/{id}"),
		Summary:     "Get transaction",
		Description: "Returns one transaction of the caller's session.",
		Tags:        []string{"Transactions"},
		Middlewares: huma.Middlewares{session.RequireSession(api)},
	}, h.handle)
}

func (h *GetTransactionHandler) handle(ctx context.Context, input *GetTransactionInput) (*GetTransactionOutput, error) {
	id, err := uuid.FromString(input.ID)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid id", err)
	}

	logData := logging.GetLogData(ctx)
	if logData != nil {
		logData.AddData("transactionID", id.String())
	}

	sessionID, _ := session.FromContext(ctx)

	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("getTransactionMs")
	}
	tx, err := h.TransactionService.GetTransaction(ctx, sessionID, id)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		logError(ctx, err)
		return nil, huma.NewError(http.StatusInternalServerError, "failed to get transaction")
	}

	if logData != nil {
		logData.AddData("found", tx != nil)
	}

	resp := GetTransactionResponseBody{}
	if tx != nil {
		apiTx := toAPITransaction(*tx)
		resp.Transaction = &apiTx
	}

	return &GetTransactionOutput{Body: resp}, nil
}
