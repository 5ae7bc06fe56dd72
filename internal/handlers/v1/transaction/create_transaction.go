package transaction

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/ledger-server/internal/logging"
	"github.com/carson-networks/ledger-server/internal/service"
	"github.com/carson-networks/ledger-server/internal/session"
)

// CreateTransactionBody is the request body for creating a transaction.
type CreateTransactionBody struct {
	Title  string  `json:"title" minLength:"1" doc:"Title of the transaction"`
	Amount float64 `json:"amount" minimum:"0" doc:"Non-negative amount"`
	Type   string  `json:"type" enum:"credit,debit" doc:"credit adds the amount to the balance, debit subtracts it"`
}

// CreateTransactionInput is the Huma input for creating a transaction.
type CreateTransactionInput struct {
	SessionID string `cookie:"sessionId" doc:"Session to record the transaction under, minted when absent"`
	Body      CreateTransactionBody
}

// CreateTransactionOutput is the Huma output for creating a transaction.
// The response has no body.
type CreateTransactionOutput struct {
	SetCookie string `header:"Set-Cookie" doc:"Issued only when the request carried no session"`
}

// transactionCreator is the interface for creating transactions.
type transactionCreator interface {
	CreateTransaction(ctx context.Context, sessionID string, transaction service.NewTransaction) (uuid.UUID, error)
}

// CreateTransactionHandler handles POST /.
type CreateTransactionHandler struct {
	TransactionService transactionCreator
	Resolver           *session.Resolver
}

// NewCreateTransactionHandler creates a new CreateTransactionHandler.
func NewCreateTransactionHandler(svc transactionCreator, resolver *session.Resolver) *CreateTransactionHandler {
	return &CreateTransactionHandler{TransactionService: svc, Resolver: resolver}
}

// Register registers the create transaction endpoint with the Huma API.
func (h *CreateTransactionHandler) Register(api huma.API, prefix string) {
	huma.Register(api, huma.Operation{
		OperationID:   "create-transaction",
		Method:        http.MethodPost,
		Path:          routePath(prefix, "/"),
		Summary:       "Create transaction",
		Description:   "Records a credit or debit for the caller's session, starting a new session when the request has none.",
		Tags:          []string{"Transactions"},
		DefaultStatus: http.StatusCreated,
	}, h.handle)
}

// parseCreateTransactionInput converts the validated body into the service model.
func parseCreateTransactionInput(input *CreateTransactionInput) service.NewTransaction {
	return service.NewTransaction{
		Title:  input.Body.Title,
		Amount: decimal.NewFromFloat(input.Body.Amount),
		Type:   service.TransactionType(input.Body.Type),
	}
}

func (h *CreateTransactionHandler) handle(ctx context.Context, input *CreateTransactionInput) (*CreateTransactionOutput, error) {
	logData := logging.GetLogData(ctx)
	transaction := parseCreateTransactionInput(input)

	sessionID, cookie, err := h.Resolver.Resolve(input.SessionID)
	if err != nil {
		logError(ctx, err)
		return nil, huma.NewError(http.StatusInternalServerError, "failed to start session")
	}
	if logData != nil {
		logData.AddData("sessionID", sessionID)
		logData.AddData("newSession", cookie != nil)
	}

	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("createTransactionMs")
	}
	id, err := h.TransactionService.CreateTransaction(ctx, sessionID, transaction)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		if errors.Is(err, service.ErrNegativeAmount) ||
			errors.Is(err, service.ErrInvalidTransactionType) ||
			errors.Is(err, service.ErrEmptyTitle) {
			return nil, huma.NewError(http.StatusBadRequest, "invalid transaction", err)
		}
		logError(ctx, err)
		return nil, huma.NewError(http.StatusInternalServerError, "failed to create transaction")
	}

	if logData != nil {
		logData.AddData("transactionID", id.String())
	}

	output := &CreateTransactionOutput{}
	if cookie != nil {
		output.SetCookie = cookie.String()
	}
	return output, nil
}
