package transaction

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/ledger-server/internal/logging"
	"github.com/carson-networks/ledger-server/internal/service"
	"github.com/carson-networks/ledger-server/internal/session"
)

type SummaryAmount struct {
	Amount *float64 `json:"amount" nullable:"true" doc:"Sum of all signed amounts, null when the session has no transactions"`
}

type SummaryResponseBody struct {
	Summary SummaryAmount `json:"summary"`
}

type SummaryOutput struct {
	Body SummaryResponseBody
}

type summaryReader interface {
	Summary(ctx context.Context, sessionID string) (service.Summary, error)
}

// SummaryHandler handles GET /summary.
type SummaryHandler struct {
	TransactionService summaryReader
}

func NewSummaryHandler(svc summaryReader) *SummaryHandler {
	return &SummaryHandler{TransactionService: svc}
}

func (h *SummaryHandler) Register(api huma.API, prefix string) {
	huma.Register(api, huma.Operation{
		OperationID: "get-summary",
		Method:      http.MethodGet,
		Path:        routePath(prefix, "/summary"),
		Summary:     "Balance summary",
		Description: "Returns the balance of the caller's session.",
		Tags:        []string{"Transactions"},
		Middlewares: huma.Middlewares{session.RequireSession(api)},
	}, h.handle)
}

func (h *SummaryHandler) handle(ctx context.Context, _ *struct{}) (*SummaryOutput, error) {
	logData := logging.GetLogData(ctx)
	sessionID, _ := session.FromContext(ctx)

	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("summaryMs")
	}
	summary, err := h.TransactionService.Summary(ctx, sessionID)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		logError(ctx, err)
		return nil, huma.NewError(http.StatusInternalServerError, "failed to summarize transactions")
	}

	if logData != nil {
		logData.AddData("hasTransactions", summary.Amount != nil)
	}

	resp := SummaryResponseBody{}
	if summary.Amount != nil {
		amount := summary.Amount.InexactFloat64()
		resp.Summary.Amount = &amount
	}

	return &SummaryOutput{Body: resp}, nil
}
