package transaction

import (
	"context"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/gofrs/uuid/v5"
	"github.com/stretchr/testify/mock"

	"github.com/carson-networks/ledger-server/internal/service"
	"github.com/carson-networks/ledger-server/internal/session"
)

const testSession = "9b2e4c1a-7d3f-4e8b-a6c5-1f0e2d3c4b5a"

const sessionCookie = "Cookie: sessionId=" + testSession

// mockTransactionService is a mock for transactionService.
type mockTransactionService struct {
	mock.Mock
}

func (m *mockTransactionService) CreateTransaction(ctx context.Context, sessionID string, transaction service.NewTransaction) (uuid.UUID, error) {
	args := m.Called(ctx, sessionID, transaction)
	if args.Get(0) == nil {
		return uuid.Nil, args.Error(1)
	}
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *mockTransactionService) ListTransactions(ctx context.Context, sessionID string) ([]service.Transaction, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]service.Transaction), args.Error(1)
}

func (m *mockTransactionService) GetTransaction(ctx context.Context, sessionID string, id uuid.UUID) (*service.Transaction, error) {
	args := m.Called(ctx, sessionID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Transaction), args.Error(1)
}

func (m *mockTransactionService) Summary(ctx context.Context, sessionID string) (service.Summary, error) {
	args := m.Called(ctx, sessionID)
	return args.Get(0).(service.Summary), args.Error(1)
}

// newTestAPI registers every transaction route against a humatest API.
func newTestAPI(t *testing.T, svc transactionService) humatest.TestAPI {
	t.Helper()
	_, api := humatest.New(t)
	Register(api, "", svc, session.NewResolver(session.DefaultMaxAge))
	return api
}
