package sqlconfig

import (
	"context"
	"database/sql"
	"errors"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/dialect"
	"github.com/stephenafamo/bob/dialect/psql/im"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/scan"
)

const transactionsTableName = "transactions"

var transactionColumns = []any{"id", "title", "amount", "session_id", "created_at"}

var _ ITransactionTable = (*TransactionsTable)(nil)

type TransactionsTable struct {
	exec  bob.Executor
	newID func() (uuid.UUID, error)
}

func NewTransactionsTable(db *sql.DB) *TransactionsTable {
	return &TransactionsTable{exec: bob.NewDB(db), newID: uuid.NewV4}
}

func sessionIs(sessionID string) bob.Mod[*dialect.SelectQuery] {
	return sm.Where(psql.Quote("session_id").EQ(psql.Arg(sessionID)))
}

// List returns every transaction of the session in insertion order.
// Ordering uses the identity column seq, so rows sharing a created_at keep their order.
func (t *TransactionsTable) List(ctx context.Context, sessionID string) ([]*Transaction, error) {
	query := psql.Select(
		sm.Columns(transactionColumns...),
		sm.From(transactionsTableName),
		sessionIs(sessionID),
		sm.OrderBy(psql.Quote("seq")).Asc(),
	)

	rows, err := bob.All(ctx, t.exec, query, scan.StructMapper[*Transaction]())
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// FindByID retrieves a transaction by primary key within the session.
// A missing row is reported as nil without an error.
func (t *TransactionsTable) FindByID(ctx context.Context, sessionID string, id uuid.UUID) (*Transaction, error) {
	query := psql.Select(
		sm.Columns(transactionColumns...),
		sm.From(transactionsTableName),
		sessionIs(sessionID),
		sm.Where(psql.Quote("id").EQ(psql.Arg(id))),
		sm.Limit(1),
	)

	row, err := bob.One(ctx, t.exec, query, scan.StructMapper[*Transaction]())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return row, nil
}

// Sum adds up the session's amounts. The result is invalid when the session has no rows.
func (t *TransactionsTable) Sum(ctx context.Context, sessionID string) (decimal.NullDecimal, error) {
	query := psql.Select(
		sm.Columns(psql.Raw("SUM(amount) AS amount")),
		sm.From(transactionsTableName),
		sessionIs(sessionID),
	)

	return bob.One(ctx, t.exec, query, scan.SingleColumnMapper[decimal.NullDecimal])
}

// Insert creates a new transaction and returns its generated ID.
func (t *TransactionsTable) Insert(ctx context.Context, create *TransactionCreate) (uuid.UUID, error) {
	id, err := t.newID()
	if err != nil {
		return uuid.Nil, err
	}

	query := psql.Insert(
		im.Into(transactionsTableName, "id", "title", "amount", "session_id"),
		im.Values(
			psql.Arg(id),
			psql.Arg(create.Title),
			psql.Arg(create.Amount),
			psql.Arg(create.SessionID),
		),
	)

	if _, err := bob.Exec(ctx, t.exec, query); err != nil {
		return uuid.Nil, err
	}
	return id, nil
}
