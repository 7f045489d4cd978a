package testutil

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"strings"
	"sync"

	"github.com/alexanderramin/firstmap/internal/db"
)

// ErrInjectedWrite is returned by FailingUoW when Err is unset.
var ErrInjectedWrite = errors.New("injected write failure")

// FailingUoW runs each transaction through the real SQLite unit of work and
// fails its FailOn-th write statement, counting from 1. Reads pass through.
// With Table set, only statements naming that table are counted.
type FailingUoW struct {
	DB     *sql.DB
	FailOn int
	Table  string
	Err    error
	Logger *slog.Logger

	mu     sync.Mutex
	failed []string
}

func (u *FailingUoW) WithinTx(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
	inner := db.NewSQLiteUnitOfWork(u.DB, db.WithLogger(u.Logger))
	return inner.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return fn(ctx, &failingTx{DBTX: tx, uow: u})
	})
}

// Failed lists the statements that were refused, oldest first.
func (u *FailingUoW) Failed() []string {
	u.mu.Lock()
	defer u.mu.Unlock()
	return append([]string(nil), u.failed...)
}

func (u *FailingUoW) refuse(query string) error {
	u.mu.Lock()
	u.failed = append(u.failed, strings.Join(strings.Fields(query), " "))
	u.mu.Unlock()
	if u.Err != nil {
		return u.Err
	}
	return ErrInjectedWrite
}

// failingTx counts writes for a single transaction.
type failingTx struct {
	db.DBTX
	uow    *FailingUoW
	writes int
}

func (f *failingTx) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	if f.uow.Table == "" || strings.Contains(query, f.uow.Table) {
		f.writes++
		if f.writes == f.uow.FailOn {
			return nil, f.uow.refuse(query)
		}
	}
	return f.DBTX.ExecContext(ctx, query, args...)
}
