package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Shmhzr/ai-voice/internal/core/ports"
)

// ErrNoTransaction is returned by Commit and Rollback when Begin was not called.
var ErrNoTransaction = errors.New("no transaction in progress")

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type UnitOfWorkFactory struct {
	db *sql.DB
}

func (f *UnitOfWorkFactory) Create() *UnitOfWork {
	return &UnitOfWork{db: f.db}
}

// UnitOfWork wraps one transaction. Repositories obtained before Begin run
// directly against the database.
type UnitOfWork struct {
	db *sql.DB
	tx *sql.Tx
}

func (uow *UnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	tx, err := uow.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	uow.tx = tx
	return nil
}

func (uow *UnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return ErrNoTransaction
	}

	err := uow.tx.Commit()
	uow.tx = nil
	return err
}

func (uow *UnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return ErrNoTransaction
	}

	err := uow.tx.Rollback()
	uow.tx = nil
	return err
}

func (uow *UnitOfWork) OrderRepository() ports.OrderRepository {
	if uow.tx != nil {
		return &OrderRepository{q: uow.tx}
	}
	return &OrderRepository{q: uow.db}
}
