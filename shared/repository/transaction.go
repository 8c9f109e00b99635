package repository

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"hotel/infras/postgres"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

var errNoTransaction = errors.New("no transaction bound to context")

type txKey struct{}

// Transactor runs fn as one unit of work. Repositories called with the ctx passed to fn
// join the unit.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// NewTransactor returns a Postgres transactor, or the in-memory one when db is nil.
func NewTransactor(db *postgres.Connection) Transactor {
	if db == nil {
		return NewMemoryTransactor()
	}

	return &sqlTransactor{db: db}
}

func txFromContext(ctx context.Context) *sqlx.Tx {
	tx, _ := ctx.Value(txKey{}).(*sqlx.Tx)

	return tx
}

type sqlTransactor struct {
	db *postgres.Connection
}

func (t *sqlTransactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	if txFromContext(ctx) != nil {
		return fn(ctx)
	}

	tx, err := t.db.Write.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()

			panic(p)
		}

		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				log.Error().Err(rbErr).Msg("failed to rollback transaction")
			}

			return
		}

		if err = tx.Commit(); err != nil {
			err = fmt.Errorf("failed to commit transaction: %w", err)
		}
	}()

	return fn(context.WithValue(ctx, txKey{}, tx))
}

type memoryTxKey struct{}

// memoryTransactor serializes units of work. Writes already applied are not rolled back.
type memoryTransactor struct {
	mu sync.Mutex
}

func NewMemoryTransactor() Transactor {
	return &memoryTransactor{}
}

func (t *memoryTransactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if ctx.Value(memoryTxKey{}) != nil {
		return fn(ctx)
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	return fn(context.WithValue(ctx, memoryTxKey{}, true))
}
