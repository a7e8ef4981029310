package shared

import (
	"context"

	"resione-server/internal/infra/pg"
)

// UnitOfWork scopes repository calls to a connection or transaction.
type UnitOfWork interface {
	// Within: read-check-write transaction; retried on serialization
	// failures and deadlocks.
	Within(ctx context.Context, fn func(ctx context.Context, tx pg.DBTX) error) error
	// WithDB: single-query operations using implicit transactions.
	WithDB(ctx context.Context, fn func(ctx context.Context, db pg.DBTX) error) error
}
