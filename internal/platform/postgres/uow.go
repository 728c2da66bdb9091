package postgres

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/phrazzld/roster-api/internal/store"
)

// UnitOfWork implements store.UnitOfWork over a *sql.DB.
type UnitOfWork struct {
	db     *sql.DB
	logger *slog.Logger
}

var _ store.UnitOfWork = (*UnitOfWork)(nil)

// NewUnitOfWork creates a UnitOfWork. If logger is nil, a default logger will be used.
func NewUnitOfWork(db *sql.DB, logger *slog.Logger) *UnitOfWork {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &UnitOfWork{db: db, logger: logger}
}

// RunInTx implements store.UnitOfWork.RunInTx
func (u *UnitOfWork) RunInTx(ctx context.Context, fn store.UnitOfWorkFn) error {
	return store.RunInTransaction(ctx, u.db, func(ctx context.Context, tx *sql.Tx) error {
		return fn(ctx, u.bind(tx))
	})
}

// Stores implements store.UnitOfWork.Stores
func (u *UnitOfWork) Stores() store.Stores {
	return u.bind(u.db)
}

func (u *UnitOfWork) bind(db store.DBTX) store.Stores {
	return store.Stores{
		People:        NewPostgresPersonStore(db, u.logger),
		Organizations: NewPostgresOrganizationStore(db, u.logger),
		Memberships:   NewPostgresMembershipStore(db, u.logger),
	}
}
