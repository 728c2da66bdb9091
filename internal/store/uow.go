package store

import "context"

// Stores groups the stores bound to one unit of work.
type Stores struct {
	People        PersonStore
	Organizations OrganizationStore
	Memberships   MembershipStore
}

// UnitOfWorkFn runs inside a unit of work. Returning an error rolls back
// every change made through stores.
type UnitOfWorkFn func(ctx context.Context, stores Stores) error

// UnitOfWork runs a function against stores that share one transaction.
type UnitOfWork interface {
	// RunInTx commits when fn returns nil and rolls back otherwise. A panic in
	// fn rolls back and is re-raised.
	RunInTx(ctx context.Context, fn UnitOfWorkFn) error

	// Stores returns non-transactional stores for reads.
	Stores() Stores
}
