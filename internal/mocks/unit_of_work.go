package mocks

import (
	"context"
	"sync"

	"github.com/phrazzld/roster-api/internal/store"
)

// MockUnitOfWork implements store.UnitOfWork over fixed stores. It has no
// rollback; pair it with mock stores, not stateful ones.
type MockUnitOfWork struct {
	StoresValue store.Stores

	// RunInTxFn overrides RunInTx when set
	RunInTxFn func(ctx context.Context, fn store.UnitOfWorkFn) error

	mu      sync.Mutex
	txCalls int
}

var _ store.UnitOfWork = (*MockUnitOfWork)(nil)

// NewMockUnitOfWork creates a MockUnitOfWork handing out stores.
func NewMockUnitOfWork(stores store.Stores) *MockUnitOfWork {
	return &MockUnitOfWork{StoresValue: stores}
}

// RunInTx implements store.UnitOfWork
func (m *MockUnitOfWork) RunInTx(ctx context.Context, fn store.UnitOfWorkFn) error {
	m.mu.Lock()
	m.txCalls++
	m.mu.Unlock()

	if m.RunInTxFn != nil {
		return m.RunInTxFn(ctx, fn)
	}
	return fn(ctx, m.StoresValue)
}

// Stores implements store.UnitOfWork
func (m *MockUnitOfWork) Stores() store.Stores {
	return m.StoresValue
}

// TxCalls returns how many times RunInTx was called.
func (m *MockUnitOfWork) TxCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.txCalls
}
