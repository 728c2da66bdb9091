package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/roster-api/internal/domain"
	"github.com/phrazzld/roster-api/internal/store"
	"github.com/stretchr/testify/mock"
)

// TestifyMockPersonStore is a mock of store.PersonStore for use with testify/mock
type TestifyMockPersonStore struct {
	mock.Mock
}

var _ store.PersonStore = (*TestifyMockPersonStore)(nil)

func (m *TestifyMockPersonStore) person(args mock.Arguments) (*domain.Person, error) {
	if p, ok := args.Get(0).(*domain.Person); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

// GetByID is a mock implementation of store.PersonStore.GetByID
func (m *TestifyMockPersonStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Person, error) {
	return m.person(m.Called(ctx, id))
}

// GetByEmail is a mock implementation of store.PersonStore.GetByEmail
func (m *TestifyMockPersonStore) GetByEmail(ctx context.Context, email domain.Email) (*domain.Person, error) {
	return m.person(m.Called(ctx, email))
}

// GetByPhone is a mock implementation of store.PersonStore.GetByPhone
func (m *TestifyMockPersonStore) GetByPhone(ctx context.Context, phone domain.Phone) (*domain.Person, error) {
	return m.person(m.Called(ctx, phone))
}

// List is a mock implementation of store.PersonStore.List
func (m *TestifyMockPersonStore) List(ctx context.Context, opts store.ListOptions) ([]*domain.Person, error) {
	args := m.Called(ctx, opts)
	if people, ok := args.Get(0).([]*domain.Person); ok {
		return people, args.Error(1)
	}
	return nil, args.Error(1)
}

// Create is a mock implementation of store.PersonStore.Create
func (m *TestifyMockPersonStore) Create(ctx context.Context, person *domain.Person) error {
	return m.Called(ctx, person).Error(0)
}

// Update is a mock implementation of store.PersonStore.Update
func (m *TestifyMockPersonStore) Update(ctx context.Context, person *domain.Person) error {
	return m.Called(ctx, person).Error(0)
}

// Delete is a mock implementation of store.PersonStore.Delete
func (m *TestifyMockPersonStore) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}
