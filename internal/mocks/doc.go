// Package mocks provides shared test doubles for the roster interfaces.
//
// Two styles live here. Function-field mocks (MockJWTService,
// MockPersonService, ...) return canned values unless a Fn field overrides
// them and suit handler tests. Testify mocks (TestifyMockPersonStore,
// TestifyMockPublisher) suit tests that assert on calls.
//
//	uow := mocks.NewMockUnitOfWork(store.Stores{People: people})
//	people.On("GetByID", mock.Anything, id).Return(nil, errBoom)
package mocks
