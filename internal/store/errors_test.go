package store_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/phrazzld/roster-api/internal/store"
	"github.com/stretchr/testify/assert"
)

func TestIsNotFoundError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"nil error", nil, false},
		{"generic error", errors.New("some error"), false},
		{"ErrNotFound", store.ErrNotFound, true},
		{"ErrPersonNotFound", store.ErrPersonNotFound, true},
		{"wrapped ErrOrganizationNotFound", fmt.Errorf("lookup: %w", store.ErrOrganizationNotFound), true},
		{"duplicate is not not-found", store.ErrEmailExists, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, store.IsNotFoundError(tt.err))
		})
	}
}

func TestIsDuplicateError(t *testing.T) {
	t.Parallel()

	for _, err := range []error{
		store.ErrDuplicate,
		store.ErrEmailExists,
		store.ErrPhoneExists,
		store.ErrOrganizationNameExists,
		fmt.Errorf("insert: %w", store.ErrMembershipExists),
	} {
		assert.True(t, store.IsDuplicateError(err), err.Error())
	}
	assert.False(t, store.IsDuplicateError(store.ErrPersonNotFound))
	assert.False(t, errors.Is(store.ErrEmailExists, store.ErrPhoneExists))
}

func TestStoreError(t *testing.T) {
	t.Parallel()

	cause := store.ErrPersonNotFound
	err := store.NewStoreError("person", "update", "person missing", cause)

	assert.Equal(t, "update operation on person failed: person missing: entity not found: person", err.Error())
	assert.ErrorIs(t, err, store.ErrNotFound)

	bare := store.NewStoreError("person", "list", "bad cursor", nil)
	assert.Equal(t, "list operation on person failed: bad cursor", bare.Error())
}

func TestListOptionsNormalize(t *testing.T) {
	t.Parallel()

	assert.Equal(t, store.ListOptions{Limit: store.DefaultListLimit}, store.ListOptions{}.Normalize())
	assert.Equal(t, store.ListOptions{Limit: store.MaxListLimit, Offset: 0}, store.ListOptions{Limit: 10_000, Offset: -3}.Normalize())
	assert.Equal(t, store.ListOptions{Limit: 5, Offset: 10}, store.ListOptions{Limit: 5, Offset: 10}.Normalize())
}
