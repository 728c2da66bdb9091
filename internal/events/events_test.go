package events_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/roster-api/internal/domain"
	"github.com/phrazzld/roster-api/internal/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventConstruction(t *testing.T) {
	t.Parallel()

	p := testPerson(t)
	org, err := domain.NewOrganization("Acme", domain.MustNewCountryCode("US"), nil)
	require.NoError(t, err)
	m, err := domain.NewMembership(org.ID, p.ID, domain.RoleAdmin)
	require.NoError(t, err)

	before := time.Now().UTC()
	all := []events.DomainEvent{
		events.NewPersonCreated(p),
		events.NewPersonUpdated(p, p),
		events.NewPersonDeleted(p),
		events.NewEmailVerified(p.ID, p.Email),
		events.NewPhoneVerified(p.ID, domain.MustNewPhone("+15551234567")),
		events.NewOrganizationCreated(org),
		events.NewMemberAdded(org, p, m),
		events.NewJobCompleted("cleanup", 1, 0, true, "ok", time.Second),
		events.NewApplicationStarted("v1"),
	}

	ids := make(map[uuid.UUID]bool)
	var types []string
	for _, e := range all {
		assert.NotEqual(t, uuid.Nil, e.EventID())
		assert.False(t, e.OccurredAt().Before(before))
		assert.Equal(t, time.UTC, e.OccurredAt().Location())
		ids[e.EventID()] = true
		types = append(types, e.EventType())
	}
	assert.Len(t, ids, len(all))
	assert.ElementsMatch(t, events.AllEventTypes(), types)
}

func TestEventFamilies(t *testing.T) {
	t.Parallel()

	p := testPerson(t)
	tests := []struct {
		event  events.DomainEvent
		family events.Family
	}{
		{events.NewPersonCreated(p), events.FamilyPerson},
		{events.NewPersonDeleted(p), events.FamilyPerson},
		{events.NewJobCompleted("job", 0, 0, true, "", 0), events.FamilySystem},
		{events.NewApplicationStarted("v1"), events.FamilySystem},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.family, tt.event.Family(), tt.event.EventType())
		_, isPerson := tt.event.(events.PersonEvent)
		_, isSystem := tt.event.(events.SystemEvent)
		assert.Equal(t, tt.family == events.FamilyPerson, isPerson)
		assert.Equal(t, tt.family == events.FamilySystem, isSystem)
	}
}

func TestEventJSON(t *testing.T) {
	t.Parallel()

	p := testPerson(t)
	e := events.NewPersonCreated(p)

	data, err := json.Marshal(e)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, e.EventID().String(), decoded["event_id"])
	assert.Equal(t, "bob@example.com", decoded["email"])
	assert.Equal(t, p.ID.String(), decoded["person_id"])
	assert.NotContains(t, decoded, "phone")
}
