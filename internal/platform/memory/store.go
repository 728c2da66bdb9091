package memory

import (
	"context"
	"log/slog"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/phrazzld/roster-api/internal/domain"
	"github.com/phrazzld/roster-api/internal/store"
)

type membershipKey struct {
	org    uuid.UUID
	person uuid.UUID
}

// state is the full data set. Stored entities are private copies and are
// replaced, never mutated, so a shallow map copy is a valid snapshot.
type state struct {
	people      map[uuid.UUID]*domain.Person
	orgs        map[uuid.UUID]*domain.Organization
	memberships map[membershipKey]*domain.Membership
}

func newState() *state {
	return &state{
		people:      make(map[uuid.UUID]*domain.Person),
		orgs:        make(map[uuid.UUID]*domain.Organization),
		memberships: make(map[membershipKey]*domain.Membership),
	}
}

func (s *state) snapshot() *state {
	c := &state{
		people:      make(map[uuid.UUID]*domain.Person, len(s.people)),
		orgs:        make(map[uuid.UUID]*domain.Organization, len(s.orgs)),
		memberships: make(map[membershipKey]*domain.Membership, len(s.memberships)),
	}
	for k, v := range s.people {
		c.people[k] = v
	}
	for k, v := range s.orgs {
		c.orgs[k] = v
	}
	for k, v := range s.memberships {
		c.memberships[k] = v
	}
	return c
}

// Store is an in-memory store.UnitOfWork.
type Store struct {
	mu     sync.Mutex
	data   *state
	logger *slog.Logger
}

var _ store.UnitOfWork = (*Store)(nil)

// NewStore creates an empty Store.
func NewStore(logger *slog.Logger) *Store {
	return &Store{
		data:   newState(),
		logger: logger.With("component", "memory_store"),
	}
}

// RunInTx runs fn with exclusive access to the data. Any error or panic
// restores the data as it was before fn started.
func (s *Store) RunInTx(ctx context.Context, fn store.UnitOfWorkFn) (err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	saved := s.data.snapshot()
	defer func() {
		if p := recover(); p != nil {
			s.data = saved
			s.logger.Error("rolled back transaction after panic", "panic", p)
			panic(p)
		}
	}()

	if err = fn(ctx, s.bind(true)); err != nil {
		s.data = saved
		s.logger.Debug("rolled back transaction due to error")
		return err
	}
	return nil
}

// Stores returns stores that lock per call.
func (s *Store) Stores() store.Stores {
	return s.bind(false)
}

func (s *Store) bind(inTx bool) store.Stores {
	a := &access{store: s, inTx: inTx}
	return store.Stores{
		People:        &personStore{a},
		Organizations: &organizationStore{a},
		Memberships:   &membershipStore{a},
	}
}

// access runs a function against the current state, taking the lock unless
// the caller already holds it through RunInTx.
type access struct {
	store *Store
	inTx  bool
}

func (a *access) do(fn func(st *state) error) error {
	if !a.inTx {
		a.store.mu.Lock()
		defer a.store.mu.Unlock()
	}
	return fn(a.store.data)
}

func clonePerson(p *domain.Person) *domain.Person {
	c := *p
	if p.Phone != nil {
		phone := *p.Phone
		c.Phone = &phone
	}
	if p.Address != nil {
		addr := *p.Address
		c.Address = &addr
	}
	return &c
}

func cloneOrganization(o *domain.Organization) *domain.Organization {
	c := *o
	if o.PostalCode != nil {
		pc := *o.PostalCode
		c.PostalCode = &pc
	}
	return &c
}

func cloneMembership(m *domain.Membership) *domain.Membership {
	c := *m
	return &c
}

func sortPeople(people []*domain.Person) {
	sort.Slice(people, func(i, j int) bool {
		if people[i].CreatedAt.Equal(people[j].CreatedAt) {
			return people[i].ID.String() < people[j].ID.String()
		}
		return people[i].CreatedAt.Before(people[j].CreatedAt)
	})
}
