package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/phrazzld/roster-api/internal/domain"
	"github.com/phrazzld/roster-api/internal/store"
)

type organizationStore struct {
	*access
}

func (s *organizationStore) GetByID(_ context.Context, id uuid.UUID) (*domain.Organization, error) {
	var out *domain.Organization
	err := s.do(func(st *state) error {
		o, ok := st.orgs[id]
		if !ok {
			return store.ErrOrganizationNotFound
		}
		out = cloneOrganization(o)
		return nil
	})
	return out, err
}

func (s *organizationStore) GetByName(_ context.Context, name string) (*domain.Organization, error) {
	key := domain.NormalizeName(name)
	var out *domain.Organization
	err := s.do(func(st *state) error {
		for _, o := range st.orgs {
			if o.NormalizedName() == key {
				out = cloneOrganization(o)
				return nil
			}
		}
		return store.ErrOrganizationNotFound
	})
	return out, err
}

func (s *organizationStore) Create(_ context.Context, org *domain.Organization) error {
	if err := org.Validate(); err != nil {
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}
	return s.do(func(st *state) error {
		for _, o := range st.orgs {
			if o.NormalizedName() == org.NormalizedName() {
				return store.ErrOrganizationNameExists
			}
		}
		st.orgs[org.ID] = cloneOrganization(org)
		return nil
	})
}

type membershipStore struct {
	*access
}

func (s *membershipStore) Add(_ context.Context, m *domain.Membership) error {
	if err := m.Validate(); err != nil {
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}
	key := membershipKey{org: m.OrganizationID, person: m.PersonID}
	return s.do(func(st *state) error {
		if _, exists := st.memberships[key]; exists {
			return store.ErrMembershipExists
		}
		if _, ok := st.orgs[m.OrganizationID]; !ok {
			return store.ErrOrganizationNotFound
		}
		if _, ok := st.people[m.PersonID]; !ok {
			return store.ErrPersonNotFound
		}
		st.memberships[key] = cloneMembership(m)
		return nil
	})
}

func (s *membershipStore) Exists(_ context.Context, orgID, personID uuid.UUID) (bool, error) {
	var exists bool
	err := s.do(func(st *state) error {
		_, exists = st.memberships[membershipKey{org: orgID, person: personID}]
		return nil
	})
	return exists, err
}

func (s *membershipStore) ListByOrganization(_ context.Context, orgID uuid.UUID) ([]*domain.Membership, error) {
	out := make([]*domain.Membership, 0)
	err := s.do(func(st *state) error {
		for key, m := range st.memberships {
			if key.org == orgID {
				out = append(out, cloneMembership(m))
			}
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool {
		if out[i].JoinedAt.Equal(out[j].JoinedAt) {
			return out[i].PersonID.String() < out[j].PersonID.String()
		}
		return out[i].JoinedAt.Before(out[j].JoinedAt)
	})
	return out, err
}

func (s *membershipStore) DeleteByPerson(_ context.Context, personID uuid.UUID) (int, error) {
	var n int
	err := s.do(func(st *state) error {
		for key := range st.memberships {
			if key.person == personID {
				delete(st.memberships, key)
				n++
			}
		}
		return nil
	})
	return n, err
}
