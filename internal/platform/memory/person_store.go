package memory

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/phrazzld/roster-api/internal/domain"
	"github.com/phrazzld/roster-api/internal/store"
)

type personStore struct {
	*access
}

func (s *personStore) GetByID(_ context.Context, id uuid.UUID) (*domain.Person, error) {
	var out *domain.Person
	err := s.do(func(st *state) error {
		p, ok := st.people[id]
		if !ok {
			return store.ErrPersonNotFound
		}
		out = clonePerson(p)
		return nil
	})
	return out, err
}

func (s *personStore) GetByEmail(_ context.Context, email domain.Email) (*domain.Person, error) {
	return s.find(func(p *domain.Person) bool { return p.Email.Equal(email) })
}

func (s *personStore) GetByPhone(_ context.Context, phone domain.Phone) (*domain.Person, error) {
	return s.find(func(p *domain.Person) bool { return p.Phone != nil && p.Phone.Equal(phone) })
}

func (s *personStore) find(match func(*domain.Person) bool) (*domain.Person, error) {
	var out *domain.Person
	err := s.do(func(st *state) error {
		for _, p := range st.people {
			if match(p) {
				out = clonePerson(p)
				return nil
			}
		}
		return store.ErrPersonNotFound
	})
	return out, err
}

func (s *personStore) List(_ context.Context, opts store.ListOptions) ([]*domain.Person, error) {
	opts = opts.Normalize()
	out := make([]*domain.Person, 0)
	err := s.do(func(st *state) error {
		all := make([]*domain.Person, 0, len(st.people))
		for _, p := range st.people {
			all = append(all, p)
		}
		sortPeople(all)
		for i := opts.Offset; i < len(all) && len(out) < opts.Limit; i++ {
			out = append(out, clonePerson(all[i]))
		}
		return nil
	})
	return out, err
}

func (s *personStore) Create(_ context.Context, person *domain.Person) error {
	if err := person.Validate(); err != nil {
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}
	return s.do(func(st *state) error {
		if _, exists := st.people[person.ID]; exists {
			return store.ErrDuplicate
		}
		if err := checkContactUnique(st, person); err != nil {
			return err
		}
		st.people[person.ID] = clonePerson(person)
		return nil
	})
}

func (s *personStore) Update(_ context.Context, person *domain.Person) error {
	if err := person.Validate(); err != nil {
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}
	return s.do(func(st *state) error {
		if _, exists := st.people[person.ID]; !exists {
			return store.ErrPersonNotFound
		}
		if err := checkContactUnique(st, person); err != nil {
			return err
		}
		st.people[person.ID] = clonePerson(person)
		return nil
	})
}

func (s *personStore) Delete(_ context.Context, id uuid.UUID) error {
	return s.do(func(st *state) error {
		if _, exists := st.people[id]; !exists {
			return store.ErrPersonNotFound
		}
		delete(st.people, id)
		return nil
	})
}

// checkContactUnique mirrors the unique indexes on people.email and people.phone.
func checkContactUnique(st *state, person *domain.Person) error {
	for id, other := range st.people {
		if id == person.ID {
			continue
		}
		if other.Email.Equal(person.Email) {
			return store.ErrEmailExists
		}
		if domain.PhonesEqual(other.Phone, person.Phone) && person.Phone != nil {
			return store.ErrPhoneExists
		}
	}
	return nil
}
