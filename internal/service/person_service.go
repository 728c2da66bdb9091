package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/roster-api/internal/domain"
	"github.com/phrazzld/roster-api/internal/events"
	"github.com/phrazzld/roster-api/internal/failure"
	"github.com/phrazzld/roster-api/internal/platform/logger"
	"github.com/phrazzld/roster-api/internal/result"
	"github.com/phrazzld/roster-api/internal/store"
)

// PersonService manages people and their contact details.
type PersonService interface {
	// CreatePerson registers a person. Email and phone must be unused.
	CreatePerson(ctx context.Context, in CreatePersonInput) result.Result[*domain.Person]

	// GetPerson returns the person with the given ID.
	GetPerson(ctx context.Context, id uuid.UUID) result.Result[*domain.Person]

	// ListPeople returns a page of people, oldest first.
	ListPeople(ctx context.Context, opts store.ListOptions) result.Result[[]*domain.Person]

	// UpdatePerson applies the non-nil fields of in.
	UpdatePerson(ctx context.Context, id uuid.UUID, in UpdatePersonInput) result.Result[*domain.Person]

	// DeletePerson removes a person and their memberships and returns the removed person.
	DeletePerson(ctx context.Context, id uuid.UUID) result.Result[*domain.Person]

	// VerifyEmail marks the email verified when email matches the one on record.
	VerifyEmail(ctx context.Context, id uuid.UUID, email domain.Email) result.Result[*domain.Person]

	// VerifyPhone marks the phone verified when phone matches the one on record.
	VerifyPhone(ctx context.Context, id uuid.UUID, phone domain.Phone) result.Result[*domain.Person]
}

type personServiceImpl struct {
	uow       store.UnitOfWork
	publisher events.Publisher
	logger    *slog.Logger
}

// NewPersonService creates a PersonService.
// It returns an error if any of the required dependencies are nil.
func NewPersonService(uow store.UnitOfWork, publisher events.Publisher, logger *slog.Logger) (PersonService, error) {
	if uow == nil {
		return nil, fmt.Errorf("%w: uow", ErrNilDependency)
	}
	if publisher == nil {
		return nil, fmt.Errorf("%w: publisher", ErrNilDependency)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &personServiceImpl{
		uow:       uow,
		publisher: publisher,
		logger:    logger.With(slog.String("component", "person_service")),
	}, nil
}

// CreatePerson implements PersonService.CreatePerson
func (s *personServiceImpl) CreatePerson(ctx context.Context, in CreatePersonInput) result.Result[*domain.Person] {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var p parser
	name := p.name("name", in.Name)
	email := p.email("email", in.Email)
	var phone *domain.Phone
	if in.Phone != nil {
		phone = p.phone("phone", *in.Phone)
	}
	address := p.address(in.Address)
	if !p.ok() {
		return result.Failure[*domain.Person](failure.Invalid(p.fields))
	}

	person, err := domain.NewPerson(name, email, phone, address)
	if err != nil {
		return result.Failure[*domain.Person](failure.FromValidation(err))
	}

	return transact(ctx, s.uow, log, "create_person",
		func(ctx context.Context, stores store.Stores) (*domain.Person, failure.Reason, error) {
			if reason, err := checkContactFree(ctx, stores.People, uuid.Nil, person.Email, person.Phone); reason != nil || err != nil {
				return nil, reason, err
			}

			if err := stores.People.Create(ctx, person); err != nil {
				if reason := contactClash(err, person); reason != nil {
					return nil, reason, nil
				}
				return nil, nil, err
			}

			if err := s.publisher.Publish(ctx, events.NewPersonCreated(person)); err != nil {
				return nil, nil, err
			}

			log.Info("person created", slog.String("person_id", person.ID.String()))
			return person, nil, nil
		})
}

// GetPerson implements PersonService.GetPerson
func (s *personServiceImpl) GetPerson(ctx context.Context, id uuid.UUID) result.Result[*domain.Person] {
	log := logger.FromContextOrDefault(ctx, s.logger)

	person, err := s.uow.Stores().People.GetByID(ctx, id)
	if err != nil {
		if store.IsNotFoundError(err) {
			return result.Failure[*domain.Person](personNotFound)
		}
		return unexpected[*domain.Person](log, "get_person", err)
	}
	return result.Success(person)
}

// ListPeople implements PersonService.ListPeople
func (s *personServiceImpl) ListPeople(ctx context.Context, opts store.ListOptions) result.Result[[]*domain.Person] {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var fields domain.FieldErrors
	if opts.Limit < 0 || opts.Limit > store.MaxListLimit {
		fields.Add("limit", fmt.Errorf("limit must be between 0 and %d", store.MaxListLimit))
	}
	if opts.Offset < 0 {
		fields.Add("offset", errors.New("offset cannot be negative"))
	}
	if !fields.Empty() {
		return result.Failure[[]*domain.Person](failure.Invalid(fields))
	}

	people, err := s.uow.Stores().People.List(ctx, opts.Normalize())
	if err != nil {
		return unexpected[[]*domain.Person](log, "list_people", err)
	}
	if people == nil {
		people = make([]*domain.Person, 0)
	}
	return result.Success(people)
}

// UpdatePerson implements PersonService.UpdatePerson.
// A changed email or phone loses its verified flag.
func (s *personServiceImpl) UpdatePerson(
	ctx context.Context,
	id uuid.UUID,
	in UpdatePersonInput,
) result.Result[*domain.Person] {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var (
		p       parser
		name    string
		email   domain.Email
		phone   *domain.Phone
		address *domain.Address
	)
	hasPhone := in.Phone != nil
	dropPhone := hasPhone && *in.Phone == ""
	if in.Name != nil {
		name = p.name("name", *in.Name)
	}
	if in.Email != nil {
		email = p.email("email", *in.Email)
	}
	if hasPhone && !dropPhone {
		phone = p.phone("phone", *in.Phone)
	}
	if in.Address != nil {
		address = p.address(in.Address)
	}
	if !p.ok() {
		return result.Failure[*domain.Person](failure.Invalid(p.fields))
	}

	return transact(ctx, s.uow, log, "update_person",
		func(ctx context.Context, stores store.Stores) (*domain.Person, failure.Reason, error) {
			person, err := stores.People.GetByID(ctx, id)
			if err != nil {
				if store.IsNotFoundError(err) {
					return nil, personNotFound, nil
				}
				return nil, nil, err
			}
			before := *person

			if in.Name != nil {
				person.Name = name
			}
			if in.Email != nil {
				person.ChangeEmail(email)
			}
			if hasPhone {
				person.ChangePhone(phone)
			}
			if in.Address != nil {
				person.Address = address
			}

			var newEmail domain.Email
			if !person.Email.Equal(before.Email) {
				newEmail = person.Email
			}
			var newPhone *domain.Phone
			if !domain.PhonesEqual(person.Phone, before.Phone) {
				newPhone = person.Phone
			}
			if reason, err := checkContactFree(ctx, stores.People, person.ID, newEmail, newPhone); reason != nil || err != nil {
				return nil, reason, err
			}

			person.Touch()
			if err := stores.People.Update(ctx, person); err != nil {
				if reason := contactClash(err, person); reason != nil {
					return nil, reason, nil
				}
				return nil, nil, err
			}

			if err := s.publisher.Publish(ctx, events.NewPersonUpdated(&before, person)); err != nil {
				return nil, nil, err
			}

			log.Info("person updated", slog.String("person_id", person.ID.String()))
			return person, nil, nil
		})
}

// DeletePerson implements PersonService.DeletePerson
func (s *personServiceImpl) DeletePerson(ctx context.Context, id uuid.UUID) result.Result[*domain.Person] {
	log := logger.FromContextOrDefault(ctx, s.logger)

	return transact(ctx, s.uow, log, "delete_person",
		func(ctx context.Context, stores store.Stores) (*domain.Person, failure.Reason, error) {
			person, err := stores.People.GetByID(ctx, id)
			if err != nil {
				if store.IsNotFoundError(err) {
					return nil, personNotFound, nil
				}
				return nil, nil, err
			}

			removed, err := stores.Memberships.DeleteByPerson(ctx, id)
			if err != nil {
				return nil, nil, err
			}
			if err := stores.People.Delete(ctx, id); err != nil {
				return nil, nil, err
			}

			if err := s.publisher.Publish(ctx, events.NewPersonDeleted(person)); err != nil {
				return nil, nil, err
			}

			log.Info("person deleted",
				slog.String("person_id", id.String()),
				slog.Int("memberships_removed", removed))
			return person, nil, nil
		})
}

// VerifyEmail implements PersonService.VerifyEmail
func (s *personServiceImpl) VerifyEmail(
	ctx context.Context,
	id uuid.UUID,
	email domain.Email,
) result.Result[*domain.Person] {
	log := logger.FromContextOrDefault(ctx, s.logger)

	return transact(ctx, s.uow, log, "verify_email",
		func(ctx context.Context, stores store.Stores) (*domain.Person, failure.Reason, error) {
			person, err := stores.People.GetByID(ctx, id)
			if err != nil {
				if store.IsNotFoundError(err) {
					return nil, personNotFound, nil
				}
				return nil, nil, err
			}
			if !person.Email.Equal(email) {
				return nil, failure.EmailMismatch{Expected: person.Email, Actual: email}, nil
			}

			person.EmailVerified = true
			person.Touch()
			if err := stores.People.Update(ctx, person); err != nil {
				return nil, nil, err
			}
			if err := s.publisher.Publish(ctx, events.NewEmailVerified(person.ID, person.Email)); err != nil {
				return nil, nil, err
			}
			return person, nil, nil
		})
}

// VerifyPhone implements PersonService.VerifyPhone.
// A person without a phone number fails validation.
func (s *personServiceImpl) VerifyPhone(
	ctx context.Context,
	id uuid.UUID,
	phone domain.Phone,
) result.Result[*domain.Person] {
	log := logger.FromContextOrDefault(ctx, s.logger)

	return transact(ctx, s.uow, log, "verify_phone",
		func(ctx context.Context, stores store.Stores) (*domain.Person, failure.Reason, error) {
			person, err := stores.People.GetByID(ctx, id)
			if err != nil {
				if store.IsNotFoundError(err) {
					return nil, personNotFound, nil
				}
				return nil, nil, err
			}
			if person.Phone == nil {
				var fields domain.FieldErrors
				fields.Add("phone", errors.New("no phone number on record"))
				return nil, failure.Invalid(fields), nil
			}
			if !person.Phone.Equal(phone) {
				return nil, failure.PhoneMismatch{Expected: *person.Phone, Actual: phone}, nil
			}

			person.PhoneVerified = true
			person.Touch()
			if err := stores.People.Update(ctx, person); err != nil {
				return nil, nil, err
			}
			if err := s.publisher.Publish(ctx, events.NewPhoneVerified(person.ID, *person.Phone)); err != nil {
				return nil, nil, err
			}
			return person, nil, nil
		})
}

// checkContactFree reports a clash when email or phone belongs to someone
// other than self. Zero values are not checked.
func checkContactFree(
	ctx context.Context,
	people store.PersonStore,
	self uuid.UUID,
	email domain.Email,
	phone *domain.Phone,
) (failure.Reason, error) {
	if !email.IsZero() {
		holder, err := people.GetByEmail(ctx, email)
		switch {
		case err == nil && holder.ID != self:
			return failure.EmailAlreadyExists{Email: email}, nil
		case err != nil && !store.IsNotFoundError(err):
			return nil, err
		}
	}
	if phone != nil {
		holder, err := people.GetByPhone(ctx, *phone)
		switch {
		case err == nil && holder.ID != self:
			return failure.PhoneAlreadyExists{Phone: *phone}, nil
		case err != nil && !store.IsNotFoundError(err):
			return nil, err
		}
	}
	return nil, nil
}

// contactClash maps a uniqueness error raised by the store, for a write that
// raced past checkContactFree.
func contactClash(err error, person *domain.Person) failure.Reason {
	switch {
	case errors.Is(err, store.ErrEmailExists):
		return failure.EmailAlreadyExists{Email: person.Email}
	case errors.Is(err, store.ErrPhoneExists) && person.Phone != nil:
		return failure.PhoneAlreadyExists{Phone: *person.Phone}
	}
	return nil
}
