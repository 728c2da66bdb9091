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

// OrganizationService manages organizations and their members.
type OrganizationService interface {
	// CreateOrganization registers an organization. Names are unique ignoring case.
	CreateOrganization(ctx context.Context, in CreateOrganizationInput) result.Result[*domain.Organization]

	// GetOrganization returns the organization with the given ID.
	GetOrganization(ctx context.Context, id uuid.UUID) result.Result[*domain.Organization]

	// AddMember adds a person to an organization. An empty role means member.
	AddMember(ctx context.Context, orgID, personID uuid.UUID, role string) result.Result[*domain.Membership]

	// ListMembers returns the memberships of an organization by join time.
	ListMembers(ctx context.Context, orgID uuid.UUID) result.Result[[]*domain.Membership]
}

type organizationServiceImpl struct {
	uow       store.UnitOfWork
	publisher events.Publisher
	logger    *slog.Logger
}

// NewOrganizationService creates an OrganizationService.
// It returns an error if any of the required dependencies are nil.
func NewOrganizationService(
	uow store.UnitOfWork,
	publisher events.Publisher,
	logger *slog.Logger,
) (OrganizationService, error) {
	if uow == nil {
		return nil, fmt.Errorf("%w: uow", ErrNilDependency)
	}
	if publisher == nil {
		return nil, fmt.Errorf("%w: publisher", ErrNilDependency)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &organizationServiceImpl{
		uow:       uow,
		publisher: publisher,
		logger:    logger.With(slog.String("component", "organization_service")),
	}, nil
}

// CreateOrganization implements OrganizationService.CreateOrganization
func (s *organizationServiceImpl) CreateOrganization(
	ctx context.Context,
	in CreateOrganizationInput,
) result.Result[*domain.Organization] {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var p parser
	name := p.name("name", in.Name)
	country := p.country("country", in.Country)
	var postalCode *domain.PostalCode
	if in.PostalCode != nil {
		pc := p.postalCode("postal_code", *in.PostalCode)
		postalCode = &pc
	}
	if !p.ok() {
		return result.Failure[*domain.Organization](failure.Invalid(p.fields))
	}

	org, err := domain.NewOrganization(name, country, postalCode)
	if err != nil {
		return result.Failure[*domain.Organization](failure.FromValidation(err))
	}

	return transact(ctx, s.uow, log, "create_organization",
		func(ctx context.Context, stores store.Stores) (*domain.Organization, failure.Reason, error) {
			_, err := stores.Organizations.GetByName(ctx, org.Name)
			switch {
			case err == nil:
				return nil, failure.NameAlreadyExists{Name: org.Name}, nil
			case !store.IsNotFoundError(err):
				return nil, nil, err
			}

			if err := stores.Organizations.Create(ctx, org); err != nil {
				if errors.Is(err, store.ErrOrganizationNameExists) {
					return nil, failure.NameAlreadyExists{Name: org.Name}, nil
				}
				return nil, nil, err
			}

			if err := s.publisher.Publish(ctx, events.NewOrganizationCreated(org)); err != nil {
				return nil, nil, err
			}

			log.Info("organization created", slog.String("organization_id", org.ID.String()))
			return org, nil, nil
		})
}

// GetOrganization implements OrganizationService.GetOrganization
func (s *organizationServiceImpl) GetOrganization(ctx context.Context, id uuid.UUID) result.Result[*domain.Organization] {
	log := logger.FromContextOrDefault(ctx, s.logger)

	org, err := s.uow.Stores().Organizations.GetByID(ctx, id)
	if err != nil {
		if store.IsNotFoundError(err) {
			return result.Failure[*domain.Organization](organizationNotFound)
		}
		return unexpected[*domain.Organization](log, "get_organization", err)
	}
	return result.Success(org)
}

// AddMember implements OrganizationService.AddMember
func (s *organizationServiceImpl) AddMember(
	ctx context.Context,
	orgID, personID uuid.UUID,
	role string,
) result.Result[*domain.Membership] {
	log := logger.FromContextOrDefault(ctx, s.logger)

	parsedRole, err := domain.ParseRole(role)
	if err != nil {
		return result.Failure[*domain.Membership](failure.FromValidation(err))
	}

	return transact(ctx, s.uow, log, "add_member",
		func(ctx context.Context, stores store.Stores) (*domain.Membership, failure.Reason, error) {
			org, err := stores.Organizations.GetByID(ctx, orgID)
			if err != nil {
				if store.IsNotFoundError(err) {
					return nil, organizationNotFound, nil
				}
				return nil, nil, err
			}
			person, err := stores.People.GetByID(ctx, personID)
			if err != nil {
				if store.IsNotFoundError(err) {
					return nil, personNotFound, nil
				}
				return nil, nil, err
			}

			alreadyMember := failure.AlreadyMember{OrganizationID: orgID, PersonID: personID}
			exists, err := stores.Memberships.Exists(ctx, orgID, personID)
			if err != nil {
				return nil, nil, err
			}
			if exists {
				return nil, alreadyMember, nil
			}

			membership, err := domain.NewMembership(orgID, personID, parsedRole)
			if err != nil {
				return nil, failure.FromValidation(err), nil
			}
			if err := stores.Memberships.Add(ctx, membership); err != nil {
				if errors.Is(err, store.ErrMembershipExists) {
					return nil, alreadyMember, nil
				}
				return nil, nil, err
			}

			if err := s.publisher.Publish(ctx, events.NewMemberAdded(org, person, membership)); err != nil {
				return nil, nil, err
			}

			log.Info("member added",
				slog.String("organization_id", orgID.String()),
				slog.String("person_id", personID.String()),
				slog.String("role", string(membership.Role)))
			return membership, nil, nil
		})
}

// ListMembers implements OrganizationService.ListMembers
func (s *organizationServiceImpl) ListMembers(ctx context.Context, orgID uuid.UUID) result.Result[[]*domain.Membership] {
	log := logger.FromContextOrDefault(ctx, s.logger)
	stores := s.uow.Stores()

	if _, err := stores.Organizations.GetByID(ctx, orgID); err != nil {
		if store.IsNotFoundError(err) {
			return result.Failure[[]*domain.Membership](organizationNotFound)
		}
		return unexpected[[]*domain.Membership](log, "list_members", err)
	}

	members, err := stores.Memberships.ListByOrganization(ctx, orgID)
	if err != nil {
		return unexpected[[]*domain.Membership](log, "list_members", err)
	}
	if members == nil {
		members = make([]*domain.Membership, 0)
	}
	return result.Success(members)
}
