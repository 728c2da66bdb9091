package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/roster-api/internal/domain"
	"github.com/phrazzld/roster-api/internal/events"
	"github.com/phrazzld/roster-api/internal/failure"
	"github.com/phrazzld/roster-api/internal/result"
	"github.com/phrazzld/roster-api/internal/service"
	"github.com/phrazzld/roster-api/internal/store"
)

var notConfigured = failure.Error{Msg: "mock not configured"}

// MockPersonService implements service.PersonService. Each method calls its
// Fn field when set and fails with a failure.Error otherwise.
type MockPersonService struct {
	CreatePersonFn func(ctx context.Context, in service.CreatePersonInput) result.Result[*domain.Person]
	GetPersonFn    func(ctx context.Context, id uuid.UUID) result.Result[*domain.Person]
	ListPeopleFn   func(ctx context.Context, opts store.ListOptions) result.Result[[]*domain.Person]
	UpdatePersonFn func(ctx context.Context, id uuid.UUID, in service.UpdatePersonInput) result.Result[*domain.Person]
	DeletePersonFn func(ctx context.Context, id uuid.UUID) result.Result[*domain.Person]
	VerifyEmailFn  func(ctx context.Context, id uuid.UUID, email domain.Email) result.Result[*domain.Person]
	VerifyPhoneFn  func(ctx context.Context, id uuid.UUID, phone domain.Phone) result.Result[*domain.Person]
}

var _ service.PersonService = (*MockPersonService)(nil)

func (m *MockPersonService) CreatePerson(ctx context.Context, in service.CreatePersonInput) result.Result[*domain.Person] {
	if m.CreatePersonFn != nil {
		return m.CreatePersonFn(ctx, in)
	}
	return result.Failure[*domain.Person](notConfigured)
}

func (m *MockPersonService) GetPerson(ctx context.Context, id uuid.UUID) result.Result[*domain.Person] {
	if m.GetPersonFn != nil {
		return m.GetPersonFn(ctx, id)
	}
	return result.Failure[*domain.Person](notConfigured)
}

func (m *MockPersonService) ListPeople(ctx context.Context, opts store.ListOptions) result.Result[[]*domain.Person] {
	if m.ListPeopleFn != nil {
		return m.ListPeopleFn(ctx, opts)
	}
	return result.Failure[[]*domain.Person](notConfigured)
}

func (m *MockPersonService) UpdatePerson(
	ctx context.Context,
	id uuid.UUID,
	in service.UpdatePersonInput,
) result.Result[*domain.Person] {
	if m.UpdatePersonFn != nil {
		return m.UpdatePersonFn(ctx, id, in)
	}
	return result.Failure[*domain.Person](notConfigured)
}

func (m *MockPersonService) DeletePerson(ctx context.Context, id uuid.UUID) result.Result[*domain.Person] {
	if m.DeletePersonFn != nil {
		return m.DeletePersonFn(ctx, id)
	}
	return result.Failure[*domain.Person](notConfigured)
}

func (m *MockPersonService) VerifyEmail(ctx context.Context, id uuid.UUID, email domain.Email) result.Result[*domain.Person] {
	if m.VerifyEmailFn != nil {
		return m.VerifyEmailFn(ctx, id, email)
	}
	return result.Failure[*domain.Person](notConfigured)
}

func (m *MockPersonService) VerifyPhone(ctx context.Context, id uuid.UUID, phone domain.Phone) result.Result[*domain.Person] {
	if m.VerifyPhoneFn != nil {
		return m.VerifyPhoneFn(ctx, id, phone)
	}
	return result.Failure[*domain.Person](notConfigured)
}

// MockOrganizationService implements service.OrganizationService.
type MockOrganizationService struct {
	CreateOrganizationFn func(ctx context.Context, in service.CreateOrganizationInput) result.Result[*domain.Organization]
	GetOrganizationFn    func(ctx context.Context, id uuid.UUID) result.Result[*domain.Organization]
	AddMemberFn          func(ctx context.Context, orgID, personID uuid.UUID, role string) result.Result[*domain.Membership]
	ListMembersFn        func(ctx context.Context, orgID uuid.UUID) result.Result[[]*domain.Membership]
}

var _ service.OrganizationService = (*MockOrganizationService)(nil)

func (m *MockOrganizationService) CreateOrganization(
	ctx context.Context,
	in service.CreateOrganizationInput,
) result.Result[*domain.Organization] {
	if m.CreateOrganizationFn != nil {
		return m.CreateOrganizationFn(ctx, in)
	}
	return result.Failure[*domain.Organization](notConfigured)
}

func (m *MockOrganizationService) GetOrganization(ctx context.Context, id uuid.UUID) result.Result[*domain.Organization] {
	if m.GetOrganizationFn != nil {
		return m.GetOrganizationFn(ctx, id)
	}
	return result.Failure[*domain.Organization](notConfigured)
}

func (m *MockOrganizationService) AddMember(
	ctx context.Context,
	orgID, personID uuid.UUID,
	role string,
) result.Result[*domain.Membership] {
	if m.AddMemberFn != nil {
		return m.AddMemberFn(ctx, orgID, personID, role)
	}
	return result.Failure[*domain.Membership](notConfigured)
}

func (m *MockOrganizationService) ListMembers(ctx context.Context, orgID uuid.UUID) result.Result[[]*domain.Membership] {
	if m.ListMembersFn != nil {
		return m.ListMembersFn(ctx, orgID)
	}
	return result.Failure[[]*domain.Membership](notConfigured)
}

// MockJobService implements service.JobService.
type MockJobService struct {
	RecordJobCompletionFn func(ctx context.Context, report service.JobReport) result.Result[events.JobCompleted]
}

var _ service.JobService = (*MockJobService)(nil)

func (m *MockJobService) RecordJobCompletion(
	ctx context.Context,
	report service.JobReport,
) result.Result[events.JobCompleted] {
	if m.RecordJobCompletionFn != nil {
		return m.RecordJobCompletionFn(ctx, report)
	}
	return result.Failure[events.JobCompleted](notConfigured)
}
