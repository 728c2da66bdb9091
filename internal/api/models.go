package api

import (
	"time"

	"github.com/phrazzld/roster-api/internal/service"
)

// AddressRequest is a postal address in a person payload.
type AddressRequest struct {
	Street     string `json:"street"`
	City       string `json:"city"        validate:"required"`
	PostalCode string `json:"postal_code" validate:"required"`
	Country    string `json:"country"     validate:"required"`
}

func (a *AddressRequest) toInput() *service.AddressInput {
	if a == nil {
		return nil
	}
	return &service.AddressInput{
		Street:     a.Street,
		City:       a.City,
		PostalCode: a.PostalCode,
		Country:    a.Country,
	}
}

// CreatePersonRequest is the payload of POST /api/people.
type CreatePersonRequest struct {
	Name    string          `json:"name"    validate:"required"`
	Email   string          `json:"email"   validate:"required"`
	Phone   *string         `json:"phone"`
	Address *AddressRequest `json:"address" validate:"omitempty"`
}

func (r CreatePersonRequest) toInput() service.CreatePersonInput {
	return service.CreatePersonInput{
		Name:    r.Name,
		Email:   r.Email,
		Phone:   r.Phone,
		Address: r.Address.toInput(),
	}
}

// UpdatePersonRequest is the payload of PATCH /api/people/{id}. Omitted
// fields are left unchanged; an empty phone removes it.
type UpdatePersonRequest struct {
	Name    *string         `json:"name"`
	Email   *string         `json:"email"`
	Phone   *string         `json:"phone"`
	Address *AddressRequest `json:"address" validate:"omitempty"`
}

func (r UpdatePersonRequest) toInput() service.UpdatePersonInput {
	return service.UpdatePersonInput{
		Name:    r.Name,
		Email:   r.Email,
		Phone:   r.Phone,
		Address: r.Address.toInput(),
	}
}

// VerifyEmailRequest is the payload of POST /api/people/{id}/verify-email.
type VerifyEmailRequest struct {
	Email string `json:"email" validate:"required"`
}

// VerifyPhoneRequest is the payload of POST /api/people/{id}/verify-phone.
type VerifyPhoneRequest struct {
	Phone string `json:"phone" validate:"required"`
}

// CreateOrganizationRequest is the payload of POST /api/organizations.
type CreateOrganizationRequest struct {
	Name       string  `json:"name"    validate:"required"`
	Country    string  `json:"country" validate:"required"`
	PostalCode *string `json:"postal_code"`
}

// AddMemberRequest is the payload of POST /api/organizations/{id}/members.
type AddMemberRequest struct {
	PersonID string `json:"person_id" validate:"required,uuid"`
	Role     string `json:"role"`
}

// JobCompletionRequest is the payload of POST /api/jobs/completions.
type JobCompletionRequest struct {
	JobName    string `json:"job_name"    validate:"required"`
	Processed  int    `json:"processed"   validate:"gte=0"`
	Failed     int    `json:"failed"      validate:"gte=0"`
	Success    bool   `json:"success"`
	Message    string `json:"message"`
	DurationMS int64  `json:"duration_ms" validate:"gte=0"`
}

func (r JobCompletionRequest) toReport() service.JobReport {
	return service.JobReport{
		Name:      r.JobName,
		Processed: r.Processed,
		Failed:    r.Failed,
		Success:   r.Success,
		Message:   r.Message,
		Duration:  time.Duration(r.DurationMS) * time.Millisecond,
	}
}

// ListResponse wraps a page of items.
type ListResponse[T any] struct {
	Items  []T `json:"items"`
	Limit  int `json:"limit,omitempty"`
	Offset int `json:"offset,omitempty"`
}
