package api

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/phrazzld/roster-api/internal/domain"
	"github.com/phrazzld/roster-api/internal/service"
)

// OrganizationHandler serves /api/organizations.
type OrganizationHandler struct {
	orgs   service.OrganizationService
	logger *slog.Logger
}

// NewOrganizationHandler creates an OrganizationHandler.
func NewOrganizationHandler(orgs service.OrganizationService, logger *slog.Logger) *OrganizationHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for OrganizationHandler")
	}
	return &OrganizationHandler{
		orgs:   orgs,
		logger: logger.With(slog.String("component", "organization_handler")),
	}
}

// CreateOrganization handles POST /api/organizations.
func (h *OrganizationHandler) CreateOrganization(w http.ResponseWriter, r *http.Request) {
	var req CreateOrganizationRequest
	if !decodeRequest(w, r, &req) {
		return
	}
	res := h.orgs.CreateOrganization(r.Context(), service.CreateOrganizationInput{
		Name:       req.Name,
		Country:    req.Country,
		PostalCode: req.PostalCode,
	})
	respond(w, r, res, http.StatusCreated, identity[*domain.Organization])
}

// GetOrganization handles GET /api/organizations/{id}.
func (h *OrganizationHandler) GetOrganization(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	respond(w, r, h.orgs.GetOrganization(r.Context(), id), http.StatusOK, identity[*domain.Organization])
}

// AddMember handles POST /api/organizations/{id}/members.
func (h *OrganizationHandler) AddMember(w http.ResponseWriter, r *http.Request) {
	orgID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	var req AddMemberRequest
	if !decodeRequest(w, r, &req) {
		return
	}
	// person_id was checked by the uuid validation tag.
	personID := uuid.MustParse(req.PersonID)

	respond(w, r, h.orgs.AddMember(r.Context(), orgID, personID, req.Role), http.StatusCreated, identity[*domain.Membership])
}

// ListMembers handles GET /api/organizations/{id}/members.
func (h *OrganizationHandler) ListMembers(w http.ResponseWriter, r *http.Request) {
	orgID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	respond(w, r, h.orgs.ListMembers(r.Context(), orgID), http.StatusOK, func(ms []*domain.Membership) any {
		return ListResponse[*domain.Membership]{Items: ms}
	})
}
