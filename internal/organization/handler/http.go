package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"pirate-admin/backend/internal/organization/domain"
	"pirate-admin/backend/internal/organization/repository"
	"pirate-admin/backend/internal/platform/web"
)

// Actions checked against the access policy.
const (
	ActionView       = "organizations.view"
	ActionCreate     = "organizations.create"
	ActionUpdate     = "organizations.update"
	ActionDelete     = "organizations.delete"
	ActionSetDefault = "organizations.set_default"
)

// DefaultSetter points the default organization at an id.
type DefaultSetter interface {
	SetDefaultOrganization(ctx context.Context, id uuid.UUID) error
}

// Handler serves the organizations page and API.
type Handler struct {
	web.Base
	orgs        repository.Repository
	settings    DefaultSetter
	recruitment repository.RecruitmentAreaRepository
}

// NewHandler returns an organizations handler.
func NewHandler(base web.Base, orgs repository.Repository, settings DefaultSetter, recruitment repository.RecruitmentAreaRepository) *Handler {
	return &Handler{Base: base, orgs: orgs, settings: settings, recruitment: recruitment}
}

type organizationRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Active      *bool  `json:"active"`
	// Recruitment area, only read on create.
	Countries      []string `json:"countries"`
	Areas          []string `json:"areas"`
	Municipalities []string `json:"municipalities"`
}

// recruitmentArea parses the region id lists. The first malformed id is returned with ok false.
func (h *Handler) recruitmentArea(r *organizationRequest) (area *domain.RecruitmentArea, bad string, ok bool) {
	area = &domain.RecruitmentArea{}
	for _, group := range []struct {
		kind domain.RegionKind
		ids  []string
	}{
		{domain.RegionCountry, r.Countries},
		{domain.RegionArea, r.Areas},
		{domain.RegionMunicipality, r.Municipalities},
	} {
		for _, raw := range group.ids {
			id, valid := h.CheckUUID(raw)
			if !valid {
				return nil, raw, false
			}
			area.Add(group.kind, id)
		}
	}
	return area, "", true
}

func (r *organizationRequest) toDomain() *domain.Organization {
	active := true
	if r.Active != nil {
		active = *r.Active
	}
	return &domain.Organization{Name: r.Name, Description: r.Description, Active: active}
}

type setDefaultRequest struct {
	ID string `json:"id" binding:"required"`
}

// listQuery reads search, order_column and order_dir_asc. Direction defaults to ascending.
func listQuery(c *gin.Context) (search string, column domain.OrderColumn, ascending bool) {
	search = c.Query("search")
	column = domain.ParseOrderColumn(c.Query("order_column"))
	ascending = true
	if v := c.Query("order_dir_asc"); v != "" {
		if parsed, err := strconv.ParseBool(v); err == nil {
			ascending = parsed
		}
	}
	return search, column, ascending
}

// Page renders the organizations admin page. Non-admins get the 403 page and nothing else.
func (h *Handler) Page(c *gin.Context) {
	if !h.PermissionCheck(c, ActionView) {
		h.Respond(c, "You don't have permission to manage organizations", http.StatusForbidden, nil, true)
		return
	}
	search, column, ascending := listQuery(c)
	orgs, err := h.orgs.List(c.Request.Context(), search, column, ascending)
	if err != nil {
		h.Logger.Error("failed to list organizations", zap.Error(err))
		h.WriteError(c, http.StatusInternalServerError, "Could not load organizations", err)
		return
	}
	h.Render(c, http.StatusOK, "admin/organizations.html", gin.H{
		"title":         "Organizations",
		"admin":         true,
		"organizations": orgs,
		"default":       h.orgs.GetDefault(c.Request.Context()),
		"search":        search,
		"order_column":  string(column),
		"order_dir_asc": ascending,
	})
}

// List returns organizations as JSON, or the single organization named by ?name=.
func (h *Handler) List(c *gin.Context) {
	if !h.PermissionCheck(c, ActionView) {
		h.Respond(c, "You don't have permission to list organizations", http.StatusForbidden, nil, false)
		return
	}
	if name, ok := c.GetQuery("name"); ok {
		org := h.orgs.GetByName(c.Request.Context(), name)
		if org == nil {
			h.Respond(c, "Organization not found", http.StatusNotFound, nil, false)
			return
		}
		h.Respond(c, "Organization found", http.StatusOK, org, false)
		return
	}

	search, column, ascending := listQuery(c)
	orgs, err := h.orgs.List(c.Request.Context(), search, column, ascending)
	if err != nil {
		h.Logger.Error("failed to list organizations", zap.Error(err))
		h.Respond(c, "Could not list organizations", http.StatusInternalServerError, nil, false)
		return
	}
	h.Respond(c, "Organizations listed", http.StatusOK, orgs, false)
}

func (h *Handler) Create(c *gin.Context) {
	if !h.PermissionCheck(c, ActionCreate) {
		h.Respond(c, "You don't have permission to create organizations", http.StatusForbidden, nil, false)
		return
	}
	var req organizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Respond(c, "Invalid organization: "+err.Error(), http.StatusBadRequest, nil, false)
		return
	}
	in := req.toDomain()
	if err := in.Validate(); err != nil {
		h.Respond(c, "Invalid organization: "+err.Error(), http.StatusBadRequest, nil, false)
		return
	}
	area, bad, ok := h.recruitmentArea(&req)
	if !ok {
		h.Respond(c, "Invalid recruitment area id: "+bad, http.StatusBadRequest, nil, false)
		return
	}

	org, err := h.orgs.Create(c.Request.Context(), in.Name, in.Description, in.Active)
	if err != nil {
		h.Logger.Error("failed to create organization", zap.String("name", in.Name), zap.Error(err))
		h.Respond(c, "Could not create organization", http.StatusInternalServerError, nil, false)
		return
	}
	if org == nil {
		h.Respond(c, "An organization with that name already exists", http.StatusConflict, nil, false)
		return
	}
	if !area.Empty() {
		if err := h.recruitment.SetRecruitmentArea(c.Request.Context(), org.ID, area); err != nil {
			h.Logger.Error("failed to save recruitment area", zap.Stringer("id", org.ID), zap.Error(err))
			h.Respond(c, "Organization created but its recruitment area could not be saved", http.StatusInternalServerError, org, false)
			return
		}
	}
	h.Respond(c, "Organization created", http.StatusCreated, org, false)
}

// RecruitmentArea returns the regions the organization recruits from.
func (h *Handler) RecruitmentArea(c *gin.Context) {
	id, ok := h.CheckUUID(c.Param("id"))
	if !ok {
		h.Respond(c, "Invalid organization id", http.StatusBadRequest, nil, false)
		return
	}
	org, err := h.orgs.GetByID(c.Request.Context(), id)
	if err != nil {
		h.Logger.Error("failed to load organization", zap.Stringer("id", id), zap.Error(err))
		h.Respond(c, "Could not load organization", http.StatusInternalServerError, nil, false)
		return
	}
	if org == nil {
		h.Respond(c, "Organization not found", http.StatusNotFound, nil, false)
		return
	}
	area, err := h.recruitment.GetRecruitmentArea(c.Request.Context(), id)
	if err != nil {
		h.Logger.Error("failed to load recruitment area", zap.Stringer("id", id), zap.Error(err))
		h.Respond(c, "Could not load recruitment area", http.StatusInternalServerError, nil, false)
		return
	}
	h.Respond(c, "Recruitment area", http.StatusOK, area, false)
}

func (h *Handler) GetDefault(c *gin.Context) {
	org := h.orgs.GetDefault(c.Request.Context())
	if org == nil {
		h.Respond(c, "No default organization", http.StatusNotFound, nil, false)
		return
	}
	h.Respond(c, "Default organization", http.StatusOK, org, false)
}

func (h *Handler) SetDefault(c *gin.Context) {
	if !h.PermissionCheck(c, ActionSetDefault) {
		h.Respond(c, "You don't have permission to change the default organization", http.StatusForbidden, nil, false)
		return
	}
	var req setDefaultRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Respond(c, "Invalid request: "+err.Error(), http.StatusBadRequest, nil, false)
		return
	}
	id, ok := h.CheckUUID(req.ID)
	if !ok {
		h.Respond(c, "Invalid organization id", http.StatusBadRequest, nil, false)
		return
	}

	org, err := h.orgs.GetByID(c.Request.Context(), id)
	if err != nil {
		h.Logger.Error("failed to load organization", zap.Stringer("id", id), zap.Error(err))
		h.Respond(c, "Could not load organization", http.StatusInternalServerError, nil, false)
		return
	}
	if org == nil {
		h.Respond(c, "Organization not found", http.StatusNotFound, nil, false)
		return
	}
	if err := h.settings.SetDefaultOrganization(c.Request.Context(), id); err != nil {
		h.Logger.Error("failed to set default organization", zap.Stringer("id", id), zap.Error(err))
		h.Respond(c, "Could not set default organization", http.StatusInternalServerError, nil, false)
		return
	}
	h.Respond(c, "Default organization set", http.StatusOK, org, false)
}

func (h *Handler) Get(c *gin.Context) {
	id, ok := h.CheckUUID(c.Param("id"))
	if !ok {
		h.Respond(c, "Invalid organization id", http.StatusBadRequest, nil, false)
		return
	}
	org, err := h.orgs.GetByID(c.Request.Context(), id)
	if err != nil {
		h.Logger.Error("failed to load organization", zap.Stringer("id", id), zap.Error(err))
		h.Respond(c, "Could not load organization", http.StatusInternalServerError, nil, false)
		return
	}
	if org == nil {
		h.Respond(c, "Organization not found", http.StatusNotFound, nil, false)
		return
	}
	h.Respond(c, "Organization found", http.StatusOK, org, false)
}

func (h *Handler) Update(c *gin.Context) {
	if !h.PermissionCheck(c, ActionUpdate) {
		h.Respond(c, "You don't have permission to update organizations", http.StatusForbidden, nil, false)
		return
	}
	id, ok := h.CheckUUID(c.Param("id"))
	if !ok {
		h.Respond(c, "Invalid organization id", http.StatusBadRequest, nil, false)
		return
	}
	var req organizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Respond(c, "Invalid organization: "+err.Error(), http.StatusBadRequest, nil, false)
		return
	}
	in := req.toDomain()
	if err := in.Validate(); err != nil {
		h.Respond(c, "Invalid organization: "+err.Error(), http.StatusBadRequest, nil, false)
		return
	}

	existing, err := h.orgs.GetByID(c.Request.Context(), id)
	if err != nil {
		h.Logger.Error("failed to load organization", zap.Stringer("id", id), zap.Error(err))
		h.Respond(c, "Could not load organization", http.StatusInternalServerError, nil, false)
		return
	}
	if existing == nil {
		h.Respond(c, "Organization not found", http.StatusNotFound, nil, false)
		return
	}

	org, err := h.orgs.Update(c.Request.Context(), id, in.Name, in.Description, in.Active)
	if err != nil {
		h.Logger.Error("failed to update organization", zap.Stringer("id", id), zap.Error(err))
		h.Respond(c, "Could not update organization", http.StatusInternalServerError, nil, false)
		return
	}
	if org == nil {
		h.Respond(c, "An organization with that name already exists", http.StatusConflict, nil, false)
		return
	}
	h.Respond(c, "Organization updated", http.StatusOK, org, false)
}

func (h *Handler) Delete(c *gin.Context) {
	if !h.PermissionCheck(c, ActionDelete) {
		h.Respond(c, "You don't have permission to delete organizations", http.StatusForbidden, nil, false)
		return
	}
	id, ok := h.CheckUUID(c.Param("id"))
	if !ok {
		h.Respond(c, "Invalid organization id", http.StatusBadRequest, nil, false)
		return
	}
	if err := h.orgs.Delete(c.Request.Context(), id); err != nil {
		h.Logger.Error("failed to delete organization", zap.Stringer("id", id), zap.Error(err))
		h.Respond(c, "Could not delete organization", http.StatusInternalServerError, nil, false)
		return
	}
	h.Respond(c, "Organization deleted", http.StatusNoContent, nil, false)
}
