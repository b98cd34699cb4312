package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"pirate-admin/backend/internal/geography/domain"
	"pirate-admin/backend/internal/geography/repository"
	"pirate-admin/backend/internal/platform/web"
)

// ActionView is checked against the access policy before the geography page is rendered.
const ActionView = "geography.view"

// Handler serves the geography page and its lookup API.
type Handler struct {
	web.Base
	geography repository.Repository
}

// NewHandler returns a geography handler.
func NewHandler(base web.Base, geography repository.Repository) *Handler {
	return &Handler{Base: base, geography: geography}
}

// Page renders the countries with the first country's municipalities and its areas, parents
// first. A failed permission check renders the 403 page and stops.
func (h *Handler) Page(c *gin.Context) {
	if !h.PermissionCheck(c, ActionView) {
		h.Respond(c, "You don't have permission to edit the geography", http.StatusForbidden, nil, true)
		return
	}
	ctx := c.Request.Context()

	countries, err := h.geography.GetCountries(ctx)
	if err != nil {
		h.Logger.Error("failed to list countries", zap.Error(err))
		h.WriteError(c, http.StatusInternalServerError, "Could not load the geography", err)
		return
	}

	municipalities := []*domain.Municipality{}
	areas := []*domain.Area{}
	if len(countries) > 0 {
		first := countries[0].ID
		if municipalities, err = h.geography.GetMunicipalitiesByCountry(ctx, first); err != nil {
			h.Logger.Error("failed to list municipalities", zap.Stringer("country_id", first), zap.Error(err))
			h.WriteError(c, http.StatusInternalServerError, "Could not load the geography", err)
			return
		}
		if areas, err = h.geography.GetAreasByCountry(ctx, first); err != nil {
			h.Logger.Error("failed to list areas", zap.Stringer("country_id", first), zap.Error(err))
			h.WriteError(c, http.StatusInternalServerError, "Could not load the geography", err)
			return
		}
		domain.SortByDepth(areas)
	}

	h.Render(c, http.StatusOK, "admin/geography.html", gin.H{
		"title":          "Geography",
		"admin":          true,
		"countries":      countries,
		"municipalities": municipalities,
		"areas":          areas,
	})
}

func (h *Handler) Countries(c *gin.Context) {
	countries, err := h.geography.GetCountries(c.Request.Context())
	if err != nil {
		h.Logger.Error("failed to list countries", zap.Error(err))
		h.Respond(c, "Could not list countries", http.StatusInternalServerError, nil, false)
		return
	}
	h.Respond(c, "Countries listed", http.StatusOK, countries, false)
}

func (h *Handler) Municipalities(c *gin.Context) {
	countryID, ok := h.CheckUUID(c.Param("id"))
	if !ok {
		h.Respond(c, "Invalid country id", http.StatusBadRequest, nil, false)
		return
	}
	municipalities, err := h.geography.GetMunicipalitiesByCountry(c.Request.Context(), countryID)
	if err != nil {
		h.Logger.Error("failed to list municipalities", zap.Stringer("country_id", countryID), zap.Error(err))
		h.Respond(c, "Could not list municipalities", http.StatusInternalServerError, nil, false)
		return
	}
	h.Respond(c, "Municipalities listed", http.StatusOK, municipalities, false)
}

// Areas lists a country's areas, parents first.
func (h *Handler) Areas(c *gin.Context) {
	countryID, ok := h.CheckUUID(c.Param("id"))
	if !ok {
		h.Respond(c, "Invalid country id", http.StatusBadRequest, nil, false)
		return
	}
	areas, err := h.geography.GetAreasByCountry(c.Request.Context(), countryID)
	if err != nil {
		h.Logger.Error("failed to list areas", zap.Stringer("country_id", countryID), zap.Error(err))
		h.Respond(c, "Could not list areas", http.StatusInternalServerError, nil, false)
		return
	}
	domain.SortByDepth(areas)
	h.Respond(c, "Areas listed", http.StatusOK, areas, false)
}
