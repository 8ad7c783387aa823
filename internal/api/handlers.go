package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/runnerr0/homehub/internal/catalog"
	"github.com/runnerr0/homehub/internal/config"
	"github.com/runnerr0/homehub/internal/favorites"
	"github.com/runnerr0/homehub/internal/filter"
	"github.com/runnerr0/homehub/internal/logger"
	"github.com/runnerr0/homehub/internal/money"
	"github.com/runnerr0/homehub/internal/mortgage"
)

// Handler serves the property, favorites and mortgage routes.
type Handler struct {
	catalog   *catalog.Catalog
	favorites *favorites.Store
	mortgage  config.MortgageConfig
}

// NewHandler wires the API to its collaborators.
func NewHandler(cat *catalog.Catalog, favs *favorites.Store, mcfg config.MortgageConfig) *Handler {
	return &Handler{catalog: cat, favorites: favs, mortgage: mcfg}
}

func toResponse(p catalog.Property, fav bool) PropertyResponse {
	return PropertyResponse{Property: p, PriceLabel: money.USD(p.Price), IsFavorite: fav}
}

func criteriaFromQuery(r *http.Request) filter.Criteria {
	q := r.URL.Query()
	c := filter.Criteria{
		PriceMin:      q.Get("priceMin"),
		PriceMax:      q.Get("priceMax"),
		BedroomsMin:   q.Get("bedroomsMin"),
		BathroomsMin:  q.Get("bathroomsMin"),
		SquareFeetMin: q.Get("squareFeetMin"),
		Location:      q.Get("location"),
	}
	for _, v := range q["propertyType"] {
		for _, t := range strings.Split(v, ",") {
			if t = strings.TrimSpace(t); t != "" {
				c.PropertyTypes = append(c.PropertyTypes, t)
			}
		}
	}
	return c
}

// SearchProperties handles GET /api/v1/properties.
func (h *Handler) SearchProperties(w http.ResponseWriter, r *http.Request) {
	log := LoggerFromContext(r.Context()).WithFields(logger.Fields{"handler": "SearchProperties"})

	criteria := criteriaFromQuery(r)
	all, err := h.catalog.All(r.Context())
	if err != nil {
		log.Error("Failed to list properties", err, nil)
		WriteJSONError(w, r, http.StatusInternalServerError, "Failed to list properties")
		return
	}

	matches := filter.Apply(all, criteria.Spec())
	saved := h.favorites.IDSet(r.Context())

	resp := SearchResponse{
		Properties:    make([]PropertyResponse, 0, len(matches)),
		Criteria:      criteria,
		ActiveFilters: criteria.ActiveCount(),
		Count:         len(matches),
	}
	for _, p := range matches {
		_, fav := saved[p.ID]
		resp.Properties = append(resp.Properties, toResponse(p, fav))
	}

	log.Info("Search completed", logger.Fields{"count": resp.Count, "active_filters": resp.ActiveFilters})
	RespondWithJSON(w, http.StatusOK, resp)
}

// GetProperty handles GET /api/v1/properties/{id}.
func (h *Handler) GetProperty(w http.ResponseWriter, r *http.Request) {
	log := LoggerFromContext(r.Context()).WithFields(logger.Fields{"handler": "GetProperty"})
	id := chi.URLParam(r, "id")

	p, err := h.catalog.GetByID(r.Context(), id)
	if errors.Is(err, catalog.ErrPropertyNotFound) {
		WriteJSONError(w, r, http.StatusNotFound, "Property not found")
		return
	}
	if err != nil {
		log.Error("Failed to get property", err, logger.Fields{"property_id": id})
		WriteJSONError(w, r, http.StatusInternalServerError, "Failed to get property")
		return
	}

	RespondWithJSON(w, http.StatusOK, toResponse(p, h.favorites.IsFavorite(r.Context(), p.ID)))
}

// GetFavorites handles GET /api/v1/favorites.
func (h *Handler) GetFavorites(w http.ResponseWriter, r *http.Request) {
	log := LoggerFromContext(r.Context()).WithFields(logger.Fields{"handler": "GetFavorites"})

	entries, err := h.favorites.Resolve(r.Context(), h.catalog)
	if err != nil {
		log.Error("Failed to resolve favorites", err, nil)
		WriteJSONError(w, r, http.StatusInternalServerError, "Failed to retrieve favorites")
		return
	}

	RespondWithJSON(w, http.StatusOK, FavoritesResponse{Favorites: entries, Count: len(entries)})
}

// AddFavorite handles POST /api/v1/favorites.
func (h *Handler) AddFavorite(w http.ResponseWriter, r *http.Request) {
	log := LoggerFromContext(r.Context()).WithFields(logger.Fields{"handler": "AddFavorite"})

	var req AddFavoriteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteJSONError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}
	req.PropertyID = strings.TrimSpace(req.PropertyID)
	if req.PropertyID == "" {
		WriteJSONError(w, r, http.StatusBadRequest, "propertyId is required")
		return
	}
	if _, err := h.catalog.GetByID(r.Context(), req.PropertyID); err != nil {
		if errors.Is(err, catalog.ErrPropertyNotFound) {
			WriteJSONError(w, r, http.StatusNotFound, "Property not found")
			return
		}
		log.Error("Failed to look up property", err, logger.Fields{"property_id": req.PropertyID})
		WriteJSONError(w, r, http.StatusInternalServerError, "Failed to add to favorites")
		return
	}

	fav, err := h.favorites.Add(r.Context(), req.PropertyID)
	switch {
	case errors.Is(err, favorites.ErrDuplicateFavorite):
		WriteJSONError(w, r, http.StatusConflict, "Property already in favorites")
		return
	case err != nil:
		log.Error("Add favorite failed", err, logger.Fields{"property_id": req.PropertyID})
		WriteJSONError(w, r, http.StatusInternalServerError, "Failed to add to favorites")
		return
	}

	log.Info("Added property to favorites", logger.Fields{"property_id": req.PropertyID})
	RespondWithJSON(w, http.StatusCreated, fav)
}

// RemoveFavorite handles DELETE /api/v1/favorites/{id}.
func (h *Handler) RemoveFavorite(w http.ResponseWriter, r *http.Request) {
	log := LoggerFromContext(r.Context()).WithFields(logger.Fields{"handler": "RemoveFavorite"})
	id := chi.URLParam(r, "id")

	_, err := h.favorites.Remove(r.Context(), id)
	switch {
	case errors.Is(err, favorites.ErrFavoriteNotFound):
		WriteJSONError(w, r, http.StatusNotFound, "Property not in favorites")
		return
	case err != nil:
		log.Error("Remove favorite failed", err, logger.Fields{"property_id": id})
		WriteJSONError(w, r, http.StatusInternalServerError, "Failed to remove from favorites")
		return
	}

	log.Info("Removed property from favorites", logger.Fields{"property_id": id})
	w.WriteHeader(http.StatusNoContent)
}

// ClearFavorites handles DELETE /api/v1/favorites.
func (h *Handler) ClearFavorites(w http.ResponseWriter, r *http.Request) {
	log := LoggerFromContext(r.Context()).WithFields(logger.Fields{"handler": "ClearFavorites"})

	if err := h.favorites.Clear(r.Context()); err != nil {
		log.Error("Clear favorites failed", err, nil)
		WriteJSONError(w, r, http.StatusInternalServerError, "Failed to clear favorites")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// CalculateMortgage handles POST /api/v1/mortgage. A missing loan term falls
// back to the configured default.
func (h *Handler) CalculateMortgage(w http.ResponseWriter, r *http.Request) {
	var in mortgage.Input
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		WriteJSONError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}
	if in.LoanTermYears <= 0 {
		in.LoanTermYears = h.mortgage.LoanTermYears
	}

	res, err := mortgage.Calculate(in)
	if errors.Is(err, mortgage.ErrMissingInput) {
		WriteJSONError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		LoggerFromContext(r.Context()).Error("Mortgage calculation failed", err, nil)
		WriteJSONError(w, r, http.StatusInternalServerError, "Failed to calculate mortgage")
		return
	}
	RespondWithJSON(w, http.StatusOK, res)
}
