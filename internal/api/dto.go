package api

import (
	"github.com/runnerr0/homehub/internal/catalog"
	"github.com/runnerr0/homehub/internal/favorites"
	"github.com/runnerr0/homehub/internal/filter"
)

// PropertyResponse is a listing as the API returns it.
type PropertyResponse struct {
	catalog.Property
	PriceLabel string `json:"priceLabel"`
	IsFavorite bool   `json:"isFavorite"`
}

// SearchResponse is the body of GET /properties.
type SearchResponse struct {
	Properties    []PropertyResponse `json:"properties"`
	Criteria      filter.Criteria    `json:"criteria"`
	ActiveFilters int                `json:"activeFilters"`
	Count         int                `json:"count"`
}

// FavoritesResponse is the body of GET /favorites.
type FavoritesResponse struct {
	Favorites []favorites.Entry `json:"favorites"`
	Count     int               `json:"count"`
}

// AddFavoriteRequest is the body of POST /favorites.
type AddFavoriteRequest struct {
	PropertyID string `json:"propertyId"`
}
