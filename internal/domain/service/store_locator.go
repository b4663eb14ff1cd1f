package service

import (
	"context"

	"plateful/internal/domain/entity"
)

// StoreLocator finds grocery shops near a coordinate using OpenStreetMap
// data. Results are sorted by distance, nearest first.
type StoreLocator interface {
	// Nearby returns shops within radiusMeters of (lat, lon), at most limit.
	Nearby(ctx context.Context, lat, lon, radiusMeters float64, limit int) ([]*entity.GroceryStore, error)
}
