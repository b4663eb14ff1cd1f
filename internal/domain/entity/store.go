// Package entity contains the core business objects of the project.
package entity

// GroceryStore is a nearby shop resolved from OpenStreetMap data.
// It is a read-only projection of an external dataset and is never persisted.
type GroceryStore struct {
	OSMID     int64   `json:"osmId"`
	Name      string  `json:"name"`
	Kind      string  `json:"kind"` // OSM shop tag value, e.g. "supermarket", "greengrocer"
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	DistanceM float64 `json:"distanceMeters"` // distance from the query point
}
