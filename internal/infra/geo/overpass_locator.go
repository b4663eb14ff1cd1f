// Package geo finds grocery stores near a coordinate by querying the
// OpenStreetMap Overpass API.
package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"plateful/config"
	"plateful/internal/domain/entity"
	"plateful/internal/domain/service"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
	"github.com/pkg/errors"
)

const (
	defaultOverpassEndpoint = "https://overpass-api.de/api/interpreter"
	defaultOverpassTimeout  = 20 * time.Second
	defaultSearchRadius     = 2000.0 // meters
	maxSearchRadius         = 10000.0
	defaultResultLimit      = 20
)

// overpassElement is one node or way centroid in an Overpass JSON response.
type overpassElement struct {
	ID     int64             `json:"id"`
	Lat    float64           `json:"lat"`
	Lon    float64           `json:"lon"`
	Center *struct {
		Lat float64 `json:"lat"`
		Lon float64 `json:"lon"`
	} `json:"center"`
	Tags map[string]string `json:"tags"`
}

type overpassResponse struct {
	Elements []overpassElement `json:"elements"`
}

// overpassLocator implements service.StoreLocator against an Overpass
// endpoint.
type overpassLocator struct {
	endpoint   string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewOverpassLocator is the constructor for overpassLocator.
func NewOverpassLocator(cfg *config.Config, logger *slog.Logger) service.StoreLocator {
	endpoint := defaultOverpassEndpoint
	timeout := defaultOverpassTimeout
	if cfg.Overpass != nil {
		if cfg.Overpass.Endpoint != "" {
			endpoint = cfg.Overpass.Endpoint
		}
		if cfg.Overpass.Timeout > 0 {
			timeout = cfg.Overpass.Timeout
		}
	}

	return &overpassLocator{
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// Nearby returns grocery stores within radiusMeters of the coordinate,
// sorted by distance.
func (l *overpassLocator) Nearby(ctx context.Context, lat, lon, radiusMeters float64, limit int) ([]*entity.GroceryStore, error) {
	if radiusMeters <= 0 {
		radiusMeters = defaultSearchRadius
	}
	if radiusMeters > maxSearchRadius {
		radiusMeters = maxSearchRadius
	}
	if limit <= 0 {
		limit = defaultResultLimit
	}

	resp, err := l.query(ctx, lat, lon, radiusMeters)
	if err != nil {
		return nil, err
	}

	origin := orb.Point{lon, lat}
	stores := make([]*entity.GroceryStore, 0, len(resp.Elements))
	for _, el := range resp.Elements {
		elLat, elLon := el.Lat, el.Lon
		if el.Center != nil {
			// Ways carry their centroid under "center".
			elLat, elLon = el.Center.Lat, el.Center.Lon
		}
		if elLat == 0 && elLon == 0 {
			continue
		}

		name := el.Tags["name"]
		if name == "" {
			continue
		}

		kind := el.Tags["shop"]
		if kind == "" {
			kind = el.Tags["amenity"]
		}

		stores = append(stores, &entity.GroceryStore{
			OSMID:     el.ID,
			Name:      name,
			Kind:      kind,
			Latitude:  elLat,
			Longitude: elLon,
			DistanceM: geo.DistanceHaversine(origin, orb.Point{elLon, elLat}),
		})
	}

	sort.Slice(stores, func(i, j int) bool {
		return stores[i].DistanceM < stores[j].DistanceM
	})
	if len(stores) > limit {
		stores = stores[:limit]
	}

	l.logger.Debug("nearby store lookup completed",
		slog.Float64("lat", lat),
		slog.Float64("lon", lon),
		slog.Int("results", len(stores)))

	return stores, nil
}

// query POSTs an Overpass QL query for supermarkets, greengrocers and
// convenience stores around the coordinate.
func (l *overpassLocator) query(ctx context.Context, lat, lon, radiusMeters float64) (*overpassResponse, error) {
	ql := fmt.Sprintf(`[out:json][timeout:15];
(
  node["shop"~"supermarket|greengrocer|convenience|butcher|bakery"](around:%.0f,%f,%f);
  way["shop"~"supermarket|greengrocer|convenience|butcher|bakery"](around:%.0f,%f,%f);
  node["amenity"="marketplace"](around:%.0f,%f,%f);
);
out center;`, radiusMeters, lat, lon, radiusMeters, lat, lon, radiusMeters, lat, lon)

	form := url.Values{"data": {ql}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, l.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, errors.Wrap(err, "failed to create Overpass request")
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := l.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "Overpass request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("Overpass returned status %d", resp.StatusCode)
	}

	var parsed overpassResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, errors.Wrap(err, "failed to decode Overpass response")
	}

	return &parsed, nil
}
