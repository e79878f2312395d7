package station

import (
	"context"

	"github.com/WP-hayashida/shopapp-backend/internal/logging"
	"github.com/WP-hayashida/shopapp-backend/internal/maps"
	"github.com/WP-hayashida/shopapp-backend/internal/shared/geo"

	"github.com/sirupsen/logrus"
)

const (
	searchRadiusM = 2000
	maxCandidates = 5
	stationType   = "train_station"
)

// Client is the subset of the maps provider the resolver needs.
type Client interface {
	Nearby(ctx context.Context, lat, lng float64, radiusM, limit int, placeType string) ([]maps.Place, error)
	WalkSeconds(ctx context.Context, fromLat, fromLng, toLat, toLng float64) (int, error)
}

// Station is the nearest transit stop and the walking time to it.
type Station struct {
	Name        string `json:"name"`
	WalkMinutes int    `json:"walk_minutes"`
}

type Resolver struct {
	client Client
}

func NewResolver(client Client) *Resolver {
	return &Resolver{client: client}
}

// Nearest finds the closest station to (lat, lng) and the walking time
// from it. The provider does not sort candidates by distance, so the pick
// compares squared lat/lng degree distance; at a 2km radius this is a
// deliberate approximation of geodesic distance. Walking seconds round up
// to whole minutes. No candidates, no route, or a provider error all
// surface as maps.ErrNotFound or the provider error unchanged.
func (r *Resolver) Nearest(ctx context.Context, lat, lng float64) (Station, error) {
	candidates, err := r.client.Nearby(ctx, lat, lng, searchRadiusM, maxCandidates, stationType)
	if err != nil {
		return Station{}, err
	}

	best := candidates[0]
	bestDist := geo.SquaredDegrees(lat, lng, best.Lat, best.Lng)
	for _, candidate := range candidates[1:] {
		if d := geo.SquaredDegrees(lat, lng, candidate.Lat, candidate.Lng); d < bestDist {
			best, bestDist = candidate, d
		}
	}

	seconds, err := r.client.WalkSeconds(ctx, best.Lat, best.Lng, lat, lng)
	if err != nil {
		return Station{}, err
	}

	logging.L().WithFields(logrus.Fields{
		"component":  "station_resolver",
		"station":    best.Name,
		"distance_m": geo.HaversineKm(lat, lng, best.Lat, best.Lng) * 1000,
		"walk_sec":   seconds,
	}).Info("resolved nearest station")

	return Station{Name: best.Name, WalkMinutes: ceilMinutes(seconds)}, nil
}

// ceilMinutes never floors: a 61-second walk is 2 minutes.
func ceilMinutes(seconds int) int {
	return (seconds + 59) / 60
}
