package shop

import (
	"context"
	"errors"

	"github.com/WP-hayashida/shopapp-backend/internal/logging"
	"github.com/WP-hayashida/shopapp-backend/internal/maps"
	"github.com/WP-hayashida/shopapp-backend/internal/place"
	"github.com/WP-hayashida/shopapp-backend/internal/station"

	"github.com/sirupsen/logrus"
)

type Geocoder interface {
	Geocode(ctx context.Context, address string) (maps.GeocodeResult, error)
}

type DetailSource interface {
	GetDetails(ctx context.Context, placeID string) (place.Detail, error)
}

type StationResolver interface {
	Nearest(ctx context.Context, lat, lng float64) (station.Station, error)
}

// Orchestrator composes geocoding, place detail lookup and station
// resolution into one best-effort pipeline. Each step runs off the
// previous step's output and fails independently: a failed step logs,
// leaves its field group nil, and the pipeline continues.
type Orchestrator struct {
	geocoder Geocoder
	details  DetailSource
	stations StationResolver
}

func NewOrchestrator(geocoder Geocoder, details DetailSource, stations StationResolver) *Orchestrator {
	return &Orchestrator{geocoder: geocoder, details: details, stations: stations}
}

// Enrich never returns an error: the result carries whatever subset of
// fields resolved plus a per-step status.
func (o *Orchestrator) Enrich(ctx context.Context, sub Submission) Enriched {
	out := Enriched{
		Shop: Shop{
			Name:           sub.Name,
			Location:       sub.Location,
			Categories:     sub.Categories,
			CategoryDetail: sub.CategoryDetail,
			Comments:       sub.Comments,
			Lat:            sub.Lat,
			Lng:            sub.Lng,
			UserID:         sub.UserID,
		},
	}
	if sub.PlaceID != "" {
		out.Shop.PlaceID = &sub.PlaceID
	}
	if sub.PhotoURL != "" {
		out.Shop.PhotoURL = &sub.PhotoURL
	}

	out.Status.Geocode = o.geocodeStep(ctx, sub, &out.Shop)
	out.Status.Detail = o.detailStep(ctx, &out.Shop)
	out.Status.Station = o.stationStep(ctx, &out.Shop)
	return out
}

// geocodeStep resolves coordinates from address text. Skipped when a
// place id was chosen upstream (autocomplete) or coordinates are already
// present.
func (o *Orchestrator) geocodeStep(ctx context.Context, sub Submission, s *Shop) StepStatus {
	if sub.PlaceID != "" || (sub.Lat != nil && sub.Lng != nil) || sub.Location == "" {
		return StepSkipped
	}

	result, err := o.geocoder.Geocode(ctx, sub.Location)
	if errors.Is(err, maps.ErrNotFound) {
		logging.L().WithFields(logrus.Fields{"component": "enrich", "step": "geocode", "address": sub.Location}).
			Info("no geocode match")
		return StepAbsent
	}
	if err != nil {
		logging.L().WithFields(logrus.Fields{"component": "enrich", "step": "geocode", "address": sub.Location}).
			WithError(err).Warn("geocode failed")
		return StepFailed
	}

	s.Lat, s.Lng = &result.Lat, &result.Lng
	s.FormattedAddress = &result.FormattedAddress
	if result.PlaceID != "" {
		s.PlaceID = &result.PlaceID
	}
	return StepResolved
}

// detailStep fills place metadata from the cache once a place id is
// available, from either the submission or geocoding.
func (o *Orchestrator) detailStep(ctx context.Context, s *Shop) StepStatus {
	if s.PlaceID == nil {
		return StepSkipped
	}

	detail, err := o.details.GetDetails(ctx, *s.PlaceID)
	if errors.Is(err, maps.ErrNotFound) {
		logging.L().WithFields(logrus.Fields{"component": "enrich", "step": "detail", "place_id": *s.PlaceID}).
			Info("place not found")
		return StepAbsent
	}
	if err != nil {
		logging.L().WithFields(logrus.Fields{"component": "enrich", "step": "detail", "place_id": *s.PlaceID}).
			WithError(err).Warn("place detail failed")
		return StepFailed
	}

	s.PriceRange = detail.PriceRange
	s.BusinessHours = detail.Hours
	if detail.Rating != 0 {
		rating := detail.Rating
		s.APIRating = &rating
	}
	if detail.PhoneNumber != "" {
		phone := detail.PhoneNumber
		s.PhoneNumber = &phone
	}
	// A user-supplied photo wins over the provider photo.
	if s.PhotoURL == nil && detail.PhotoURL != "" {
		photo := detail.PhotoURL
		s.PhotoURL = &photo
	}
	if s.FormattedAddress == nil && detail.Address != "" {
		addr := detail.Address
		s.FormattedAddress = &addr
	}
	if s.Lat == nil && detail.Lat != 0 {
		lat, lng := detail.Lat, detail.Lng
		s.Lat, s.Lng = &lat, &lng
	}
	updated := detail.LastUpdated
	s.APILastUpdated = &updated
	return StepResolved
}

// stationStep runs whenever coordinates resolved through either path.
func (o *Orchestrator) stationStep(ctx context.Context, s *Shop) StepStatus {
	if s.Lat == nil || s.Lng == nil {
		return StepSkipped
	}

	st, err := o.stations.Nearest(ctx, *s.Lat, *s.Lng)
	if errors.Is(err, maps.ErrNotFound) {
		logging.L().WithFields(logrus.Fields{"component": "enrich", "step": "station"}).
			Info("no station nearby")
		return StepAbsent
	}
	if err != nil {
		logging.L().WithFields(logrus.Fields{"component": "enrich", "step": "station"}).
			WithError(err).Warn("station resolution failed")
		return StepFailed
	}

	s.NearestStation = &st.Name
	minutes := st.WalkMinutes
	s.WalkMinutes = &minutes
	return StepResolved
}
