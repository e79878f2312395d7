package maps

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/WP-hayashida/shopapp-backend/internal/config"
	"github.com/WP-hayashida/shopapp-backend/internal/metrics"
)

// ErrNotFound means the provider answered but had no match. Callers treat
// it as an absent value, not a failure.
var ErrNotFound = errors.New("maps: not found")

// ErrMissingKey means the server has no API credential configured.
var ErrMissingKey = errors.New("maps: api key not configured")

// APIError is a provider-side failure: a non-2xx transport status or an
// error payload on a 200 response.
type APIError struct {
	HTTPStatus int
	Status     string
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("maps: %s: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("maps: %s", e.Status)
}

// Client calls the maps provider web services with a shared API key.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

func NewClient(cfg config.Config) *Client {
	return &Client{
		apiKey:     cfg.MapsAPIKey,
		baseURL:    cfg.MapsBaseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *Client) Autocomplete(ctx context.Context, input string) ([]Prediction, error) {
	var out autocompleteResponse
	err := metrics.RecordMapsCall("autocomplete", func() error {
		return c.getJSON(ctx, "/maps/api/place/autocomplete/json", url.Values{"input": {input}}, &out)
	})
	if err != nil {
		return nil, err
	}
	if err := statusErr(out.Status, out.ErrorMessage); err != nil {
		return nil, err
	}

	predictions := make([]Prediction, 0, len(out.Predictions))
	for _, p := range out.Predictions {
		predictions = append(predictions, Prediction{Description: p.Description, PlaceID: p.PlaceID})
	}
	return predictions, nil
}

// Geocode resolves free-text address into coordinates. A provider
// zero-result answer is ErrNotFound; the caller proceeds without
// coordinates. One request, no retries.
func (c *Client) Geocode(ctx context.Context, address string) (GeocodeResult, error) {
	var out geocodeResponse
	err := metrics.RecordMapsCall("geocode", func() error {
		return c.getJSON(ctx, "/maps/api/geocode/json", url.Values{"address": {address}}, &out)
	})
	if err != nil {
		return GeocodeResult{}, err
	}
	if err := statusErr(out.Status, out.ErrorMessage); err != nil {
		return GeocodeResult{}, err
	}
	if len(out.Results) == 0 {
		return GeocodeResult{}, ErrNotFound
	}

	first := out.Results[0]
	return GeocodeResult{
		Lat:              first.Geometry.Location.Lat,
		Lng:              first.Geometry.Location.Lng,
		FormattedAddress: first.FormattedAddress,
		PlaceID:          first.PlaceID,
	}, nil
}

// PlaceDetails fetches place metadata and maps it into the internal shape:
// weekday text becomes structured day/hours pairs, the price level becomes
// a display symbol, and the first photo reference becomes a fetchable URL.
func (c *Client) PlaceDetails(ctx context.Context, placeID string) (PlaceDetail, error) {
	var out detailsResponse
	err := metrics.RecordMapsCall("placedetails", func() error {
		return c.getJSON(ctx, "/maps/api/place/details/json", url.Values{"place_id": {placeID}}, &out)
	})
	if err != nil {
		return PlaceDetail{}, err
	}
	if err := statusErr(out.Status, out.ErrorMessage); err != nil {
		return PlaceDetail{}, err
	}

	r := out.Result
	detail := PlaceDetail{
		PlaceID:     placeID,
		Name:        r.Name,
		Address:     r.FormattedAddress,
		Lat:         r.Geometry.Location.Lat,
		Lng:         r.Geometry.Location.Lng,
		Rating:      r.Rating,
		PriceRange:  priceSymbol(r.PriceLevelName, r.PriceLevel),
		Hours:       ParseWeekdayText(r.OpeningHours.WeekdayText),
		PhoneNumber: r.PhoneNumber,
		Types:       r.Types,
	}
	if len(r.Photos) > 0 {
		detail.PhotoURL = c.photoURL(r.Photos[0].PhotoReference)
	}
	return detail, nil
}

// Nearby lists up to limit places of placeType within radius meters. The
// provider does not promise distance ordering; callers pick their own.
func (c *Client) Nearby(ctx context.Context, lat, lng float64, radiusM, limit int, placeType string) ([]Place, error) {
	params := url.Values{
		"location": {fmt.Sprintf("%f,%f", lat, lng)},
		"radius":   {fmt.Sprintf("%d", radiusM)},
		"type":     {placeType},
	}
	var out nearbyResponse
	err := metrics.RecordMapsCall("nearbysearch", func() error {
		return c.getJSON(ctx, "/maps/api/place/nearbysearch/json", params, &out)
	})
	if err != nil {
		return nil, err
	}
	if err := statusErr(out.Status, out.ErrorMessage); err != nil {
		return nil, err
	}
	if len(out.Results) == 0 {
		return nil, ErrNotFound
	}

	places := make([]Place, 0, limit)
	for _, r := range out.Results {
		if len(places) == limit {
			break
		}
		places = append(places, Place{
			Name:    r.Name,
			PlaceID: r.PlaceID,
			Lat:     r.Geometry.Location.Lat,
			Lng:     r.Geometry.Location.Lng,
			Types:   r.Types,
		})
	}
	return places, nil
}

// WalkSeconds returns the walking duration in seconds of the first leg of
// the first route between two points.
func (c *Client) WalkSeconds(ctx context.Context, fromLat, fromLng, toLat, toLng float64) (int, error) {
	params := url.Values{
		"origin":      {fmt.Sprintf("%f,%f", fromLat, fromLng)},
		"destination": {fmt.Sprintf("%f,%f", toLat, toLng)},
		"mode":        {"walking"},
	}
	var out directionsResponse
	err := metrics.RecordMapsCall("directions", func() error {
		return c.getJSON(ctx, "/maps/api/directions/json", params, &out)
	})
	if err != nil {
		return 0, err
	}
	if err := statusErr(out.Status, out.ErrorMessage); err != nil {
		return 0, err
	}
	if len(out.Routes) == 0 || len(out.Routes[0].Legs) == 0 {
		return 0, ErrNotFound
	}
	return out.Routes[0].Legs[0].Duration.Value, nil
}

func (c *Client) getJSON(ctx context.Context, path string, params url.Values, dst any) error {
	if c.apiKey == "" {
		return ErrMissingKey
	}
	params.Set("key", c.apiKey)
	params.Set("language", "ja")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("maps: call %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &APIError{HTTPStatus: resp.StatusCode, Status: resp.Status}
	}
	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("maps: parse %s: %w", path, err)
	}
	return nil
}

func (c *Client) photoURL(ref string) string {
	if ref == "" {
		return ""
	}
	params := url.Values{
		"maxwidth":        {"400"},
		"photo_reference": {ref},
		"key":             {c.apiKey},
	}
	return c.baseURL + "/maps/api/place/photo?" + params.Encode()
}

// statusErr inspects the payload-level status. The provider reports
// errors in the body of a 200 response, so a transport success alone is
// not a successful call.
func statusErr(status, message string) error {
	switch status {
	case "OK":
		return nil
	case "ZERO_RESULTS", "NOT_FOUND":
		return ErrNotFound
	default:
		return &APIError{HTTPStatus: http.StatusBadGateway, Status: status, Message: message}
	}
}
