package maps

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/WP-hayashida/shopapp-backend/internal/config"

	"github.com/gofiber/fiber/v2"
)

func mapsApp(client *Client) *fiber.App {
	app := fiber.New()
	RegisterRoutes(app.Group("/maps"), client)
	return app
}

func TestGeocodeEndpointMissingParam(t *testing.T) {
	app := mapsApp(NewClient(config.Config{MapsAPIKey: "k", MapsBaseURL: "http://localhost:1"}))

	req := httptest.NewRequest(http.MethodGet, "/maps/geocode", nil)
	resp, _ := app.Test(req)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestGeocodeEndpointMissingKey(t *testing.T) {
	app := mapsApp(NewClient(config.Config{MapsBaseURL: "http://localhost:1"}))

	req := httptest.NewRequest(http.MethodGet, "/maps/geocode?address=東京", nil)
	resp, _ := app.Test(req)
	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", resp.StatusCode)
	}
}

func TestGeocodeEndpointNotFound(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"status":"ZERO_RESULTS","results":[]}`))
	})
	app := mapsApp(client)

	req := httptest.NewRequest(http.MethodGet, "/maps/geocode?address=nowhere", nil)
	resp, _ := app.Test(req)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}

func TestGeocodeEndpointUpstreamStatus(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})
	app := mapsApp(client)

	req := httptest.NewRequest(http.MethodGet, "/maps/geocode?address=東京", nil)
	resp, _ := app.Test(req)
	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Fatalf("expected upstream 503, got %d", resp.StatusCode)
	}
}

func TestPlaceDetailsEndpoint(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"status":"OK","result":{"name":"店","price_level":1}}`))
	})
	app := mapsApp(client)

	req := httptest.NewRequest(http.MethodGet, "/maps/placedetails?place_id=pid-1", nil)
	resp, _ := app.Test(req)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	req = httptest.NewRequest(http.MethodGet, "/maps/placedetails", nil)
	resp, _ = app.Test(req)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 without place_id, got %d", resp.StatusCode)
	}
}

func TestAutocompleteEndpoint(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"status":"OK","predictions":[{"description":"渋谷駅","place_id":"p"}]}`))
	})
	app := mapsApp(client)

	req := httptest.NewRequest(http.MethodGet, "/maps/autocomplete?input=渋谷", nil)
	resp, _ := app.Test(req)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
}
