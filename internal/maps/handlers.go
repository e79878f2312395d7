package maps

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

// RegisterRoutes mounts the single-purpose provider endpoints. Unlike
// search and enrichment these propagate upstream failure to the caller:
// missing parameter is 400, a missing server credential is 500, and a
// provider failure maps to the upstream status (or 502).
func RegisterRoutes(r fiber.Router, client *Client) {
	r.Get("/autocomplete", func(c *fiber.Ctx) error {
		input := c.Query("input")
		if input == "" {
			return fiber.NewError(fiber.StatusBadRequest, "input required")
		}
		predictions, err := client.Autocomplete(c.Context(), input)
		if err != nil {
			return toHTTPError(err)
		}
		return c.JSON(fiber.Map{"predictions": predictions})
	})

	r.Get("/geocode", func(c *fiber.Ctx) error {
		address := c.Query("address")
		if address == "" {
			return fiber.NewError(fiber.StatusBadRequest, "address required")
		}
		result, err := client.Geocode(c.Context(), address)
		if err != nil {
			return toHTTPError(err)
		}
		return c.JSON(result)
	})

	r.Get("/placedetails", func(c *fiber.Ctx) error {
		placeID := c.Query("place_id")
		if placeID == "" {
			return fiber.NewError(fiber.StatusBadRequest, "place_id required")
		}
		detail, err := client.PlaceDetails(c.Context(), placeID)
		if err != nil {
			return toHTTPError(err)
		}
		return c.JSON(detail)
	})
}

// ToHTTPError maps provider client errors onto the shared endpoint
// contract. Also used by the walk-time endpoint.
func ToHTTPError(err error) *fiber.Error {
	return toHTTPError(err)
}

func toHTTPError(err error) *fiber.Error {
	if errors.Is(err, ErrNotFound) {
		return fiber.NewError(fiber.StatusNotFound, "not found")
	}
	if errors.Is(err, ErrMissingKey) {
		return fiber.NewError(fiber.StatusInternalServerError, "maps api key not configured")
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		status := apiErr.HTTPStatus
		if status < 400 {
			status = fiber.StatusBadGateway
		}
		return fiber.NewError(status, apiErr.Error())
	}
	return fiber.NewError(fiber.StatusInternalServerError, err.Error())
}
