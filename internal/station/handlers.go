package station

import (
	"strconv"

	"github.com/WP-hayashida/shopapp-backend/internal/maps"

	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(r fiber.Router, resolver *Resolver) {
	r.Get("/walktime", func(c *fiber.Ctx) error {
		lat, latErr := strconv.ParseFloat(c.Query("lat"), 64)
		lng, lngErr := strconv.ParseFloat(c.Query("lng"), 64)
		if latErr != nil || lngErr != nil {
			return fiber.NewError(fiber.StatusBadRequest, "lat and lng required")
		}

		st, err := resolver.Nearest(c.Context(), lat, lng)
		if err != nil {
			return maps.ToHTTPError(err)
		}
		return c.JSON(st)
	})
}
