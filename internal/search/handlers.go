package search

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
)

// RegisterRoutes mounts the search endpoint. optionalAuth resolves the
// caller's user id into locals when a token is present but never rejects.
func RegisterRoutes(r fiber.Router, svc *Service, optionalAuth fiber.Handler) {
	r.Get("/search", optionalAuth, func(c *fiber.Ctx) error {
		f := Filters{
			Keyword:  c.Query("keyword"),
			SortBy:   c.Query("sort"),
			PostedBy: c.Query("posted_by"),
			LikedBy:  c.Query("liked_by"),
			ShopID:   c.Query("shop_id"),
		}

		for _, v := range c.Context().QueryArgs().PeekMulti("category") {
			if s := string(v); s != "" {
				f.Categories = append(f.Categories, s)
			}
		}

		if lat, err := strconv.ParseFloat(c.Query("lat"), 64); err == nil {
			if lng, err := strconv.ParseFloat(c.Query("lng"), 64); err == nil {
				f.Lat, f.Lng = &lat, &lng
			}
		}
		f.RadiusM, _ = strconv.ParseFloat(c.Query("radius"), 64)
		f.Limit, _ = strconv.Atoi(c.Query("limit"))
		f.Offset, _ = strconv.Atoi(c.Query("offset"))

		callerID, _ := c.Locals("user_id").(string)
		return c.JSON(svc.Search(c.Context(), f, callerID))
	})
}
