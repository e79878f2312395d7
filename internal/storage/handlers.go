package storage

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/WP-hayashida/shopapp-backend/internal/db"
)

type Service struct {
	db   db.Querier
	base string
}

func NewService(db db.Querier, base string) *Service {
	return &Service{db: db, base: strings.TrimSuffix(base, "/")}
}

// SaveObject records an uploaded object under a user-scoped path and
// returns its id and public URL.
func (s *Service) SaveObject(ctx context.Context, userID, fileName, kind string) (string, string, error) {
	id := uuid.NewString()
	url := s.base + "/" + userID + "/" + id + "-" + fileName
	_, err := s.db.Exec(ctx, `
		INSERT INTO storage_objects (id, user_id, url, kind)
		VALUES ($1,$2,$3,$4)
	`, id, userID, url, kind)
	if err != nil {
		return "", "", err
	}
	return id, url, nil
}

func RegisterRoutes(r fiber.Router, svc *Service, authMiddleware fiber.Handler) {
	r.Post("/upload", authMiddleware, func(c *fiber.Ctx) error {
		var body struct {
			FileName string `json:"file_name"`
			Kind     string `json:"kind"`
		}
		_ = c.BodyParser(&body)
		userID, _ := c.Locals("user_id").(string)
		if userID == "" {
			return fiber.NewError(fiber.StatusBadRequest, "user_id required")
		}
		if body.FileName == "" {
			body.FileName = "upload"
		}
		if body.Kind == "" {
			body.Kind = "photo"
		}
		id, url, err := svc.SaveObject(c.Context(), userID, body.FileName, body.Kind)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(fiber.Map{
			"id":  id,
			"url": url,
		})
	})
}
