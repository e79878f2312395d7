package server

import (
	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/WP-hayashida/shopapp-backend/internal/auth"
	"github.com/WP-hayashida/shopapp-backend/internal/config"
	"github.com/WP-hayashida/shopapp-backend/internal/like"
	"github.com/WP-hayashida/shopapp-backend/internal/maps"
	"github.com/WP-hayashida/shopapp-backend/internal/place"
	"github.com/WP-hayashida/shopapp-backend/internal/review"
	"github.com/WP-hayashida/shopapp-backend/internal/search"
	"github.com/WP-hayashida/shopapp-backend/internal/shop"
	"github.com/WP-hayashida/shopapp-backend/internal/station"
	"github.com/WP-hayashida/shopapp-backend/internal/storage"
)

type Server struct {
	App   *fiber.App
	Cfg   config.Config
	DB    *pgxpool.Pool
	Redis *redis.Client
}

func NewServer(cfg config.Config, db *pgxpool.Pool, redisClient *redis.Client) *Server {
	app := fiber.New()
	app.Use(recover.New())
	app.Use(logger.New())

	s := &Server{
		App:   app,
		Cfg:   cfg,
		DB:    db,
		Redis: redisClient,
	}

	registerRoutes(s)
	return s
}

func registerRoutes(s *Server) {
	s.App.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	s.App.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	jwtMiddleware := auth.JWTMiddleware(s.Cfg.JWTSecret)
	optionalJWT := auth.OptionalJWTMiddleware(s.Cfg.JWTSecret)

	mapsClient := maps.NewClient(s.Cfg)
	placeCache := place.NewCache(s.DB, s.Redis, mapsClient, s.Cfg.PlaceCacheTTL)
	stationResolver := station.NewResolver(mapsClient)
	enricher := shop.NewOrchestrator(mapsClient, placeCache, stationResolver)

	auth.RegisterRoutes(s.App.Group("/auth"), auth.NewService(s.Cfg.JWTSecret, s.DB))

	// /shops/search must register before the /shops/:id routes.
	shops := s.App.Group("/shops")
	search.RegisterRoutes(shops, search.NewService(s.DB), optionalJWT)
	shop.RegisterRoutes(shops, shop.NewService(s.DB, enricher), jwtMiddleware)
	like.RegisterRoutes(shops, like.NewService(s.DB), jwtMiddleware)
	review.RegisterRoutes(shops, review.NewService(s.DB), jwtMiddleware)

	mapsGroup := s.App.Group("/maps")
	maps.RegisterRoutes(mapsGroup, mapsClient)
	station.RegisterRoutes(mapsGroup, stationResolver)

	storage.RegisterRoutes(s.App.Group("/storage"), storage.NewService(s.DB, s.Cfg.StorageBase), jwtMiddleware)
}
