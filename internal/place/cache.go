package place

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/WP-hayashida/shopapp-backend/internal/db"
	"github.com/WP-hayashida/shopapp-backend/internal/logging"
	"github.com/WP-hayashida/shopapp-backend/internal/maps"
	"github.com/WP-hayashida/shopapp-backend/internal/metrics"

	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// Fetcher is the external place-details source.
type Fetcher interface {
	PlaceDetails(ctx context.Context, placeID string) (maps.PlaceDetail, error)
}

// Detail is cached place metadata plus its refresh timestamp.
type Detail struct {
	maps.PlaceDetail
	LastUpdated time.Time `json:"api_last_updated"`
}

// Cache serves place metadata with a freshness window. Identity is the
// external place id; the persisted copy lives on the shops row, with an
// optional redis hot layer in front. The check-then-refresh is not atomic
// against concurrent refreshers of the same place id; the refresh is
// idempotent so a racing duplicate fetch is harmless.
type Cache struct {
	db    db.Querier
	redis *redis.Client
	fetch Fetcher
	ttl   time.Duration
}

func NewCache(q db.Querier, redisClient *redis.Client, fetch Fetcher, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Cache{db: q, redis: redisClient, fetch: fetch, ttl: ttl}
}

// GetDetails returns place metadata for placeID. Fresh persisted data is
// returned verbatim with zero external calls; stale or absent data is
// refetched and persisted with a new timestamp.
func (c *Cache) GetDetails(ctx context.Context, placeID string) (Detail, error) {
	if detail, ok := c.fromRedis(ctx, placeID); ok {
		metrics.PlaceCacheRequests.WithLabelValues("hit").Inc()
		return detail, nil
	}

	detail, found, err := c.fromDB(ctx, placeID)
	if err != nil {
		logging.L().WithFields(logrus.Fields{"component": "place_cache", "place_id": placeID}).
			WithError(err).Warn("cache read failed, falling through to fetch")
	}
	if found && time.Since(detail.LastUpdated) < c.ttl {
		metrics.PlaceCacheRequests.WithLabelValues("hit").Inc()
		c.toRedis(ctx, placeID, detail)
		return detail, nil
	}

	if found {
		metrics.PlaceCacheRequests.WithLabelValues("stale").Inc()
	} else {
		metrics.PlaceCacheRequests.WithLabelValues("miss").Inc()
	}
	return c.refresh(ctx, placeID)
}

func (c *Cache) refresh(ctx context.Context, placeID string) (Detail, error) {
	fetched, err := c.fetch.PlaceDetails(ctx, placeID)
	if err != nil {
		return Detail{}, err
	}

	detail := Detail{PlaceDetail: fetched, LastUpdated: time.Now()}
	hoursJSON, _ := json.Marshal(detail.Hours)

	// Refresh any shop rows already carrying this place id. During shop
	// creation no row exists yet; the orchestrator persists the detail as
	// part of the insert.
	_, err = c.db.Exec(ctx, `
		UPDATE shops
		SET price_range=$2, business_hours=$3, api_rating=$4,
		    phone_number=$5, api_last_updated=$6
		WHERE place_id=$1
	`, placeID, detail.PriceRange, hoursJSON, detail.Rating, detail.PhoneNumber, detail.LastUpdated)
	if err != nil {
		logging.L().WithFields(logrus.Fields{"component": "place_cache", "place_id": placeID}).
			WithError(err).Warn("cache write failed")
	}

	c.toRedis(ctx, placeID, detail)
	return detail, nil
}

func (c *Cache) fromDB(ctx context.Context, placeID string) (Detail, bool, error) {
	row := c.db.QueryRow(ctx, `
		SELECT name, formatted_address, COALESCE(lat,0), COALESCE(lng,0),
		       price_range, business_hours, COALESCE(api_rating,0),
		       COALESCE(phone_number,''), COALESCE(photo_url,''),
		       categories, api_last_updated
		FROM shops
		WHERE place_id=$1 AND api_last_updated IS NOT NULL
		ORDER BY api_last_updated DESC
		LIMIT 1
	`, placeID)

	var detail Detail
	var hoursJSON []byte
	var lastUpdated *time.Time
	err := row.Scan(&detail.Name, &detail.Address, &detail.Lat, &detail.Lng,
		&detail.PriceRange, &hoursJSON, &detail.Rating,
		&detail.PhoneNumber, &detail.PhotoURL, &detail.Types, &lastUpdated)
	if errors.Is(err, pgx.ErrNoRows) {
		return Detail{}, false, nil
	}
	if err != nil {
		return Detail{}, false, err
	}

	detail.PlaceID = placeID
	if lastUpdated != nil {
		detail.LastUpdated = *lastUpdated
	}
	if len(hoursJSON) > 0 {
		_ = json.Unmarshal(hoursJSON, &detail.Hours)
	}
	return detail, true, nil
}

func (c *Cache) fromRedis(ctx context.Context, placeID string) (Detail, bool) {
	if c.redis == nil {
		return Detail{}, false
	}
	raw, err := c.redis.Get(ctx, redisKey(placeID)).Bytes()
	if err != nil {
		return Detail{}, false
	}
	var detail Detail
	if err := json.Unmarshal(raw, &detail); err != nil {
		return Detail{}, false
	}
	return detail, true
}

func (c *Cache) toRedis(ctx context.Context, placeID string, detail Detail) {
	if c.redis == nil {
		return
	}
	raw, err := json.Marshal(detail)
	if err != nil {
		return
	}
	remaining := c.ttl - time.Since(detail.LastUpdated)
	if remaining <= 0 {
		return
	}
	if err := c.redis.Set(ctx, redisKey(placeID), raw, remaining).Err(); err != nil {
		logging.L().WithFields(logrus.Fields{"component": "place_cache", "place_id": placeID}).
			WithError(err).Warn("redis set failed")
	}
}

func redisKey(placeID string) string {
	return "place:" + placeID
}
