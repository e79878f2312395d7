package search

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/WP-hayashida/shopapp-backend/internal/db"
	"github.com/WP-hayashida/shopapp-backend/internal/logging"
	"github.com/WP-hayashida/shopapp-backend/internal/metrics"

	"github.com/sirupsen/logrus"
)

type Service struct {
	db db.Querier
}

func NewService(q db.Querier) *Service {
	return &Service{db: q}
}

// Search returns ranked shops for the filter set. It is read-only and
// never fails to the caller: a backend error logs, counts, and degrades
// to an empty list.
func (s *Service) Search(ctx context.Context, f Filters, callerUserID string) []Result {
	results, err := s.query(ctx, f, callerUserID)
	if err != nil {
		logging.L().WithFields(logrus.Fields{"component": "search", "keyword": f.Keyword}).
			WithError(err).Error("search degraded to empty result")
		metrics.SearchFailures.Inc()
		return []Result{}
	}
	return results
}

func (s *Service) query(ctx context.Context, f Filters, callerUserID string) ([]Result, error) {
	var (
		where []string
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	// liked is per-caller; an anonymous caller never has likes.
	caller := arg(callerUserID)

	if f.Keyword != "" {
		kw := arg("%" + f.Keyword + "%")
		where = append(where, fmt.Sprintf(`(s.name ILIKE %[1]s
			OR s.category_detail ILIKE %[1]s
			OR s.comments ILIKE %[1]s
			OR array_to_string(s.categories, ' ') ILIKE %[1]s
			OR COALESCE(s.nearest_station, '') ILIKE %[1]s)`, kw))
	}
	if len(f.Categories) > 0 {
		where = append(where, fmt.Sprintf("s.categories && %s", arg(f.Categories)))
	}
	if f.Lat != nil && f.Lng != nil {
		radius := f.RadiusM
		if radius <= 0 {
			radius = DefaultRadiusM
		}
		where = append(where, fmt.Sprintf(`s.lat IS NOT NULL AND ST_DWithin(
			ST_SetSRID(ST_MakePoint(s.lng, s.lat), 4326)::geography,
			ST_SetSRID(ST_MakePoint(%s, %s), 4326)::geography, %s)`,
			arg(*f.Lng), arg(*f.Lat), arg(radius)))
	}
	if f.PostedBy != "" {
		where = append(where, fmt.Sprintf("s.user_id = %s", arg(f.PostedBy)))
	}
	if f.LikedBy != "" {
		where = append(where, fmt.Sprintf(
			"EXISTS (SELECT 1 FROM likes lb WHERE lb.shop_id = s.id AND lb.user_id = %s)", arg(f.LikedBy)))
	}
	if f.ShopID != "" {
		where = append(where, fmt.Sprintf("s.id = %s", arg(f.ShopID)))
	}

	sql := fmt.Sprintf(`
		SELECT s.id, s.name, s.location, s.formatted_address, s.lat, s.lng,
		       s.categories, s.category_detail, s.comments, s.place_id,
		       s.price_range, s.business_hours, s.phone_number, s.photo_url,
		       s.api_rating, s.api_last_updated, s.nearest_station,
		       s.walk_minutes, s.user_id, s.created_at,
		       (SELECT COUNT(*) FROM likes l WHERE l.shop_id = s.id) AS like_count,
		       (%s <> '' AND EXISTS (SELECT 1 FROM likes l WHERE l.shop_id = s.id AND l.user_id = %s)) AS liked,
		       COALESCE((SELECT ROUND(AVG(r.rating)::numeric, 1) FROM ratings r WHERE r.shop_id = s.id), 0)::float8 AS rating,
		       (SELECT COUNT(*) FROM reviews rv WHERE rv.shop_id = s.id) AS review_count,
		       p.username, COALESCE(p.avatar_url, '')
		FROM shops s
		JOIN profiles p ON p.id = s.user_id
		%s
		ORDER BY %s
		%s`,
		caller, caller, whereClause(where), orderBy(f.SortBy), limitClause(f, arg))

	rows, err := s.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	results := []Result{}
	for rows.Next() {
		var r Result
		var hoursRaw []byte
		err := rows.Scan(&r.ID, &r.Name, &r.Location, &r.FormattedAddress,
			&r.Lat, &r.Lng, &r.Categories, &r.CategoryDetail, &r.Comments,
			&r.PlaceID, &r.PriceRange, &hoursRaw, &r.PhoneNumber, &r.PhotoURL,
			&r.APIRating, &r.APILastUpdated, &r.NearestStation, &r.WalkMinutes,
			&r.UserID, &r.CreatedAt, &r.LikeCount, &r.Liked, &r.Rating,
			&r.ReviewCount, &r.PosterUsername, &r.PosterAvatar)
		if err != nil {
			return nil, err
		}
		if len(hoursRaw) > 0 {
			_ = json.Unmarshal(hoursRaw, &r.BusinessHours)
		}
		results = append(results, r)
	}
	return results, rows.Err()
}

func whereClause(conds []string) string {
	if len(conds) == 0 {
		return ""
	}
	return "WHERE " + strings.Join(conds, " AND ")
}

// orderBy is always deterministic; the likes sort breaks ties on newest
// first rather than leaving it to the planner.
func orderBy(sortBy string) string {
	switch sortBy {
	case SortCreatedAsc:
		return "s.created_at ASC"
	case SortLikesDesc:
		return "like_count DESC, s.created_at DESC"
	default:
		return "s.created_at DESC"
	}
}

func limitClause(f Filters, arg func(any) string) string {
	if f.Limit <= 0 {
		return ""
	}
	clause := "LIMIT " + arg(f.Limit)
	if f.Offset > 0 {
		clause += " OFFSET " + arg(f.Offset)
	}
	return clause
}
