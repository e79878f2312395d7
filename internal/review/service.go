package review

import (
	"context"
	"time"

	"github.com/WP-hayashida/shopapp-backend/internal/db"
)

type Review struct {
	ShopID    string    `json:"shop_id"`
	UserID    string    `json:"user_id"`
	Rating    int       `json:"rating"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
	Username  string    `json:"username"`
	AvatarURL string    `json:"avatar_url"`
}

type Service struct {
	db db.Querier
}

func NewService(q db.Querier) *Service {
	return &Service{db: q}
}

// Upsert records one rating and one review text per (shop, user);
// posting again replaces the previous entry.
func (s *Service) Upsert(ctx context.Context, shopID, userID string, rating int, body string) (Review, error) {
	_, err := s.db.Exec(ctx, `
		INSERT INTO ratings (shop_id, user_id, rating)
		VALUES ($1,$2,$3)
		ON CONFLICT (shop_id, user_id) DO UPDATE SET rating=EXCLUDED.rating
	`, shopID, userID, rating)
	if err != nil {
		return Review{}, err
	}

	review := Review{ShopID: shopID, UserID: userID, Rating: rating, Body: body}
	row := s.db.QueryRow(ctx, `
		INSERT INTO reviews (shop_id, user_id, body)
		VALUES ($1,$2,$3)
		ON CONFLICT (shop_id, user_id) DO UPDATE SET body=EXCLUDED.body
		RETURNING created_at
	`, shopID, userID, body)
	if err := row.Scan(&review.CreatedAt); err != nil {
		return Review{}, err
	}
	return review, nil
}

func (s *Service) List(ctx context.Context, shopID string) ([]Review, error) {
	rows, err := s.db.Query(ctx, `
		SELECT rv.shop_id, rv.user_id, COALESCE(rt.rating, 0), rv.body,
		       rv.created_at, p.username, COALESCE(p.avatar_url, '')
		FROM reviews rv
		JOIN profiles p ON p.id = rv.user_id
		LEFT JOIN ratings rt ON rt.shop_id = rv.shop_id AND rt.user_id = rv.user_id
		WHERE rv.shop_id=$1
		ORDER BY rv.created_at DESC
	`, shopID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reviews []Review
	for rows.Next() {
		var r Review
		if err := rows.Scan(&r.ShopID, &r.UserID, &r.Rating, &r.Body, &r.CreatedAt, &r.Username, &r.AvatarURL); err != nil {
			return nil, err
		}
		reviews = append(reviews, r)
	}
	return reviews, rows.Err()
}

// Average is the arithmetic mean of a shop's ratings rounded to one
// decimal, 0 when the shop has none.
func (s *Service) Average(ctx context.Context, shopID string) (float64, error) {
	var avg float64
	err := s.db.QueryRow(ctx, `
		SELECT COALESCE(ROUND(AVG(rating)::numeric, 1), 0)::float8
		FROM ratings WHERE shop_id=$1
	`, shopID).Scan(&avg)
	return avg, err
}
