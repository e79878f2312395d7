package like

import (
	"context"

	"github.com/WP-hayashida/shopapp-backend/internal/db"
)

type Service struct {
	db db.Querier
}

func NewService(q db.Querier) *Service {
	return &Service{db: q}
}

// Toggle flips the caller's like for a shop and reports the new state.
// The insert uses ON CONFLICT DO NOTHING so a duplicate-insert race with
// another request is a benign no-op, not an error.
func (s *Service) Toggle(ctx context.Context, userID, shopID string) (bool, error) {
	tag, err := s.db.Exec(ctx, `DELETE FROM likes WHERE user_id=$1 AND shop_id=$2`, userID, shopID)
	if err != nil {
		return false, err
	}
	if tag.RowsAffected() > 0 {
		return false, nil
	}

	_, err = s.db.Exec(ctx, `
		INSERT INTO likes (user_id, shop_id)
		VALUES ($1,$2)
		ON CONFLICT DO NOTHING
	`, userID, shopID)
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *Service) Count(ctx context.Context, shopID string) (int, error) {
	var count int
	err := s.db.QueryRow(ctx, `SELECT COUNT(*) FROM likes WHERE shop_id=$1`, shopID).Scan(&count)
	return count, err
}

// Liked reports whether userID has a like for shopID. An empty user id is
// always false.
func (s *Service) Liked(ctx context.Context, userID, shopID string) (bool, error) {
	if userID == "" {
		return false, nil
	}
	var liked bool
	err := s.db.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM likes WHERE user_id=$1 AND shop_id=$2)
	`, userID, shopID).Scan(&liked)
	return liked, err
}
