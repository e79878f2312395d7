package search

import "github.com/WP-hayashida/shopapp-backend/internal/shop"

// Sort keys accepted by Search. Anything else falls back to the default.
const (
	SortCreatedAsc  = "created_at.asc"
	SortCreatedDesc = "created_at.desc"
	SortLikesDesc   = "likes.desc"
)

// DefaultRadiusM applies when a center is given without a radius.
const DefaultRadiusM = 1000.0

// Filters is the transient per-request query input. All supplied
// constraints AND together; a radius without a center is ignored.
type Filters struct {
	Keyword    string
	Categories []string
	Lat        *float64
	Lng        *float64
	RadiusM    float64
	SortBy     string
	PostedBy   string
	LikedBy    string
	ShopID     string
	Limit      int
	Offset     int
}

// Result is one ranked search hit: the shop plus per-shop aggregates and
// the caller's liked state.
type Result struct {
	shop.Shop
	LikeCount      int     `json:"like_count"`
	Liked          bool    `json:"liked"`
	Rating         float64 `json:"rating"`
	ReviewCount    int     `json:"review_count"`
	PosterUsername string  `json:"poster_username"`
	PosterAvatar   string  `json:"poster_avatar"`
}
