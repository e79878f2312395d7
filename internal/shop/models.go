package shop

import (
	"time"

	"github.com/WP-hayashida/shopapp-backend/internal/maps"
)

// Shop is a posted place entry. External fields stay nil until
// enrichment resolves them.
type Shop struct {
	ID               string          `json:"id"`
	Name             string          `json:"name"`
	Location         string          `json:"location"`
	FormattedAddress *string         `json:"formatted_address"`
	Lat              *float64        `json:"lat"`
	Lng              *float64        `json:"lng"`
	Categories       []string        `json:"categories"`
	CategoryDetail   string          `json:"category_detail"`
	Comments         string          `json:"comments"`
	PlaceID          *string         `json:"place_id"`
	PriceRange       *string         `json:"price_range"`
	BusinessHours    []maps.DayHours `json:"business_hours"`
	PhoneNumber      *string         `json:"phone_number"`
	PhotoURL         *string         `json:"photo_url"`
	APIRating        *float64        `json:"api_rating"`
	APILastUpdated   *time.Time      `json:"api_last_updated"`
	NearestStation   *string         `json:"nearest_station"`
	WalkMinutes      *int            `json:"walk_minutes"`
	UserID           string          `json:"user_id"`
	CreatedAt        time.Time       `json:"created_at"`
}

// Submission is the raw user input before enrichment.
type Submission struct {
	Name           string   `json:"name"`
	Location       string   `json:"location"`
	Categories     []string `json:"categories"`
	CategoryDetail string   `json:"category_detail"`
	Comments       string   `json:"comments"`
	PlaceID        string   `json:"place_id"`
	Lat            *float64 `json:"lat"`
	Lng            *float64 `json:"lng"`
	PhotoURL       string   `json:"photo_url"`
	UserID         string   `json:"user_id"`
}

// StepStatus tags the outcome of one enrichment step.
type StepStatus string

const (
	StepResolved StepStatus = "resolved"
	StepSkipped  StepStatus = "skipped"
	StepAbsent   StepStatus = "absent"
	StepFailed   StepStatus = "failed"
)

// Enrichment records what each field group resolved to, instead of
// callers re-deriving it from null checks.
type Enrichment struct {
	Geocode StepStatus `json:"geocode"`
	Detail  StepStatus `json:"detail"`
	Station StepStatus `json:"station"`
}

// Enriched is a submission with whatever external data resolved.
// Unresolved fields stay nil; the caller decides whether to persist a
// partially enriched record.
type Enriched struct {
	Shop   Shop       `json:"shop"`
	Status Enrichment `json:"status"`
}
