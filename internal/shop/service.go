package shop

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/WP-hayashida/shopapp-backend/internal/db"
	"github.com/WP-hayashida/shopapp-backend/internal/maps"

	"github.com/google/uuid"
)

var ErrNotOwner = errors.New("shop: caller does not own this shop")

// Enricher runs the pre-persist enrichment pipeline.
type Enricher interface {
	Enrich(ctx context.Context, sub Submission) Enriched
}

type Service struct {
	db       db.Querier
	enricher Enricher
}

func NewService(q db.Querier, enricher Enricher) *Service {
	return &Service{db: q, enricher: enricher}
}

// Create enriches the submission and persists the result in one insert.
// Enrichment is best-effort; a partially enriched record is still saved.
func (s *Service) Create(ctx context.Context, sub Submission) (Enriched, error) {
	enriched := s.enricher.Enrich(ctx, sub)
	enriched.Shop.ID = uuid.NewString()

	hoursJSON := hoursJSON(enriched.Shop.BusinessHours)
	row := s.db.QueryRow(ctx, `
		INSERT INTO shops (id, name, location, formatted_address, lat, lng,
		                   categories, category_detail, comments, place_id,
		                   price_range, business_hours, phone_number, photo_url,
		                   api_rating, api_last_updated, nearest_station,
		                   walk_minutes, user_id)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19)
		RETURNING created_at
	`, enriched.Shop.ID, enriched.Shop.Name, enriched.Shop.Location,
		enriched.Shop.FormattedAddress, enriched.Shop.Lat, enriched.Shop.Lng,
		enriched.Shop.Categories, enriched.Shop.CategoryDetail, enriched.Shop.Comments,
		enriched.Shop.PlaceID, enriched.Shop.PriceRange, hoursJSON,
		enriched.Shop.PhoneNumber, enriched.Shop.PhotoURL, enriched.Shop.APIRating,
		enriched.Shop.APILastUpdated, enriched.Shop.NearestStation,
		enriched.Shop.WalkMinutes, enriched.Shop.UserID)
	if err := row.Scan(&enriched.Shop.CreatedAt); err != nil {
		return Enriched{}, err
	}
	return enriched, nil
}

func (s *Service) Get(ctx context.Context, id string) (Shop, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id, name, location, formatted_address, lat, lng, categories,
		       category_detail, comments, place_id, price_range, business_hours,
		       phone_number, photo_url, api_rating, api_last_updated,
		       nearest_station, walk_minutes, user_id, created_at
		FROM shops WHERE id=$1
	`, id)

	var sh Shop
	var hoursRaw []byte
	err := row.Scan(&sh.ID, &sh.Name, &sh.Location, &sh.FormattedAddress,
		&sh.Lat, &sh.Lng, &sh.Categories, &sh.CategoryDetail, &sh.Comments,
		&sh.PlaceID, &sh.PriceRange, &hoursRaw, &sh.PhoneNumber, &sh.PhotoURL,
		&sh.APIRating, &sh.APILastUpdated, &sh.NearestStation, &sh.WalkMinutes,
		&sh.UserID, &sh.CreatedAt)
	if err != nil {
		return Shop{}, err
	}
	if len(hoursRaw) > 0 {
		_ = json.Unmarshal(hoursRaw, &sh.BusinessHours)
	}
	return sh, nil
}

// UpdateRequest patches the user-editable fields. A new location with
// ReEnrich set reruns the pipeline for the geo field groups.
type UpdateRequest struct {
	Name           string   `json:"name"`
	Categories     []string `json:"categories"`
	CategoryDetail string   `json:"category_detail"`
	Comments       string   `json:"comments"`
	PhotoURL       string   `json:"photo_url"`
	Location       string   `json:"location"`
	ReEnrich       bool     `json:"re_enrich"`
}

func (s *Service) Update(ctx context.Context, id, userID string, req UpdateRequest) (Shop, error) {
	sh, err := s.Get(ctx, id)
	if err != nil {
		return Shop{}, err
	}
	if sh.UserID != userID {
		return Shop{}, ErrNotOwner
	}

	if req.Name != "" {
		sh.Name = req.Name
	}
	if req.Categories != nil {
		sh.Categories = req.Categories
	}
	if req.CategoryDetail != "" {
		sh.CategoryDetail = req.CategoryDetail
	}
	if req.Comments != "" {
		sh.Comments = req.Comments
	}
	if req.PhotoURL != "" {
		photo := req.PhotoURL
		sh.PhotoURL = &photo
	}

	if req.Location != "" && req.Location != sh.Location {
		sh.Location = req.Location
		if req.ReEnrich {
			enriched := s.enricher.Enrich(ctx, Submission{
				Name:     sh.Name,
				Location: sh.Location,
				UserID:   sh.UserID,
			})
			sh.FormattedAddress = enriched.Shop.FormattedAddress
			sh.Lat, sh.Lng = enriched.Shop.Lat, enriched.Shop.Lng
			sh.PlaceID = enriched.Shop.PlaceID
			sh.PriceRange = enriched.Shop.PriceRange
			sh.BusinessHours = enriched.Shop.BusinessHours
			sh.PhoneNumber = enriched.Shop.PhoneNumber
			sh.APIRating = enriched.Shop.APIRating
			sh.APILastUpdated = enriched.Shop.APILastUpdated
			sh.NearestStation = enriched.Shop.NearestStation
			sh.WalkMinutes = enriched.Shop.WalkMinutes
		}
	}

	_, err = s.db.Exec(ctx, `
		UPDATE shops
		SET name=$2, location=$3, formatted_address=$4, lat=$5, lng=$6,
		    categories=$7, category_detail=$8, comments=$9, place_id=$10,
		    price_range=$11, business_hours=$12, phone_number=$13,
		    photo_url=$14, api_rating=$15, api_last_updated=$16,
		    nearest_station=$17, walk_minutes=$18
		WHERE id=$1
	`, sh.ID, sh.Name, sh.Location, sh.FormattedAddress, sh.Lat, sh.Lng,
		sh.Categories, sh.CategoryDetail, sh.Comments, sh.PlaceID, sh.PriceRange,
		hoursJSON(sh.BusinessHours), sh.PhoneNumber, sh.PhotoURL, sh.APIRating,
		sh.APILastUpdated, sh.NearestStation, sh.WalkMinutes)
	if err != nil {
		return Shop{}, err
	}
	return sh, nil
}

// Delete removes a shop; only the owner may delete.
func (s *Service) Delete(ctx context.Context, id, userID string) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM shops WHERE id=$1 AND user_id=$2`, id, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotOwner
	}
	return nil
}

func hoursJSON(hours []maps.DayHours) []byte {
	if len(hours) == 0 {
		return nil
	}
	raw, err := json.Marshal(hours)
	if err != nil {
		return nil
	}
	return raw
}
