package review

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/pashagolub/pgxmock/v3"
)

func authAs(userID string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals("user_id", userID)
		return c.Next()
	}
}

func TestReviewHandlerPost(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectExec(`INSERT INTO ratings`).
		WithArgs("shop-1", "user-1", 4).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectQuery(`INSERT INTO reviews`).
		WithArgs("shop-1", "user-1", "美味しかった").
		WillReturnRows(pgxmock.NewRows([]string{"created_at"}).AddRow(time.Now()))

	app := fiber.New()
	RegisterRoutes(app.Group("/shops"), NewService(mock), authAs("user-1"))

	body := strings.NewReader(`{"rating":4,"body":"美味しかった"}`)
	req := httptest.NewRequest(http.MethodPost, "/shops/shop-1/reviews", body)
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}

	var got Review
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Rating != 4 || got.Body != "美味しかった" {
		t.Fatalf("unexpected review: %+v", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestReviewHandlerRatingOutOfRange(t *testing.T) {
	app := fiber.New()
	RegisterRoutes(app.Group("/shops"), NewService(nil), authAs("user-1"))

	for _, rating := range []string{"0", "6"} {
		body := strings.NewReader(`{"rating":` + rating + `,"body":"x"}`)
		req := httptest.NewRequest(http.MethodPost, "/shops/shop-1/reviews", body)
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)
		if resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("rating %s: expected 400, got %d", rating, resp.StatusCode)
		}
	}
}

func TestReviewHandlerMissingUser(t *testing.T) {
	app := fiber.New()
	RegisterRoutes(app.Group("/shops"), NewService(nil), authAs(""))

	body := strings.NewReader(`{"rating":3,"body":"x"}`)
	req := httptest.NewRequest(http.MethodPost, "/shops/shop-1/reviews", body)
	req.Header.Set("Content-Type", "application/json")
	resp, _ := app.Test(req)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestReviewHandlerList(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectQuery(`SELECT rv.shop_id, rv.user_id`).
		WithArgs("shop-1").
		WillReturnRows(pgxmock.NewRows([]string{"shop_id", "user_id", "rating", "body", "created_at", "username", "avatar_url"}).
			AddRow("shop-1", "user-1", 5, "最高", time.Now(), "taro", ""))

	app := fiber.New()
	RegisterRoutes(app.Group("/shops"), NewService(mock), authAs(""))

	req := httptest.NewRequest(http.MethodGet, "/shops/shop-1/reviews", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var got []Review
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got) != 1 || got[0].Username != "taro" {
		t.Fatalf("unexpected reviews: %+v", got)
	}
}
