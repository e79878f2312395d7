package storage

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/pashagolub/pgxmock/v3"
)

var errSave = errors.New("save error")

func TestSaveObject(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectExec(`INSERT INTO storage_objects`).
		WithArgs(pgxmock.AnyArg(), "user-1", pgxmock.AnyArg(), "photo").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	svc := NewService(mock, "https://storage.example/")
	id, url, err := svc.SaveObject(context.Background(), "user-1", "menu.jpg", "photo")
	if err != nil {
		t.Fatalf("save object: %v", err)
	}
	if id == "" {
		t.Fatalf("expected id")
	}
	if !strings.HasPrefix(url, "https://storage.example/user-1/") || !strings.HasSuffix(url, "-menu.jpg") {
		t.Fatalf("unexpected url: %s", url)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestSaveObjectError(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectExec(`INSERT INTO storage_objects`).
		WithArgs(pgxmock.AnyArg(), "user-1", pgxmock.AnyArg(), "kind").
		WillReturnError(errSave)

	svc := NewService(mock, "https://storage.example")
	_, _, err = svc.SaveObject(context.Background(), "user-1", "f", "kind")
	if err == nil {
		t.Fatalf("expected error")
	}
}
