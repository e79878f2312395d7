package metrics

import (
	"errors"
	"testing"
)

func TestRecordMapsCallPassesError(t *testing.T) {
	want := errors.New("boom")
	if err := RecordMapsCall("geocode", func() error { return want }); err != want {
		t.Fatalf("expected error passed through, got %v", err)
	}
	if err := RecordMapsCall("geocode", func() error { return nil }); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
}
