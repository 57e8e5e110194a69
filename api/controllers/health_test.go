package controllers

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/trailheadsupply/storefront/internal/storage"
)

type failingPinger struct{}

func (failingPinger) Ping(ctx context.Context) error { return fmt.Errorf("backend down") }

func TestHealthLive(t *testing.T) {
	handler := HealthLive(testConfig())
	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest("GET", "/health/live", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestHealthReadyWithWorkingStore(t *testing.T) {
	handler := HealthReady(testConfig(), nil, storage.NewMemoryStore())
	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest("GET", "/health/ready", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestHealthReadyWithFailingStore(t *testing.T) {
	handler := HealthReady(testConfig(), nil, failingPinger{})
	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest("GET", "/health/ready", nil))

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
}
