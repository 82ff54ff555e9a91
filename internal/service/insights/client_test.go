package insights

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"TradePulse/internal/domain/models"
	"TradePulse/internal/domain/repository"
	"TradePulse/pkg/cache"
	"TradePulse/pkg/logger"
)

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New(&logger.Config{Level: "error", Format: "json", Output: "stderr"})
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	return log
}

func quarterlyFixture() []models.QuarterlyStat {
	return []models.QuarterlyStat{
		{Quarter: "2024Q3", Value: 410.5},
		{Quarter: "2024Q4", Value: 450.25},
	}
}

func TestGenerateParsesModelResponse(t *testing.T) {
	var gotAuth, gotVersion string
	var gotBody map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("x-api-key")
		gotVersion = r.Header.Get("anthropic-version")
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode request: %v", err)
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"model": "claude-3-5-haiku",
			"content": []map[string]string{
				{"type": "text", "text": "Exports rose in 2024Q4."},
			},
		})
	}))
	defer srv.Close()

	svc := NewService(Config{
		BaseURL: srv.URL,
		APIKey:  "test-key",
		Model:   "claude-3-5-haiku",
		Timeout: 5 * time.Second,
		RPS:     1,
	}, cache.NewMemoryCache(), repository.NopMetrics{}, testLogger(t))

	insight, err := svc.Generate(context.Background(), "exports", quarterlyFixture(), nil)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if insight.Summary != "Exports rose in 2024Q4." {
		t.Fatalf("unexpected summary: %q", insight.Summary)
	}
	if insight.Model != "claude-3-5-haiku" || insight.Focus != "exports" {
		t.Fatalf("unexpected insight: %+v", insight)
	}
	if gotAuth != "test-key" || gotVersion != anthropicVersion {
		t.Fatalf("missing auth headers: key=%q version=%q", gotAuth, gotVersion)
	}
	if gotBody["model"] != "claude-3-5-haiku" {
		t.Fatalf("request model: %v", gotBody["model"])
	}
}

func TestGenerateCachesPerFocus(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls++
		json.NewEncoder(w).Encode(map[string]interface{}{
			"content": []map[string]string{{"type": "text", "text": "steady"}},
		})
	}))
	defer srv.Close()

	svc := NewService(Config{BaseURL: srv.URL, APIKey: "k", Model: "m", RPS: 100}, cache.NewMemoryCache(), repository.NopMetrics{}, testLogger(t))

	for i := 0; i < 3; i++ {
		if _, err := svc.Generate(context.Background(), "imports", quarterlyFixture(), nil); err != nil {
			t.Fatalf("generate %d: %v", i, err)
		}
	}
	if calls != 1 {
		t.Fatalf("expected 1 upstream call, got %d", calls)
	}
}

func TestGenerateDisabledWithoutKey(t *testing.T) {
	svc := NewService(Config{BaseURL: "http://localhost"}, cache.NewMemoryCache(), repository.NopMetrics{}, testLogger(t))
	if _, err := svc.Generate(context.Background(), "exports", nil, nil); !errors.Is(err, ErrDisabled) {
		t.Fatalf("expected ErrDisabled, got %v", err)
	}
}

func TestGenerateUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "overloaded", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	svc := NewService(Config{BaseURL: srv.URL, APIKey: "k", Model: "m", RPS: 100}, cache.NewMemoryCache(), repository.NopMetrics{}, testLogger(t))
	if _, err := svc.Generate(context.Background(), "exports", quarterlyFixture(), nil); err == nil {
		t.Fatal("expected an error from the upstream failure")
	}
}
