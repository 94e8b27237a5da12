package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"stayhaven/internal/config"
	"stayhaven/internal/database"
	"stayhaven/internal/events"
	"stayhaven/internal/export"
	"stayhaven/internal/models"
	"stayhaven/internal/repository"
	"stayhaven/internal/service"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

type noopOutbox struct{}

func (noopOutbox) EnqueueTask(context.Context, string, int64, *models.Booking, string) error {
	return nil
}

type testEnv struct {
	server *httptest.Server
	db     *database.DB
}

func setupServer(t *testing.T) *testEnv {
	t.Helper()
	logger := zerolog.Nop()
	db, err := database.NewDB(filepath.Join(t.TempDir(), "test.db"), &logger)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	bus := events.NewEventBus()
	bookings := service.NewBookingService(db, bus, noopOutbox{}, 30, 365, &logger)
	accommodations := service.NewAccommodationService(db, &logger)
	users := service.NewUserService(db, &logger)
	reports := service.NewReportService(db, &logger)

	cfg := config.APIConfig{
		Port: 0,
		Auth: config.APIAuthConfig{JWTSecret: "test-secret", TokenTTL: 1},
		RateLimit: config.APIRateLimitConfig{
			RPS:   1000,
			Burst: 1000,
		},
		CORS: config.APICORSConfig{AllowedOrigins: []string{"*"}},
	}

	srv := NewServer(cfg, Deps{
		Bookings:       bookings,
		Accommodations: accommodations,
		Users:          users,
		Reports:        reports,
		Limiter:        repository.NewMemoryRateLimiter(),
		Exporter:       export.NewExporter(db, config.ExportConfig{Path: t.TempDir()}, &logger),
	}, &logger)

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return &testEnv{server: ts, db: db}
}

// token registers a user through the API and returns a bearer token.
func (e *testEnv) token(t *testing.T, email, username, role string) string {
	t.Helper()
	status, body := e.request(t, http.MethodPost, "/api/v1/auth/token", "", map[string]any{
		"email": email, "username": username, "role": role,
	})
	require.Equal(t, http.StatusOK, status, string(body))

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(body, &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func (e *testEnv) request(t *testing.T, method, path, token string, payload any) (int, []byte) {
	t.Helper()
	var body *bytes.Buffer
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewBuffer(raw)
	} else {
		body = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequest(method, e.server.URL+path, body)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.server.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var buf bytes.Buffer
	_, err = buf.ReadFrom(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, buf.Bytes()
}

// createListing provisions an accommodation with one room and returns both ids.
func (e *testEnv) createListing(t *testing.T, hostToken string) (int64, int64) {
	t.Helper()
	status, body := e.request(t, http.MethodPost, "/api/v1/accommodations", hostToken, map[string]any{
		"name": "Pine Lodge", "location": "Aspen", "type": "cabin", "is_active": true,
	})
	require.Equal(t, http.StatusCreated, status, string(body))
	var acc models.Accommodation
	require.NoError(t, json.Unmarshal(body, &acc))

	status, body = e.request(t, http.MethodPost,
		fmt.Sprintf("/api/v1/accommodations/%d/rooms", acc.ID), hostToken, map[string]any{
			"room_type": "double", "capacity": 2, "base_price": 120.0, "min_stay": 1, "is_available": true,
		})
	require.Equal(t, http.StatusCreated, status, string(body))
	var room models.Room
	require.NoError(t, json.Unmarshal(body, &room))

	return acc.ID, room.ID
}

func futureDay(days int) string {
	return time.Now().AddDate(0, 0, days).Format("2006-01-02")
}
