package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"stayhaven/internal/config"
	"stayhaven/internal/domain"
	"stayhaven/internal/export"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// Server exposes the booking engine over JSON HTTP.
type Server struct {
	cfg            config.APIConfig
	bookings       domain.BookingService
	accommodations domain.AccommodationService
	users          domain.UserService
	reports        domain.ReportService
	limiter        domain.RateLimiter
	exporter       *export.Exporter
	auth           *Auth
	local          *clientLimiter
	logger         zerolog.Logger
	server         *http.Server
}

type Deps struct {
	Bookings       domain.BookingService
	Accommodations domain.AccommodationService
	Users          domain.UserService
	Reports        domain.ReportService
	Limiter        domain.RateLimiter
	Exporter       *export.Exporter
}

func NewServer(cfg config.APIConfig, deps Deps, logger *zerolog.Logger) *Server {
	serverLogger := zerolog.Nop()
	if logger != nil {
		serverLogger = logger.With().Str("component", "http").Logger()
	}

	s := &Server{
		cfg:            cfg,
		bookings:       deps.Bookings,
		accommodations: deps.Accommodations,
		users:          deps.Users,
		reports:        deps.Reports,
		limiter:        deps.Limiter,
		exporter:       deps.Exporter,
		auth:           NewAuth(cfg.Auth),
		local:          newClientLimiter(cfg.RateLimit),
		logger:         serverLogger,
	}

	s.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      30 * time.Second,
	}
	return s
}

// Handler builds the full route table with the middleware chain applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("POST /api/v1/auth/token", s.handleIssueToken)

	protected := http.NewServeMux()
	protected.HandleFunc("GET /api/v1/me", s.handleMe)
	protected.HandleFunc("GET /api/v1/users", s.handleListUsers)

	protected.HandleFunc("POST /api/v1/accommodations", s.handleCreateAccommodation)
	protected.HandleFunc("GET /api/v1/accommodations", s.handleListAccommodations)
	protected.HandleFunc("GET /api/v1/accommodations/{id}", s.handleGetAccommodation)
	protected.HandleFunc("PUT /api/v1/accommodations/{id}", s.handleUpdateAccommodation)
	protected.HandleFunc("DELETE /api/v1/accommodations/{id}", s.handleDeleteAccommodation)
	protected.HandleFunc("POST /api/v1/accommodations/{id}/rooms", s.handleCreateRoom)
	protected.HandleFunc("GET /api/v1/accommodations/{id}/rooms", s.handleListRooms)
	protected.HandleFunc("GET /api/v1/rooms/{id}", s.handleGetRoom)
	protected.HandleFunc("PUT /api/v1/rooms/{id}", s.handleUpdateRoom)
	protected.HandleFunc("DELETE /api/v1/rooms/{id}", s.handleDeleteRoom)

	protected.HandleFunc("GET /api/v1/rooms/{id}/availability", s.handleRoomAvailability)
	protected.HandleFunc("POST /api/v1/rooms/{id}/blocks", s.handleCreateBlock)
	protected.HandleFunc("GET /api/v1/rooms/{id}/blocks", s.handleListBlocks)
	protected.HandleFunc("DELETE /api/v1/blocks/{id}", s.handleDeleteBlock)

	protected.HandleFunc("POST /api/v1/bookings", s.handleCreateBooking)
	protected.HandleFunc("GET /api/v1/bookings/{id}", s.handleGetBooking)
	protected.HandleFunc("GET /api/v1/bookings/code/{code}", s.handleGetBookingByCode)
	protected.HandleFunc("POST /api/v1/bookings/{id}/confirm", s.handleConfirmBooking)
	protected.HandleFunc("POST /api/v1/bookings/{id}/cancel", s.handleCancelBooking)

	protected.HandleFunc("GET /api/v1/my/bookings", s.handleMyBookings)
	protected.HandleFunc("GET /api/v1/my/calendar", s.handleMyCalendar)
	protected.HandleFunc("GET /api/v1/my/earnings", s.handleMyEarnings)
	protected.HandleFunc("GET /api/v1/reports/rooms/{id}", s.handleRoomReport)
	protected.HandleFunc("GET /api/v1/reports/income", s.handleIncomeReport)
	protected.HandleFunc("GET /api/v1/reports/bookings", s.handleBookingsByPeriod)
	protected.HandleFunc("GET /api/v1/accommodations/{id}/export/occupancy", s.handleExportOccupancy)
	protected.HandleFunc("GET /api/v1/accommodations/{id}/export/earnings", s.handleExportEarnings)

	mux.Handle("/api/v1/", s.auth.RequireAuth(s.rateLimitMiddleware(protected)))

	chain := requestIDMiddleware(
		loggingMiddleware(s.logger)(
			corsMiddleware(s.cfg.CORS.AllowedOrigins)(mux)))
	return chain
}

func (s *Server) Start() error {
	s.logger.Info().Str("addr", s.server.Addr).Msg("http server listening")
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
