package service

import (
	"context"
	"fmt"

	"stayhaven/internal/availability"
	"stayhaven/internal/domain"
	"stayhaven/internal/models"

	"github.com/rs/zerolog"
)

// ReportService serves occupancy and earnings aggregates. Only confirmed
// and completed bookings count toward revenue.
type ReportService struct {
	repo   domain.Repository
	logger *zerolog.Logger
}

func NewReportService(repo domain.Repository, logger *zerolog.Logger) *ReportService {
	return &ReportService{repo: repo, logger: logger}
}

func (s *ReportService) RoomReport(ctx context.Context, roomID int64, period availability.DateRange) (*models.BookingReport, error) {
	if !period.IsValid() {
		return nil, fmt.Errorf("invalid report period")
	}
	return s.repo.GetRoomReport(ctx, roomID, period)
}

func (s *ReportService) HostReport(ctx context.Context, hostID int64, period availability.DateRange) (*models.BookingReport, error) {
	if !period.IsValid() {
		return nil, fmt.Errorf("invalid report period")
	}
	return s.repo.GetHostReport(ctx, hostID, period)
}

func (s *ReportService) IncomeByAccommodation(ctx context.Context) ([]*models.AccommodationIncome, error) {
	return s.repo.GetIncomeByAccommodation(ctx)
}

func (s *ReportService) BookingsByPeriod(ctx context.Context, period string, accommodationID int64) ([]*models.PeriodBookingCount, error) {
	switch period {
	case "day", "week", "month":
	default:
		return nil, fmt.Errorf("unsupported grouping period: %s", period)
	}
	return s.repo.GetBookingsGroupedByPeriod(ctx, period, accommodationID)
}
