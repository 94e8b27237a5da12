package database

import (
	"context"
	"fmt"

	"stayhaven/internal/availability"
	"stayhaven/internal/models"
)

// reportStatusFilter limits aggregates to stays that actually earn revenue.
const reportStatusFilter = `status IN ('confirmed', 'completed')`

// GetRoomReport aggregates confirmed and completed bookings on the room whose
// ranges intersect the period.
func (db *DB) GetRoomReport(ctx context.Context, roomID int64, period availability.DateRange) (*models.BookingReport, error) {
	query := `SELECT COUNT(*),
                     COALESCE(SUM(julianday(end_date) - julianday(start_date)), 0),
                     COALESCE(SUM(total_price), 0)
              FROM bookings
              WHERE room_id = ? AND ` + reportStatusFilter + `
                AND start_date < ? AND ? < end_date`
	var report models.BookingReport
	var nights float64
	err := db.QueryRowContext(ctx, query, roomID, formatDate(period.End), formatDate(period.Start)).
		Scan(&report.Count, &nights, &report.Revenue)
	if err != nil {
		return nil, fmt.Errorf("failed to get room report: %w", err)
	}
	report.Nights = int(nights)
	return &report, nil
}

// GetHostReport aggregates over every room belonging to the host.
func (db *DB) GetHostReport(ctx context.Context, hostID int64, period availability.DateRange) (*models.BookingReport, error) {
	query := `SELECT COUNT(*),
                     COALESCE(SUM(julianday(b.end_date) - julianday(b.start_date)), 0),
                     COALESCE(SUM(b.total_price), 0)
              FROM bookings b
              JOIN rooms r ON b.room_id = r.id
              JOIN accommodations a ON r.accommodation_id = a.id
              WHERE a.host_id = ? AND b.` + reportStatusFilter + `
                AND b.start_date < ? AND ? < b.end_date`
	var report models.BookingReport
	var nights float64
	err := db.QueryRowContext(ctx, query, hostID, formatDate(period.End), formatDate(period.Start)).
		Scan(&report.Count, &nights, &report.Revenue)
	if err != nil {
		return nil, fmt.Errorf("failed to get host report: %w", err)
	}
	report.Nights = int(nights)
	return &report, nil
}

// GetIncomeByAccommodation returns total income per accommodation, highest
// first.
func (db *DB) GetIncomeByAccommodation(ctx context.Context) ([]*models.AccommodationIncome, error) {
	query := `SELECT a.id, a.name, COALESCE(SUM(b.total_price), 0) AS total_income
              FROM accommodations a
              JOIN rooms r ON r.accommodation_id = a.id
              JOIN bookings b ON b.room_id = r.id AND b.` + reportStatusFilter + `
              GROUP BY a.id, a.name
              ORDER BY total_income DESC`
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get income by accommodation: %w", err)
	}
	defer rows.Close()

	var incomes []*models.AccommodationIncome
	for rows.Next() {
		var inc models.AccommodationIncome
		if err := rows.Scan(&inc.AccommodationID, &inc.AccommodationName, &inc.TotalIncome); err != nil {
			return nil, fmt.Errorf("failed to scan income row: %w", err)
		}
		incomes = append(incomes, &inc)
	}
	return incomes, rows.Err()
}

var periodFormats = map[string]string{
	"day":   "%Y-%m-%d",
	"week":  "%Y-W%W",
	"month": "%Y-%m",
}

// GetBookingsGroupedByPeriod groups booking counts by day, week or month of
// check-in; accommodationID of 0 means all accommodations.
func (db *DB) GetBookingsGroupedByPeriod(ctx context.Context, period string, accommodationID int64) ([]*models.PeriodBookingCount, error) {
	format, ok := periodFormats[period]
	if !ok {
		return nil, fmt.Errorf("invalid period %q: use day, week or month", period)
	}

	query := `SELECT strftime('` + format + `', b.start_date) AS period, COUNT(b.id)
              FROM bookings b
              JOIN rooms r ON b.room_id = r.id
              WHERE (? = 0 OR r.accommodation_id = ?)
              GROUP BY period
              ORDER BY period`
	rows, err := db.QueryContext(ctx, query, accommodationID, accommodationID)
	if err != nil {
		return nil, fmt.Errorf("failed to group bookings by period: %w", err)
	}
	defer rows.Close()

	var counts []*models.PeriodBookingCount
	for rows.Next() {
		var c models.PeriodBookingCount
		if err := rows.Scan(&c.Period, &c.Count); err != nil {
			return nil, fmt.Errorf("failed to scan period row: %w", err)
		}
		counts = append(counts, &c)
	}
	return counts, rows.Err()
}

// GetRoomCalendar expands the occupied ranges over a window into per-day
// availability, used by the export and the availability endpoint.
func (db *DB) GetRoomCalendar(ctx context.Context, roomID int64, window availability.DateRange) ([]*models.RoomAvailability, error) {
	occupied, err := db.OccupiedRanges(ctx, roomID, window)
	if err != nil {
		return nil, err
	}

	var days []*models.RoomAvailability
	for d := window.Start; d.Before(window.End); d = d.AddDate(0, 0, 1) {
		day := &models.RoomAvailability{Date: d, RoomID: roomID, Available: true}
		for i := range occupied {
			if occupied[i].Contains(d) {
				day.Available = false
				day.Source = string(occupied[i].SourceType)
				break
			}
		}
		days = append(days, day)
	}
	return days, nil
}
