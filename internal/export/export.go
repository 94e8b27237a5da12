package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"stayhaven/internal/availability"
	"stayhaven/internal/config"
	"stayhaven/internal/models"

	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"
)

// DataSource is the slice of the storage layer the exporter needs.
type DataSource interface {
	GetAccommodation(ctx context.Context, id int64) (*models.Accommodation, error)
	GetRoomsByAccommodation(ctx context.Context, accommodationID int64) ([]*models.Room, error)
	GetRoomCalendar(ctx context.Context, roomID int64, window availability.DateRange) ([]*models.RoomAvailability, error)
	GetRoomReport(ctx context.Context, roomID int64, period availability.DateRange) (*models.BookingReport, error)
	GetIncomeByAccommodation(ctx context.Context) ([]*models.AccommodationIncome, error)
}

// Exporter writes occupancy and earnings spreadsheets for hosts.
type Exporter struct {
	db     DataSource
	config config.ExportConfig
	logger zerolog.Logger
}

func NewExporter(db DataSource, cfg config.ExportConfig, logger *zerolog.Logger) *Exporter {
	exportLogger := zerolog.Nop()
	if logger != nil {
		exportLogger = logger.With().Str("component", "exporter").Logger()
	}
	if cfg.Path == "" {
		cfg.Path = "exports"
	}
	return &Exporter{db: db, config: cfg, logger: exportLogger}
}

// OccupancyCalendar renders one row per room and one column per day over the
// window, marking each day free, booked or blocked.
func (e *Exporter) OccupancyCalendar(ctx context.Context, accommodationID int64, window availability.DateRange) (string, error) {
	if !window.IsValid() {
		return "", fmt.Errorf("invalid export window")
	}
	if err := os.MkdirAll(e.config.Path, 0o755); err != nil {
		return "", fmt.Errorf("create export directory: %w", err)
	}

	acc, err := e.db.GetAccommodation(ctx, accommodationID)
	if err != nil {
		return "", fmt.Errorf("get accommodation: %w", err)
	}
	rooms, err := e.db.GetRoomsByAccommodation(ctx, accommodationID)
	if err != nil {
		return "", fmt.Errorf("get rooms: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Occupancy"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return "", fmt.Errorf("create sheet: %w", err)
	}
	f.SetActiveSheet(index)

	_ = f.SetCellValue(sheet, "A1", fmt.Sprintf("%s: %s - %s",
		acc.Name, window.Start.Format("2006-01-02"), window.End.AddDate(0, 0, -1).Format("2006-01-02")))

	titleStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 14},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	_ = f.SetCellStyle(sheet, "A1", "A1", titleStyle)

	dateCols := e.writeDateHeaders(f, sheet, window)

	lastCol, _ := excelize.CoordinatesToCellName(len(dateCols)+1, 1)
	_ = f.MergeCell(sheet, "A1", lastCol)

	freeStyle, _ := f.NewStyle(&excelize.Style{
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#E2EFDA"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	bookedStyle, _ := f.NewStyle(&excelize.Style{
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#FFC7CE"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	blockedStyle, _ := f.NewStyle(&excelize.Style{
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#D9D9D9"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})

	row := 3
	for _, room := range rooms {
		labelCell, _ := excelize.CoordinatesToCellName(1, row)
		_ = f.SetCellValue(sheet, labelCell, fmt.Sprintf("%s (cap %d)", room.RoomType, room.Capacity))

		days, err := e.db.GetRoomCalendar(ctx, room.ID, window)
		if err != nil {
			return "", fmt.Errorf("room %d calendar: %w", room.ID, err)
		}
		for _, day := range days {
			col, ok := dateCols[day.Date.Format("2006-01-02")]
			if !ok {
				continue
			}
			cell, _ := excelize.CoordinatesToCellName(col, row)
			switch {
			case day.Available:
				_ = f.SetCellValue(sheet, cell, "free")
				_ = f.SetCellStyle(sheet, cell, cell, freeStyle)
			case day.Source == string(availability.SourceBlock):
				_ = f.SetCellValue(sheet, cell, "blocked")
				_ = f.SetCellStyle(sheet, cell, cell, blockedStyle)
			default:
				_ = f.SetCellValue(sheet, cell, "booked")
				_ = f.SetCellStyle(sheet, cell, cell, bookedStyle)
			}
		}
		row++
	}

	_ = f.SetColWidth(sheet, "A", "A", 25)
	_ = f.DeleteSheet("Sheet1")

	fileName := fmt.Sprintf("occupancy_%d_%s.xlsx", accommodationID, window.Start.Format("2006-01-02"))
	path := filepath.Join(e.config.Path, fileName)
	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("save file: %w", err)
	}

	e.logger.Info().Str("path", path).Int("rooms", len(rooms)).Msg("occupancy export written")
	return path, nil
}

func (e *Exporter) writeDateHeaders(f *excelize.File, sheet string, window availability.DateRange) map[string]int {
	headerStyle, _ := f.NewStyle(&excelize.Style{
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#DDEBF7"}, Pattern: 1},
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})

	cols := make(map[string]int)
	col := 2
	for d := window.Start; d.Before(window.End); d = d.AddDate(0, 0, 1) {
		cell, _ := excelize.CoordinatesToCellName(col, 2)
		_ = f.SetCellValue(sheet, cell, d.Format("Jan 02"))
		_ = f.SetCellStyle(sheet, cell, cell, headerStyle)
		cols[d.Format("2006-01-02")] = col
		col++
	}
	return cols
}

// EarningsReport writes per-room revenue for an accommodation over the
// period, plus a portfolio sheet ranking every accommodation by income.
func (e *Exporter) EarningsReport(ctx context.Context, accommodationID int64, period availability.DateRange) (string, error) {
	if !period.IsValid() {
		return "", fmt.Errorf("invalid report period")
	}
	if err := os.MkdirAll(e.config.Path, 0o755); err != nil {
		return "", fmt.Errorf("create export directory: %w", err)
	}

	acc, err := e.db.GetAccommodation(ctx, accommodationID)
	if err != nil {
		return "", fmt.Errorf("get accommodation: %w", err)
	}
	rooms, err := e.db.GetRoomsByAccommodation(ctx, accommodationID)
	if err != nil {
		return "", fmt.Errorf("get rooms: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Earnings"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return "", fmt.Errorf("create sheet: %w", err)
	}
	f.SetActiveSheet(index)

	_ = f.SetCellValue(sheet, "A1", fmt.Sprintf("%s earnings %s - %s",
		acc.Name, period.Start.Format("2006-01-02"), period.End.Format("2006-01-02")))

	headers := []string{"Room", "Bookings", "Nights", "Revenue"}
	headerStyle, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 2)
		_ = f.SetCellValue(sheet, cell, header)
		_ = f.SetCellStyle(sheet, cell, cell, headerStyle)
	}

	row := 3
	var totalRevenue float64
	for _, room := range rooms {
		report, err := e.db.GetRoomReport(ctx, room.ID, period)
		if err != nil {
			return "", fmt.Errorf("room %d report: %w", room.ID, err)
		}
		_ = f.SetCellValue(sheet, fmt.Sprintf("A%d", row), room.RoomType)
		_ = f.SetCellValue(sheet, fmt.Sprintf("B%d", row), report.Count)
		_ = f.SetCellValue(sheet, fmt.Sprintf("C%d", row), report.Nights)
		_ = f.SetCellValue(sheet, fmt.Sprintf("D%d", row), report.Revenue)
		totalRevenue += report.Revenue
		row++
	}

	_ = f.SetCellValue(sheet, fmt.Sprintf("A%d", row), "Total")
	_ = f.SetCellValue(sheet, fmt.Sprintf("D%d", row), totalRevenue)
	_ = f.SetCellStyle(sheet, fmt.Sprintf("A%d", row), fmt.Sprintf("D%d", row), headerStyle)

	if err := e.writePortfolioSheet(ctx, f); err != nil {
		return "", err
	}

	_ = f.SetColWidth(sheet, "A", "A", 25)
	_ = f.DeleteSheet("Sheet1")

	fileName := fmt.Sprintf("earnings_%d_%s.xlsx", accommodationID, time.Now().Format("2006-01-02_15-04-05"))
	path := filepath.Join(e.config.Path, fileName)
	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("save file: %w", err)
	}

	e.logger.Info().Str("path", path).Float64("total_revenue", totalRevenue).Msg("earnings export written")
	return path, nil
}

func (e *Exporter) writePortfolioSheet(ctx context.Context, f *excelize.File) error {
	incomes, err := e.db.GetIncomeByAccommodation(ctx)
	if err != nil {
		return fmt.Errorf("income by accommodation: %w", err)
	}

	sheet := "Portfolio"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("create portfolio sheet: %w", err)
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	_ = f.SetCellValue(sheet, "A1", "Accommodation")
	_ = f.SetCellValue(sheet, "B1", "Total income")
	_ = f.SetCellStyle(sheet, "A1", "B1", headerStyle)

	for i, inc := range incomes {
		row := i + 2
		_ = f.SetCellValue(sheet, fmt.Sprintf("A%d", row), inc.AccommodationName)
		_ = f.SetCellValue(sheet, fmt.Sprintf("B%d", row), inc.TotalIncome)
	}
	_ = f.SetColWidth(sheet, "A", "A", 30)
	return nil
}
