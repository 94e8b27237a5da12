package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"stayhaven/internal/availability"
	"stayhaven/internal/models"
)

// CreateBlockWithLock inserts a host availability block inside an immediate
// transaction with the same overlap re-check as booking creation, preserving
// the pairwise non-overlap invariant between blocks and live bookings.
func (db *DB) CreateBlockWithLock(ctx context.Context, block *models.AvailabilityBlock) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	proposed := availability.DateRange{Start: block.StartDate, End: block.EndDate}
	ranges, err := occupiedRanges(ctx, tx, block.RoomID, proposed)
	if err != nil {
		return fmt.Errorf("failed to check occupied ranges in tx: %w", err)
	}
	for i := range ranges {
		if proposed.Overlaps(ranges[i].DateRange) {
			return ErrConflict
		}
	}

	now := time.Now()
	query := `INSERT INTO availability_blocks (room_id, start_date, end_date, reason, created_by, created_at)
              VALUES (?, ?, ?, ?, ?, ?)`
	result, err := tx.ExecContext(ctx, query,
		block.RoomID,
		formatDate(block.StartDate),
		formatDate(block.EndDate),
		block.Reason,
		block.CreatedBy,
		now,
	)
	if err != nil {
		return fmt.Errorf("failed to insert block in tx: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id in tx: %w", err)
	}
	block.ID = id
	block.CreatedAt = now

	return tx.Commit()
}

func (db *DB) DeleteBlock(ctx context.Context, id int64) error {
	result, err := db.ExecContext(ctx, `DELETE FROM availability_blocks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete block: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return ErrBlockNotFound
	}
	return nil
}

func (db *DB) GetBlock(ctx context.Context, id int64) (*models.AvailabilityBlock, error) {
	var b models.AvailabilityBlock
	var startStr, endStr string
	query := `SELECT id, room_id, start_date, end_date, reason, created_by, created_at
              FROM availability_blocks WHERE id = ?`
	err := db.QueryRowContext(ctx, query, id).Scan(
		&b.ID, &b.RoomID, &startStr, &endStr, &b.Reason, &b.CreatedBy, &b.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBlockNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get block: %w", err)
	}
	if b.StartDate, err = parseDate(startStr); err != nil {
		return nil, fmt.Errorf("failed to parse block start date %s: %w", startStr, err)
	}
	if b.EndDate, err = parseDate(endStr); err != nil {
		return nil, fmt.Errorf("failed to parse block end date %s: %w", endStr, err)
	}
	return &b, nil
}

func (db *DB) GetBlocksByRoom(ctx context.Context, roomID int64) ([]*models.AvailabilityBlock, error) {
	query := `SELECT id, room_id, start_date, end_date, reason, created_by, created_at
              FROM availability_blocks WHERE room_id = ? ORDER BY start_date`
	rows, err := db.QueryContext(ctx, query, roomID)
	if err != nil {
		return nil, fmt.Errorf("failed to get blocks: %w", err)
	}
	defer rows.Close()

	var blocks []*models.AvailabilityBlock
	for rows.Next() {
		var b models.AvailabilityBlock
		var startStr, endStr string
		if err := rows.Scan(&b.ID, &b.RoomID, &startStr, &endStr, &b.Reason, &b.CreatedBy, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan block: %w", err)
		}
		if b.StartDate, err = parseDate(startStr); err != nil {
			return nil, fmt.Errorf("failed to parse block start date %s: %w", startStr, err)
		}
		if b.EndDate, err = parseDate(endStr); err != nil {
			return nil, fmt.Errorf("failed to parse block end date %s: %w", endStr, err)
		}
		blocks = append(blocks, &b)
	}
	return blocks, rows.Err()
}
