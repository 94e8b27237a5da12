package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"stayhaven/internal/models"
)

const accommodationColumns = `id, host_id, name, location, description, services, type, pet_friendly, is_active, created_at, updated_at`

func scanAccommodation(row interface{ Scan(...any) error }) (*models.Accommodation, error) {
	var a models.Accommodation
	err := row.Scan(
		&a.ID, &a.HostID, &a.Name, &a.Location, &a.Description, &a.Services,
		&a.Type, &a.PetFriendly, &a.IsActive, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (db *DB) CreateAccommodation(ctx context.Context, acc *models.Accommodation) error {
	query := `INSERT INTO accommodations (host_id, name, location, description, services, type, pet_friendly, is_active, created_at, updated_at)
              VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	now := time.Now()
	if acc.Type == "" {
		acc.Type = "-"
	}
	result, err := db.ExecContext(ctx, query,
		acc.HostID,
		acc.Name,
		acc.Location,
		acc.Description,
		acc.Services,
		acc.Type,
		acc.PetFriendly,
		acc.IsActive,
		now,
		now,
	)
	if err != nil {
		return fmt.Errorf("failed to create accommodation: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	acc.ID = id
	acc.CreatedAt = now
	acc.UpdatedAt = now

	return nil
}

func (db *DB) GetAccommodation(ctx context.Context, id int64) (*models.Accommodation, error) {
	query := `SELECT ` + accommodationColumns + ` FROM accommodations WHERE id = ?`
	acc, err := scanAccommodation(db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAccommodationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get accommodation: %w", err)
	}
	return acc, nil
}

func (db *DB) UpdateAccommodation(ctx context.Context, acc *models.Accommodation) error {
	query := `UPDATE accommodations SET name = ?, location = ?, description = ?, services = ?,
                     type = ?, pet_friendly = ?, is_active = ?, updated_at = ?
              WHERE id = ?`
	result, err := db.ExecContext(ctx, query,
		acc.Name, acc.Location, acc.Description, acc.Services,
		acc.Type, acc.PetFriendly, acc.IsActive, time.Now(), acc.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update accommodation: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return ErrAccommodationNotFound
	}
	return nil
}

func (db *DB) DeleteAccommodation(ctx context.Context, id int64) error {
	result, err := db.ExecContext(ctx, `DELETE FROM accommodations WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete accommodation: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return ErrAccommodationNotFound
	}
	return nil
}

func (db *DB) queryAccommodations(ctx context.Context, query string, args ...any) ([]*models.Accommodation, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query accommodations: %w", err)
	}
	defer rows.Close()

	var accs []*models.Accommodation
	for rows.Next() {
		a, err := scanAccommodation(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan accommodation: %w", err)
		}
		accs = append(accs, a)
	}
	return accs, rows.Err()
}

func (db *DB) GetActiveAccommodations(ctx context.Context) ([]*models.Accommodation, error) {
	query := `SELECT ` + accommodationColumns + ` FROM accommodations WHERE is_active = 1 ORDER BY location, name`
	return db.queryAccommodations(ctx, query)
}

func (db *DB) GetAccommodationsByHost(ctx context.Context, hostID int64) ([]*models.Accommodation, error) {
	query := `SELECT ` + accommodationColumns + ` FROM accommodations WHERE host_id = ? ORDER BY name`
	return db.queryAccommodations(ctx, query, hostID)
}
