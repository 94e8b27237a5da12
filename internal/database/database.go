package database

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog"
)

const dateLayout = "2006-01-02"

// DB wraps the sqlite store. All writes go through sql transactions; booking
// creation uses an immediate transaction so concurrent writers serialize on
// the database file rather than on in-process state.
type DB struct {
	*sql.DB
	logger *zerolog.Logger
}

func NewDB(path string, logger *zerolog.Logger) (*DB, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	// _txlock=immediate makes write transactions take the reserved lock at
	// BEGIN, so two concurrent booking attempts queue on busy_timeout instead
	// of failing at commit.
	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL&_txlock=immediate&_foreign_keys=on", path)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := createTables(db); err != nil {
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	logger.Info().Str("path", path).Msg("database initialized")
	return &DB{DB: db, logger: logger}, nil
}

func createTables(db *sql.DB) error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS users (
            id INTEGER PRIMARY KEY AUTOINCREMENT,
            email TEXT UNIQUE NOT NULL,
            username TEXT,
            role TEXT NOT NULL DEFAULT 'guest',
            is_blocked BOOLEAN NOT NULL DEFAULT 0,
            created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
            updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
        )`,
		`CREATE TABLE IF NOT EXISTS accommodations (
            id INTEGER PRIMARY KEY AUTOINCREMENT,
            host_id INTEGER NOT NULL REFERENCES users(id),
            name TEXT NOT NULL,
            location TEXT NOT NULL,
            description TEXT,
            services TEXT,
            type TEXT NOT NULL DEFAULT '-',
            pet_friendly BOOLEAN NOT NULL DEFAULT 0,
            is_active BOOLEAN NOT NULL DEFAULT 1,
            created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
            updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
            UNIQUE(host_id, name, location)
        )`,
		`CREATE TABLE IF NOT EXISTS rooms (
            id INTEGER PRIMARY KEY AUTOINCREMENT,
            accommodation_id INTEGER NOT NULL REFERENCES accommodations(id) ON DELETE CASCADE,
            room_type TEXT NOT NULL,
            capacity INTEGER NOT NULL CHECK (capacity > 0),
            beds INTEGER NOT NULL DEFAULT 1 CHECK (beds > 0),
            amenities TEXT,
            base_price REAL NOT NULL CHECK (base_price >= 0),
            min_stay INTEGER NOT NULL DEFAULT 1 CHECK (min_stay > 0),
            max_stay INTEGER NOT NULL DEFAULT 0 CHECK (max_stay >= 0),
            is_available BOOLEAN NOT NULL DEFAULT 1,
            created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
            updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
            UNIQUE(accommodation_id, room_type)
        )`,
		`CREATE TABLE IF NOT EXISTS availability_blocks (
            id INTEGER PRIMARY KEY AUTOINCREMENT,
            room_id INTEGER NOT NULL REFERENCES rooms(id) ON DELETE CASCADE,
            start_date TEXT NOT NULL,
            end_date TEXT NOT NULL,
            reason TEXT,
            created_by INTEGER NOT NULL,
            created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
            CHECK (start_date < end_date)
        )`,
		`CREATE TABLE IF NOT EXISTS bookings (
            id INTEGER PRIMARY KEY AUTOINCREMENT,
            code TEXT UNIQUE NOT NULL,
            room_id INTEGER NOT NULL REFERENCES rooms(id),
            guest_id INTEGER NOT NULL REFERENCES users(id),
            start_date TEXT NOT NULL,
            end_date TEXT NOT NULL,
            guests INTEGER NOT NULL CHECK (guests > 0),
            status TEXT NOT NULL DEFAULT 'pending',
            total_price REAL NOT NULL CHECK (total_price >= 0),
            created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
            updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
            version INTEGER NOT NULL DEFAULT 1,
            CHECK (start_date < end_date)
        )`,
		`CREATE TABLE IF NOT EXISTS outbox_queue (
            id INTEGER PRIMARY KEY AUTOINCREMENT,
            task_type TEXT NOT NULL,
            booking_id INTEGER NOT NULL,
            payload TEXT,
            status TEXT NOT NULL DEFAULT 'pending',
            retry_count INTEGER NOT NULL DEFAULT 0,
            last_error TEXT,
            created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
            processed_at DATETIME,
            next_retry_at DATETIME
        )`,

		`CREATE INDEX IF NOT EXISTS idx_accommodations_host ON accommodations(host_id)`,
		`CREATE INDEX IF NOT EXISTS idx_accommodations_location ON accommodations(location, name)`,
		`CREATE INDEX IF NOT EXISTS idx_rooms_accommodation ON rooms(accommodation_id, is_available)`,
		`CREATE INDEX IF NOT EXISTS idx_blocks_room_dates ON availability_blocks(room_id, start_date, end_date)`,
		`CREATE INDEX IF NOT EXISTS idx_bookings_room_dates ON bookings(room_id, start_date, end_date)`,
		`CREATE INDEX IF NOT EXISTS idx_bookings_status ON bookings(status)`,
		`CREATE INDEX IF NOT EXISTS idx_bookings_guest ON bookings(guest_id)`,
		`CREATE INDEX IF NOT EXISTS idx_bookings_code ON bookings(code)`,
		`CREATE INDEX IF NOT EXISTS idx_outbox_status ON outbox_queue(status, next_retry_at)`,
	}

	for _, query := range queries {
		if _, err := db.Exec(query); err != nil {
			return fmt.Errorf("error executing query %s: %w", query, err)
		}
	}
	return nil
}

func formatDate(t time.Time) string {
	return t.Format(dateLayout)
}

func parseDate(s string) (time.Time, error) {
	return time.Parse(dateLayout, s)
}

func (db *DB) Close() error {
	return db.DB.Close()
}
