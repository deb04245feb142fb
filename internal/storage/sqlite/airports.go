package sqlite

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/flightshare/flight-share/pkg/logger"

	_ "modernc.org/sqlite"
)

// AirportStorage is the airport reference store: a read-mostly IATA code to
// airport name lookup backed by SQLite
type AirportStorage struct {
	db     *sql.DB
	logger *logger.Logger
}

// airportRecord is one entry of the JSON seed file
type airportRecord struct {
	IATA   string `json:"iata"`
	Name   string `json:"name"`
	Status int    `json:"status"`
}

// Open opens (or creates) the airport database at the given path
func Open(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open airport database: %w", err)
	}
	return db, nil
}

// NewAirportStorage creates a new SQLite airport storage
func NewAirportStorage(db *sql.DB, log *logger.Logger) (*AirportStorage, error) {
	storage := &AirportStorage{
		db:     db,
		logger: log.Named("sqlite-airports"),
	}

	if err := storage.initDB(); err != nil {
		return nil, err
	}

	return storage, nil
}

// initDB initializes the database tables
func (s *AirportStorage) initDB() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS airports (
			iata TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			status INTEGER NOT NULL DEFAULT 1
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create airports table: %w", err)
	}

	_, err = s.db.Exec(`CREATE INDEX IF NOT EXISTS idx_airports_status ON airports(status)`)
	if err != nil {
		return fmt.Errorf("failed to create airport index: %w", err)
	}

	return nil
}

// SeedFromJSON imports the airport list from a JSON file when the table is
// empty. A missing seed file is not an error: lookups just resolve to "".
func (s *AirportStorage) SeedFromJSON(path string) error {
	count, err := s.Count()
	if err != nil {
		return err
	}
	if count > 0 {
		s.logger.Debug("Airport table already seeded", logger.Int("count", count))
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			s.logger.Warn("Airport seed file not found, names will be empty",
				logger.String("path", path))
			return nil
		}
		return fmt.Errorf("failed to read airport seed file: %w", err)
	}

	var records []airportRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return fmt.Errorf("failed to parse airport seed file: %w", err)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin seed transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`INSERT OR REPLACE INTO airports (iata, name, status) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare airport insert: %w", err)
	}
	defer stmt.Close()

	inserted := 0
	for _, record := range records {
		code := strings.ToUpper(strings.TrimSpace(record.IATA))
		if code == "" {
			continue
		}
		if _, err := stmt.Exec(code, record.Name, record.Status); err != nil {
			return fmt.Errorf("failed to insert airport %s: %w", code, err)
		}
		inserted++
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit airport seed: %w", err)
	}

	s.logger.Info("Seeded airport table",
		logger.String("path", path),
		logger.Int("count", inserted),
	)

	return nil
}

// GetName returns the airport name for an IATA code, or "" when the code is
// unknown or inactive
func (s *AirportStorage) GetName(iataCode string) string {
	if iataCode == "" {
		return ""
	}

	var name string
	err := s.db.QueryRow(
		`SELECT name FROM airports WHERE iata = ? AND status = 1`,
		strings.ToUpper(iataCode),
	).Scan(&name)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			s.logger.Error("Failed to query airport name",
				logger.String("iata", iataCode), logger.Error(err))
		}
		return ""
	}

	return name
}

// Count returns the number of stored airports
func (s *AirportStorage) Count() (int, error) {
	var count int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM airports`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count airports: %w", err)
	}
	return count, nil
}
