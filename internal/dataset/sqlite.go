package dataset

import (
	"database/sql"
	"fmt"
	"math"

	_ "modernc.org/sqlite"

	"disastermap/internal/models"
)

const schema = `
	CREATE TABLE IF NOT EXISTS disasters (
		latitude REAL NOT NULL,
		longitude REAL NOT NULL,
		total_deaths INTEGER NOT NULL,
		total_damage REAL NOT NULL,
		start_year INTEGER NOT NULL,
		disaster_type TEXT NOT NULL,
		location TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_disasters_start_year ON disasters(start_year);
	CREATE INDEX IF NOT EXISTS idx_disasters_type ON disasters(disaster_type);
`

func openSQLite(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("error while pinging database: %w", err)
	}
	return db, nil
}

// ReadSQLite loads records from a database produced by WriteSQLite. The
// allow-list, finite-coordinate, and non-negativity rules are re-applied on
// the way in so a hand-edited database cannot break the table invariants.
func ReadSQLite(path string) ([]models.Record, Report, error) {
	db, err := openSQLite(path)
	if err != nil {
		return nil, Report{}, err
	}
	defer db.Close()

	rows, err := db.Query(`
		SELECT latitude, longitude, total_deaths, total_damage, start_year, disaster_type, location
		FROM disasters`)
	if err != nil {
		return nil, Report{}, fmt.Errorf("error querying disasters: %w", err)
	}
	defer rows.Close()

	var (
		records []models.Record
		dropped int
	)
	for rows.Next() {
		var (
			r        models.Record
			typeText string
		)
		if err := rows.Scan(&r.Latitude, &r.Longitude, &r.TotalDeaths, &r.TotalDamage,
			&r.StartYear, &typeText, &r.Location); err != nil {
			return nil, Report{}, fmt.Errorf("error scanning disaster row: %w", err)
		}

		dt := models.DisasterType(typeText)
		if !dt.Valid() || r.Location == "" || !finite(r.Latitude) || !finite(r.Longitude) {
			dropped++
			continue
		}
		r.Type = dt
		r.TotalDeaths = max(r.TotalDeaths, 0)
		r.TotalDamage = max(r.TotalDamage, 0)
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, Report{}, fmt.Errorf("error reading disaster rows: %w", err)
	}

	return records, Report{Loaded: len(records), Dropped: dropped}, nil
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// WriteSQLite stores a cleaned record set, replacing any existing rows.
func WriteSQLite(path string, records []models.Record) error {
	db, err := openSQLite(path)
	if err != nil {
		return err
	}
	defer db.Close()

	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("error while migrating database: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("error starting transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM disasters`); err != nil {
		return fmt.Errorf("error clearing disasters: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO disasters (latitude, longitude, total_deaths, total_damage, start_year, disaster_type, location)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("error preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range records {
		if _, err := stmt.Exec(r.Latitude, r.Longitude, r.TotalDeaths, r.TotalDamage,
			r.StartYear, string(r.Type), r.Location); err != nil {
			return fmt.Errorf("error inserting disaster: %w", err)
		}
	}

	return tx.Commit()
}
