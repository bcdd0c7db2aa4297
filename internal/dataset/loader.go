package dataset

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"os"
	"strconv"
	"strings"

	"disastermap/internal/models"
)

// Source dataset column names. The damage column's comma would be eaten by
// encoding/json struct tags, so rows are decoded as maps and coerced by key.
const (
	colLatitude  = "Latitude"
	colLongitude = "Longitude"
	colDeaths    = "Total Deaths"
	colDamage    = "Total Damage, Adjusted ('000 US$)"
	colStartYear = "Start Year"
	colType      = "Disaster Type"
	colLocation  = "Location"
)

// Report describes the outcome of a load.
type Report struct {
	Loaded  int
	Dropped int
}

// Load builds the disaster table from the file at path. Paths ending in .db
// or .sqlite are read as SQLite files produced by the importer; anything
// else is parsed as a JSON array of record objects. Any I/O or parse failure
// is logged and yields an empty table so the dashboard still starts.
func Load(path string) (*Table, Report) {
	var (
		records []models.Record
		report  Report
		err     error
	)

	switch {
	case strings.HasSuffix(path, ".db"), strings.HasSuffix(path, ".sqlite"):
		records, report, err = ReadSQLite(path)
	default:
		records, report, err = ReadJSON(path)
	}
	if err != nil {
		slog.Error("failed to load dataset, starting empty", "path", path, "error", err)
		return NewTable(nil), Report{}
	}

	return NewTable(records), report
}

// ReadJSON parses and cleans a JSON array of disaster record objects.
func ReadJSON(path string) ([]models.Record, Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, Report{}, fmt.Errorf("reading dataset: %w", err)
	}

	var rows []map[string]any
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, Report{}, fmt.Errorf("decoding dataset: %w", err)
	}

	if err := checkColumns(rows); err != nil {
		return nil, Report{}, err
	}

	records := make([]models.Record, 0, len(rows))
	for _, row := range rows {
		rec, ok := cleanRow(row)
		if !ok {
			continue
		}
		records = append(records, rec)
	}

	return records, Report{Loaded: len(records), Dropped: len(rows) - len(records)}, nil
}

// checkColumns verifies every expected column appears somewhere in the
// record set. A wholly absent column means the wrong file was supplied,
// which is a load failure rather than a per-row cleaning matter.
func checkColumns(rows []map[string]any) error {
	if len(rows) == 0 {
		return nil
	}

	required := []string{
		colLatitude, colLongitude, colDeaths, colDamage,
		colStartYear, colType, colLocation,
	}
	present := map[string]bool{}
	for _, row := range rows {
		for key := range row {
			present[key] = true
		}
	}
	for _, col := range required {
		if !present[col] {
			return fmt.Errorf("dataset missing required column %q", col)
		}
	}
	return nil
}

// cleanRow coerces one raw row into a Record. Rows missing latitude,
// longitude, disaster type, or location are unrecoverable for a map-based
// tool and are dropped; unknown deaths, damage, or year default to zero
// because the event itself is still valid.
func cleanRow(row map[string]any) (models.Record, bool) {
	lat, ok := coerceFloat(row[colLatitude])
	if !ok {
		return models.Record{}, false
	}
	lon, ok := coerceFloat(row[colLongitude])
	if !ok {
		return models.Record{}, false
	}

	typeText, ok := coerceText(row[colType])
	if !ok {
		return models.Record{}, false
	}
	dt := models.DisasterType(typeText)
	if !dt.Valid() {
		return models.Record{}, false
	}

	location, ok := coerceText(row[colLocation])
	if !ok {
		return models.Record{}, false
	}
	if strings.TrimSpace(location) == "" {
		location = "Unknown"
	}

	deaths, _ := coerceFloat(row[colDeaths])
	damage, _ := coerceFloat(row[colDamage])
	year, _ := coerceFloat(row[colStartYear])

	return models.Record{
		Latitude:    lat,
		Longitude:   lon,
		TotalDeaths: int64(max(deaths, 0)),
		TotalDamage: max(damage, 0),
		StartYear:   int(year),
		Type:        dt,
		Location:    location,
	}, true
}

// coerceFloat accepts JSON numbers and numeric strings. Anything else,
// including null, empty strings, and non-finite values like "NaN" or "Inf",
// reports missing. Non-finite floats cannot be encoded as JSON and are as
// useless for mapping as an absent coordinate.
func coerceFloat(v any) (float64, bool) {
	var f float64
	switch x := v.(type) {
	case float64:
		f = x
	case json.Number:
		parsed, err := x.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	case string:
		s := strings.TrimSpace(x)
		if s == "" {
			return 0, false
		}
		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}

	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// coerceText reports missing for absent and null values so callers can drop
// the row. Present-but-empty strings are returned as-is.
func coerceText(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok
}
