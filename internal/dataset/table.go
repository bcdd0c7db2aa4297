package dataset

import (
	"slices"

	"disastermap/internal/models"
)

// Table is the immutable disaster record set built once at startup. No
// record is mutated after construction and the rendering layer never writes
// back into it.
type Table struct {
	records []models.Record
	minYear int
	maxYear int
	types   []models.DisasterType
}

func NewTable(records []models.Record) *Table {
	t := &Table{records: slices.Clone(records)}

	seen := map[models.DisasterType]bool{}
	for i, r := range t.records {
		if i == 0 || r.StartYear < t.minYear {
			t.minYear = r.StartYear
		}
		if i == 0 || r.StartYear > t.maxYear {
			t.maxYear = r.StartYear
		}
		seen[r.Type] = true
	}
	for _, dt := range models.AllowedTypes() {
		if seen[dt] {
			t.types = append(t.types, dt)
		}
	}

	return t
}

func (t *Table) Len() int {
	return len(t.records)
}

// Records returns a copy of the full record set.
func (t *Table) Records() []models.Record {
	return slices.Clone(t.records)
}

// Filter returns the records matching the selected year and type exactly.
// A (year, type) pair not present in any record yields an empty slice.
func (t *Table) Filter(year int, dt models.DisasterType) []models.Record {
	var out []models.Record
	for _, r := range t.records {
		if r.StartYear == year && r.Type == dt {
			out = append(out, r)
		}
	}
	return out
}

// YearRange returns the minimum and maximum StartYear present in the table,
// or (0, 0) for an empty table.
func (t *Table) YearRange() (min, max int) {
	return t.minYear, t.maxYear
}

// Types returns the allow-listed disaster types present in the data, sorted.
func (t *Table) Types() []models.DisasterType {
	return slices.Clone(t.types)
}

// Stats is the summary recomputed from scratch on every view update.
type Stats struct {
	TotalEvents int     `json:"total_events"`
	TotalDeaths int64   `json:"total_deaths"`
	TotalDamage float64 `json:"total_damage"`
}

// Summarize aggregates a filtered record set. Pure function of its input.
func Summarize(records []models.Record) Stats {
	s := Stats{TotalEvents: len(records)}
	for _, r := range records {
		s.TotalDeaths += r.TotalDeaths
		s.TotalDamage += r.TotalDamage
	}
	return s
}
