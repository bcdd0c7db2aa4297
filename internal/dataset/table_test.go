package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"disastermap/internal/models"
)

func sampleRecords() []models.Record {
	return []models.Record{
		{Latitude: 35.0, Longitude: 139.0, TotalDeaths: 1000, TotalDamage: 500000, StartYear: 2011, Type: models.DisasterTypeEarthquake, Location: "Japan"},
		{Latitude: 38.3, Longitude: 142.4, TotalDeaths: 250, TotalDamage: 80000, StartYear: 2011, Type: models.DisasterTypeEarthquake, Location: "Sendai"},
		{Latitude: -6.2, Longitude: 106.8, TotalDeaths: 52, TotalDamage: 12000, StartYear: 2007, Type: models.DisasterTypeFlood, Location: "Jakarta"},
		{Latitude: 25.0, Longitude: -80.0, TotalDeaths: 10, TotalDamage: 90000, StartYear: 2011, Type: models.DisasterTypeStorm, Location: "Florida"},
	}
}

func TestTable_Filter(t *testing.T) {
	table := NewTable(sampleRecords())

	got := table.Filter(2011, models.DisasterTypeEarthquake)
	require.Len(t, got, 2)
	for _, r := range got {
		assert.Equal(t, 2011, r.StartYear)
		assert.Equal(t, models.DisasterTypeEarthquake, r.Type)
	}
}

func TestTable_FilterNoMatch(t *testing.T) {
	table := NewTable(sampleRecords())

	assert.Empty(t, table.Filter(1850, models.DisasterTypeDrought))
	assert.Empty(t, table.Filter(2007, models.DisasterTypeEarthquake))
}

func TestTable_YearRange(t *testing.T) {
	table := NewTable(sampleRecords())
	minYear, maxYear := table.YearRange()
	assert.Equal(t, 2007, minYear)
	assert.Equal(t, 2011, maxYear)

	empty := NewTable(nil)
	minYear, maxYear = empty.YearRange()
	assert.Equal(t, 0, minYear)
	assert.Equal(t, 0, maxYear)
}

func TestTable_Types(t *testing.T) {
	table := NewTable(sampleRecords())

	assert.Equal(t, []models.DisasterType{
		models.DisasterTypeEarthquake,
		models.DisasterTypeFlood,
		models.DisasterTypeStorm,
	}, table.Types())
}

func TestTable_RecordsIsACopy(t *testing.T) {
	table := NewTable(sampleRecords())

	records := table.Records()
	records[0].Location = "mutated"

	assert.Equal(t, "Japan", table.Records()[0].Location)
}

func TestSummarize(t *testing.T) {
	table := NewTable(sampleRecords())
	filtered := table.Filter(2011, models.DisasterTypeEarthquake)

	stats := Summarize(filtered)
	assert.Equal(t, 2, stats.TotalEvents)
	assert.Equal(t, int64(1250), stats.TotalDeaths)
	assert.Equal(t, 580000.0, stats.TotalDamage)
}

func TestSummarize_Idempotent(t *testing.T) {
	filtered := NewTable(sampleRecords()).Filter(2011, models.DisasterTypeEarthquake)

	assert.Equal(t, Summarize(filtered), Summarize(filtered))
}

func TestSummarize_Empty(t *testing.T) {
	stats := Summarize(nil)
	assert.Equal(t, Stats{}, stats)
}
