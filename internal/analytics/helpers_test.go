package analytics

import (
	"testing"
	"time"

	"github.com/bobmcallan/ukdata-mcp/internal/models"
)

func holiday(region, date, title, notes string, bunting bool) models.Holiday {
	return models.NewHoliday(models.RawHoliday{Title: title, Date: date, Notes: notes, Bunting: bunting}, region)
}

func day(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse(models.DateLayout, s)
	if err != nil {
		t.Fatalf("parse %s: %v", s, err)
	}
	return d
}

// scenarioA is three england-and-wales holidays in 2024, one a substitute.
func scenarioA() []models.Holiday {
	return []models.Holiday{
		holiday(models.RegionEnglandAndWales, "2024-01-01", "New Year’s Day", "", true),
		holiday(models.RegionEnglandAndWales, "2024-12-25", "Christmas Day", "", true),
		holiday(models.RegionEnglandAndWales, "2024-12-26", "Boxing Day", "Substitute day", true),
	}
}

// ukSample is a cut-down 2024 calendar across all three regions.
func ukSample() []models.Holiday {
	ew := models.RegionEnglandAndWales
	sc := models.RegionScotland
	ni := models.RegionNorthernIreland
	return []models.Holiday{
		holiday(ew, "2024-01-01", "New Year’s Day", "", true),
		holiday(ew, "2024-08-26", "Summer bank holiday", "", true),
		holiday(ew, "2024-12-25", "Christmas Day", "", true),
		holiday(sc, "2024-01-01", "New Year’s Day", "", true),
		holiday(sc, "2024-01-02", "2nd January", "", true),
		holiday(sc, "2024-08-05", "Summer bank holiday", "", true),
		holiday(sc, "2024-12-02", "St Andrew’s Day", "Substitute day", true),
		holiday(sc, "2024-12-25", "Christmas Day", "", true),
		holiday(ni, "2024-01-01", "New Year’s Day", "", true),
		holiday(ni, "2024-03-18", "St Patrick’s Day", "", true),
		holiday(ni, "2024-07-12", "Battle of the Boyne (Orangemen’s Day)", "", false),
		holiday(ni, "2024-08-26", "Summer bank holiday", "", true),
		holiday(ni, "2024-12-25", "Christmas Day", "", true),
	}
}
