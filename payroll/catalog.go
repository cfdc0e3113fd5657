package payroll

import (
	"sort"
	"time"

	"github.com/pivolan/payroll_analyzer/domain/models"
)

var textDimensions = []models.Dimension{
	models.DimAgency, models.DimGender, models.DimReason, models.DimAnalyst,
	models.DimPayrollMonth, models.DimUploadedBy, models.DimLRDBank, models.DimUSDBank,
}

// BuildCatalog lists the selectable values of every dimension.
// Analyst and uploaded_by are unavailable when no record carries a value.
func BuildCatalog(t *models.Table) models.Catalog {
	catalog := models.Catalog{}
	if t == nil {
		for _, d := range models.Dimensions() {
			catalog[d] = models.CatalogEntry{}
		}
		return catalog
	}
	for _, d := range textDimensions {
		catalog[d] = textEntry(t, d)
	}
	catalog[models.DimBankLane] = laneEntry(t)
	catalog[models.DimSalaryBand] = bandEntry(t)
	catalog[models.DimUploadedAt] = dateEntry(t)
	return catalog
}

func textEntry(t *models.Table, d models.Dimension) models.CatalogEntry {
	if !dimensionAvailable(t, d) {
		return models.CatalogEntry{}
	}
	seen := map[string]bool{}
	values := []string{}
	for i := range t.Records {
		v, ok := dimensionValue(&t.Records[i], d)
		if !ok || seen[v] {
			continue
		}
		seen[v] = true
		values = append(values, v)
	}
	sort.Strings(values)
	if len(values) == 0 && (d == models.DimAnalyst || d == models.DimUploadedBy) {
		return models.CatalogEntry{}
	}
	return models.CatalogEntry{Available: true, Values: values}
}

func laneEntry(t *models.Table) models.CatalogEntry {
	var lanes []string
	if t.Schema.Has(models.FieldLRDBank) {
		lanes = append(lanes, string(models.LaneLRD))
	}
	if t.Schema.Has(models.FieldUSDBank) {
		lanes = append(lanes, string(models.LaneUSD))
	}
	return models.CatalogEntry{Available: len(lanes) > 0, Values: lanes}
}

// bandEntry lists the occupied bands in bin order rather than lexicographically.
func bandEntry(t *models.Table) models.CatalogEntry {
	if !t.HasBands() {
		return models.CatalogEntry{}
	}
	used := map[string]bool{}
	for i := range t.Records {
		used[t.Records[i].SalaryBand] = true
	}
	values := []string{}
	for _, b := range t.Bands {
		if used[b] {
			values = append(values, b)
		}
	}
	return models.CatalogEntry{Available: true, Values: values}
}

func dateEntry(t *models.Table) models.CatalogEntry {
	if !datesAvailable(t) {
		return models.CatalogEntry{}
	}
	var min, max time.Time
	first := true
	for i := range t.Records {
		ts := t.Records[i].UploadedAt
		if !ts.Valid {
			continue
		}
		if first || ts.Time.Before(min) {
			min = ts.Time
		}
		if first || ts.Time.After(max) {
			max = ts.Time
		}
		first = false
	}
	return models.CatalogEntry{Available: true, Min: startOfDay(min), Max: startOfDay(max)}
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
