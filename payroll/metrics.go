package payroll

import (
	"sort"

	"github.com/pivolan/payroll_analyzer/domain/models"
)

// Summarize computes totals, the top adjustments by Difference and the
// per-agency and per-reason breakdowns of a view. The Difference column is required.
func Summarize(view *models.Table) (*models.MetricsSnapshot, error) {
	if view == nil {
		return nil, ErrNilTable
	}
	if !view.Schema.Has(models.FieldDifference) {
		return nil, &MissingColumnError{Field: models.FieldDifference}
	}
	snap := &models.MetricsSnapshot{Transactions: view.Len()}
	for i := range view.Records {
		r := &view.Records[i]
		snap.TotalAdjSalary += r.AdjSalary
		snap.TotalCurrentSalary += r.CurrentSalary
		snap.TotalDifference += r.Difference
	}
	snap.Top = topAdjustments(view.Records, models.TopN)

	if view.Schema.Has(models.FieldAgency) {
		snap.DifferenceByAgency = groupTotals(view.Records,
			func(r *models.Record) string { return r.Agency },
			func(r *models.Record) float64 { return r.Difference })
	}
	if view.Schema.Has(models.FieldReason) {
		snap.TransactionsByReason = groupTotals(view.Records,
			func(r *models.Record) string { return r.Reason },
			func(r *models.Record) float64 { return 1 })
	}
	return snap, nil
}

// topAdjustments returns the n records with the largest Difference, ties kept in source order.
func topAdjustments(records []models.Record, n int) []models.Record {
	sorted := make([]models.Record, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Difference > sorted[j].Difference
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

// groupTotals sums value per non-empty key, largest first, ties in first-seen order.
func groupTotals(records []models.Record, key func(*models.Record) string, value func(*models.Record) float64) []models.GroupTotal {
	index := map[string]int{}
	groups := []models.GroupTotal{}
	for i := range records {
		r := &records[i]
		k := key(r)
		if k == "" {
			continue
		}
		pos, ok := index[k]
		if !ok {
			pos = len(groups)
			index[k] = pos
			groups = append(groups, models.GroupTotal{Label: k})
		}
		groups[pos].Value += value(r)
		groups[pos].Count++
	}
	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].Value > groups[j].Value
	})
	return groups
}
