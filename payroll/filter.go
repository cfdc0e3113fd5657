package payroll

import "github.com/pivolan/payroll_analyzer/domain/models"

type predicate func(r *models.Record) bool

// Apply returns the records matching every constrained dimension of spec, in source order.
// A dimension whose column the table lacks does not constrain the view, and an
// unconstrained spec returns t itself.
func Apply(t *models.Table, spec models.FilterSpec) *models.Table {
	if t == nil || spec.IsUnconstrained() {
		return t
	}
	preds := compile(t, spec)
	if len(preds) == 0 {
		return t
	}
	records := make([]models.Record, 0, len(t.Records))
	for i := range t.Records {
		if matches(&t.Records[i], preds) {
			records = append(records, t.Records[i])
		}
	}
	return t.View(records)
}

func matches(r *models.Record, preds []predicate) bool {
	for _, p := range preds {
		if !p(r) {
			return false
		}
	}
	return true
}

func compile(t *models.Table, spec models.FilterSpec) []predicate {
	var preds []predicate
	pin := func(d models.Dimension, s models.Selection) {
		want, pinned := s.Value()
		if !pinned || !dimensionAvailable(t, d) {
			return
		}
		preds = append(preds, func(r *models.Record) bool {
			got, ok := dimensionValue(r, d)
			return ok && got == want
		})
	}
	pin(models.DimAgency, spec.Agency)
	pin(models.DimGender, spec.Gender)
	pin(models.DimReason, spec.Reason)
	pin(models.DimAnalyst, spec.Analyst)
	pin(models.DimPayrollMonth, spec.PayrollMonth)
	pin(models.DimUploadedBy, spec.UploadedBy)
	pin(models.DimSalaryBand, spec.SalaryBand)

	if f, ok := spec.Bank.Lane.Field(); ok && t.Schema.Has(f) {
		if want, pinned := spec.Bank.Name.Value(); pinned {
			preds = append(preds, func(r *models.Record) bool { return r.Text(f) == want })
		}
	}

	if start, end, ok := spec.Dates.Bounds(); ok && datesAvailable(t) {
		lo, hi := models.DayOf(start), models.DayOf(end)
		preds = append(preds, func(r *models.Record) bool {
			day := r.UploadedAt.Day()
			return r.UploadedAt.Valid && day >= lo && day <= hi
		})
	}
	return preds
}

// dimensionValue returns the record's value on d and whether it has one.
func dimensionValue(r *models.Record, d models.Dimension) (string, bool) {
	var v string
	switch d {
	case models.DimAgency:
		v = r.Agency
	case models.DimGender:
		v = r.Gender
	case models.DimReason:
		v = r.Reason
	case models.DimAnalyst:
		v = r.Analyst
	case models.DimUploadedBy:
		v = r.UploadedBy
	case models.DimLRDBank:
		v = r.LRDBank
	case models.DimUSDBank:
		v = r.USDBank
	case models.DimSalaryBand:
		v = r.SalaryBand
	case models.DimPayrollMonth:
		return r.PayrollMonth.Label, r.PayrollMonth.Known
	}
	return v, v != ""
}

func dimensionAvailable(t *models.Table, d models.Dimension) bool {
	switch d {
	case models.DimAgency:
		return t.Schema.Has(models.FieldAgency)
	case models.DimGender:
		return t.Schema.Has(models.FieldGender)
	case models.DimReason:
		return t.Schema.Has(models.FieldReason)
	case models.DimAnalyst:
		return t.Schema.Has(models.FieldAnalyst)
	case models.DimUploadedBy:
		return t.Schema.Has(models.FieldUploadedBy)
	case models.DimLRDBank:
		return t.Schema.Has(models.FieldLRDBank)
	case models.DimUSDBank:
		return t.Schema.Has(models.FieldUSDBank)
	case models.DimBankLane:
		return t.Schema.Has(models.FieldLRDBank) || t.Schema.Has(models.FieldUSDBank)
	case models.DimSalaryBand:
		return t.HasBands()
	case models.DimPayrollMonth:
		return true
	case models.DimUploadedAt:
		return datesAvailable(t)
	}
	return false
}

// datesAvailable reports whether uploaded_at exists and holds at least one valid timestamp.
func datesAvailable(t *models.Table) bool {
	if !t.Schema.Has(models.FieldUploadedAt) {
		return false
	}
	for i := range t.Records {
		if t.Records[i].UploadedAt.Valid {
			return true
		}
	}
	return false
}
