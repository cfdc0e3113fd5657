package payroll

import (
	"fmt"

	"github.com/pivolan/payroll_analyzer/domain/models"
	"go.uber.org/zap"
)

// Normalize turns a raw sheet into typed records. Unparsable amounts become 0,
// unparsable dates become invalid timestamps, and every record gets a payroll
// month and, when Adj. Salary exists, a salary band.
func Normalize(raw *models.RawTable, opts ...Option) (*models.Table, error) {
	if raw == nil {
		return nil, ErrNilTable
	}
	o := newOptions(opts)
	if !ValidBandWidth(o.bandWidth) {
		return nil, fmt.Errorf("%w: %d", ErrInvalidBandWidth, o.bandWidth)
	}

	cols := resolveColumns(raw.Headers)
	table := &models.Table{
		Schema:    cols.schema,
		Records:   make([]models.Record, len(raw.Rows)),
		Coercions: map[models.Field]int{},
	}
	for i := range raw.Rows {
		rec := &table.Records[i]
		rec.Row = i
		for f, col := range cols.fields {
			cell := raw.Cell(i, col)
			switch f.Kind() {
			case models.KindNumeric:
				v, state := toNumber(cell)
				if state == cellInvalid {
					table.Coercions[f]++
				}
				rec.SetAmount(f, v)
			case models.KindTimestamp:
				ts, state := toTimestamp(cell)
				if state == cellInvalid {
					table.Coercions[f]++
				}
				rec.SetTimestamp(f, ts)
			default:
				rec.SetText(f, toText(cell))
			}
		}
		rec.PayrollMonth = payrollMonth(raw, i, cols, rec)
	}
	if table.Schema.Has(models.FieldAdjSalary) {
		assignBands(table, o.bandWidth)
	}

	if missing := table.Schema.Missing(); len(missing) > 0 {
		o.logger.Debug("columns missing from source", zap.Stringers("fields", missing))
	}
	for f, n := range table.Coercions {
		o.logger.Debug("coerced unparsable cells", zap.Stringer("field", f), zap.Int("cells", n))
	}
	o.logger.Debug("normalized table",
		zap.Int("rows", table.Len()),
		zap.Int("columns", len(table.Schema.Columns)),
		zap.Int("bands", len(table.Bands)),
	)
	return table, nil
}

func payrollMonth(raw *models.RawTable, row int, cols columnIndex, rec *models.Record) models.PayrollMonth {
	if cols.month >= 0 {
		label := toText(raw.Cell(row, cols.month))
		if label == "" {
			return models.PayrollMonth{}
		}
		return models.PayrollMonth{Label: label, Known: true}
	}
	if rec.UploadedAt.Valid {
		return models.PayrollMonth{Label: rec.UploadedAt.Time.Format("2006-01"), Known: true}
	}
	return models.PayrollMonth{}
}

func assignBands(table *models.Table, width int) {
	max := 0.0
	for i := range table.Records {
		if v := table.Records[i].AdjSalary; v > max {
			max = v
		}
	}
	scale := newBandScale(width, max)
	table.BandWidth = width
	used := map[int]bool{}
	for i := range table.Records {
		if idx := scale.Index(table.Records[i].AdjSalary); idx >= 0 {
			table.Records[i].SalaryBand = scale.Label(idx)
			used[idx] = true
		}
	}
	if scale.dense() {
		table.Bands = scale.Labels()
	} else {
		table.Bands = scale.occupiedLabels(used)
	}
}
