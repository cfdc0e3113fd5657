package payroll

import (
	"strings"

	"github.com/mozillazg/go-unidecode"
	"github.com/pivolan/payroll_analyzer/domain/models"
)

// payrollMonthCandidates are checked in order for an explicit payroll month column.
var payrollMonthCandidates = []string{"Payroll Month", "Payroll_month", "payroll_month", "Month", "PayrollMonth"}

// columnIndex maps semantic fields to positions in the raw header row.
type columnIndex struct {
	schema models.Schema
	fields map[models.Field]int
	month  int // -1 when the payroll month is derived
}

// canonicalKey folds a header to lower-case ascii letters and digits,
// so "Adj. Salary", "ADJ SALARY" and "adj_salary" compare equal.
func canonicalKey(header string) string {
	s := strings.ToLower(unidecode.Unidecode(strings.TrimSpace(header)))
	var b strings.Builder
	for _, c := range s {
		if (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9') {
			b.WriteRune(c)
		}
	}
	return b.String()
}

// findHeader returns the position of name in headers. An exact match wins over
// a canonical one; among canonical matches the leftmost header wins.
func findHeader(headers []string, name string) int {
	for i, h := range headers {
		if h == name {
			return i
		}
	}
	key := canonicalKey(name)
	if key == "" {
		return -1
	}
	for i, h := range headers {
		if canonicalKey(h) == key {
			return i
		}
	}
	return -1
}

func resolveColumns(headers []string) columnIndex {
	idx := columnIndex{
		schema: models.Schema{Columns: map[models.Field]string{}},
		fields: map[models.Field]int{},
		month:  -1,
	}
	for _, f := range models.Fields() {
		if pos := findHeader(headers, f.Header()); pos >= 0 {
			idx.fields[f] = pos
			idx.schema.Columns[f] = headers[pos]
		}
	}
	for _, candidate := range payrollMonthCandidates {
		if pos := findHeader(headers, candidate); pos >= 0 {
			idx.month = pos
			idx.schema.PayrollMonthColumn = headers[pos]
			break
		}
	}
	return idx
}

// KnownHeader reports whether h names an expected column or a payroll month column.
func KnownHeader(h string) bool {
	key := canonicalKey(h)
	if key == "" {
		return false
	}
	for _, name := range models.ExpectedHeaders {
		if canonicalKey(name) == key {
			return true
		}
	}
	for _, name := range payrollMonthCandidates {
		if canonicalKey(name) == key {
			return true
		}
	}
	return false
}
