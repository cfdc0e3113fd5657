package payroll

import (
	"testing"

	"github.com/pivolan/payroll_analyzer/domain/models"
	"github.com/stretchr/testify/require"
)

type cells map[string]interface{}

// sheetRow lays out values in the expected header order.
func sheetRow(values cells) []interface{} {
	row := make([]interface{}, len(models.ExpectedHeaders))
	for i, h := range models.ExpectedHeaders {
		row[i] = values[h]
	}
	return row
}

func fullSheet(rows ...cells) *models.RawTable {
	raw := &models.RawTable{Headers: append([]string(nil), models.ExpectedHeaders...)}
	for _, r := range rows {
		raw.Rows = append(raw.Rows, sheetRow(r))
	}
	return raw
}

// sampleSheet has five rows touching every dimension, including one with
// unparsable amounts and timestamp and one without an agency.
func sampleSheet() *models.RawTable {
	return fullSheet(
		cells{"NO": 1, "Agency": "Health", "Gender": "F", "Reason": "Promotion", "Analyst": "Ann",
			"Adj. Salary": 1200.0, "Current Salary": 1000.0, "Difference": 200.0,
			"LRD BANK": "Ecobank", "uploaded_by": "ops", "uploaded_at": "2024-03-05T10:00:00"},
		cells{"NO": 2, "Agency": "Health", "Gender": "M", "Reason": "Step increase", "Analyst": "Bob",
			"Adj. Salary": "800", "Current Salary": "700", "Difference": "100",
			"LRD BANK": "UBA", "USD BANK": "Citi", "uploaded_by": "ops", "uploaded_at": "2024-03-20 08:30:00"},
		cells{"NO": 3, "Agency": "Education", "Gender": "F", "Reason": "Promotion", "Analyst": "Ann",
			"Adj. Salary": 2500, "Current Salary": 2000, "Difference": 500,
			"LRD BANK": "Ecobank", "USD BANK": "Citi", "uploaded_by": "admin", "uploaded_at": "2024-04-02"},
		cells{"NO": 4, "Agency": "Education", "Gender": "M", "Reason": "", "Analyst": "",
			"Adj. Salary": "n/a", "Current Salary": 300, "Difference": "x",
			"USD BANK": "Citi", "uploaded_by": "ops", "uploaded_at": "garbage"},
		cells{"NO": 5, "Agency": "", "Gender": "F", "Reason": "Correction", "Analyst": "Bob",
			"Adj. Salary": 0, "Current Salary": 50, "Difference": -50,
			"LRD BANK": "UBA", "uploaded_by": "ops", "uploaded_at": "2024-04-15T23:59:59Z"},
	)
}

// narrowSheet builds a table with only the given headers.
func narrowSheet(headers []string, rows ...[]interface{}) *models.RawTable {
	return &models.RawTable{Headers: headers, Rows: rows}
}

func mustNormalize(t *testing.T, raw *models.RawTable, opts ...Option) *models.Table {
	t.Helper()
	table, err := Normalize(raw, opts...)
	require.NoError(t, err)
	return table
}

func rowsOf(t *models.Table) []int {
	rows := make([]int, 0, t.Len())
	for _, r := range t.Records {
		rows = append(rows, r.Row)
	}
	return rows
}
