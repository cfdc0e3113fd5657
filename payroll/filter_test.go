package payroll

import (
	"testing"
	"time"

	"github.com/pivolan/payroll_analyzer/domain/models"
	"github.com/stretchr/testify/assert"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestApply(t *testing.T) {
	table := mustNormalize(t, sampleSheet())

	tests := []struct {
		name string
		spec models.FilterSpec
		want []int
	}{
		{"agency", models.FilterSpec{Agency: models.Only("Health")}, []int{0, 1}},
		{"agency and gender", models.FilterSpec{Agency: models.Only("Health"), Gender: models.Only("M")}, []int{1}},
		{"reason", models.FilterSpec{Reason: models.Only("Promotion")}, []int{0, 2}},
		{"analyst", models.FilterSpec{Analyst: models.Only("Bob")}, []int{1, 4}},
		{"uploaded by", models.FilterSpec{UploadedBy: models.Only("admin")}, []int{2}},
		{"payroll month", models.FilterSpec{PayrollMonth: models.Only("2024-04")}, []int{2, 4}},
		{"salary band", models.FilterSpec{SalaryBand: models.Only("0–1000")}, []int{1, 3, 4}},
		{"lrd lane", models.FilterSpec{Bank: models.BankFilter{Lane: models.LaneLRD, Name: models.Only("Ecobank")}}, []int{0, 2}},
		{"usd lane", models.FilterSpec{Bank: models.BankFilter{Lane: models.LaneUSD, Name: models.Only("Citi")}}, []int{1, 2, 3}},
		{"bank outside its lane", models.FilterSpec{Bank: models.BankFilter{Lane: models.LaneUSD, Name: models.Only("Ecobank")}}, []int{}},
		{"march uploads", models.FilterSpec{Dates: models.Between(day(2024, 3, 1), day(2024, 3, 31))}, []int{0, 1}},
		{"single inclusive day", models.FilterSpec{Dates: models.Between(day(2024, 4, 15), day(2024, 4, 15))}, []int{4}},
		{"inverted range", models.FilterSpec{Dates: models.Between(day(2024, 5, 1), day(2024, 3, 1))}, []int{}},
		{"foreign value", models.FilterSpec{Agency: models.Only("Defense")}, []int{}},
		{"value named All", models.FilterSpec{Agency: models.Only("All")}, []int{}},
		{"empty value", models.FilterSpec{Agency: models.Only("")}, []int{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			view := Apply(table, tt.spec)
			assert.Equal(t, tt.want, rowsOf(view))
			assert.Equal(t, table.Bands, view.Bands)
		})
	}
}

func TestApplyIdentity(t *testing.T) {
	table := mustNormalize(t, sampleSheet())
	assert.Same(t, table, Apply(table, models.FilterSpec{}))

	laneOnly := models.FilterSpec{Bank: models.BankFilter{Lane: models.LaneLRD}}
	assert.Same(t, table, Apply(table, laneOnly), "a lane without a bank name selects everything")

	nameOnly := models.FilterSpec{Bank: models.BankFilter{Name: models.Only("Ecobank")}}
	assert.Same(t, table, Apply(table, nameOnly), "a bank name without a lane is ignored")

	assert.Nil(t, Apply(nil, models.FilterSpec{Agency: models.Only("x")}))
}

func TestApplyComposition(t *testing.T) {
	table := mustNormalize(t, sampleSheet())
	a := models.FilterSpec{Gender: models.Only("F")}
	b := models.FilterSpec{Reason: models.Only("Promotion")}
	both := models.FilterSpec{Gender: models.Only("F"), Reason: models.Only("Promotion")}

	assert.Equal(t, rowsOf(Apply(table, both)), rowsOf(Apply(Apply(table, a), b)))
	assert.Equal(t, rowsOf(Apply(table, both)), rowsOf(Apply(Apply(table, b), a)))
	assert.Equal(t, []int{0, 2}, rowsOf(Apply(table, both)))
}

func TestApplyDegradation(t *testing.T) {
	raw := narrowSheet([]string{"Agency", "Difference"},
		[]interface{}{"Health", 1}, []interface{}{"Education", 2})
	table := mustNormalize(t, raw)

	spec := models.FilterSpec{
		Gender:     models.Only("F"),
		Analyst:    models.Only("Ann"),
		SalaryBand: models.Only("0–1000"),
		Bank:       models.BankFilter{Lane: models.LaneLRD, Name: models.Only("UBA")},
		Dates:      models.Between(day(2024, 1, 1), day(2024, 1, 2)),
	}
	assert.Equal(t, []int{0, 1}, rowsOf(Apply(table, spec)), "absent columns do not constrain")

	spec.Agency = models.Only("Education")
	assert.Equal(t, []int{1}, rowsOf(Apply(table, spec)))
}

func TestApplyDatesWithoutValidTimestamps(t *testing.T) {
	raw := narrowSheet([]string{"Agency", "uploaded_at"},
		[]interface{}{"Health", "n/a"}, []interface{}{"Health", ""})
	table := mustNormalize(t, raw)
	view := Apply(table, models.FilterSpec{Dates: models.Between(day(2024, 1, 1), day(2024, 12, 31))})
	assert.Equal(t, []int{0, 1}, rowsOf(view))
}
