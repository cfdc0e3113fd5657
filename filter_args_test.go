package main

import (
	"strings"
	"testing"
	"time"

	"github.com/pivolan/payroll_analyzer/domain/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFilterArgs(t *testing.T) {
	tests := []struct {
		name  string
		input string
		check func(t *testing.T, spec models.FilterSpec)
	}{
		{
			name:  "empty",
			input: "",
			check: func(t *testing.T, spec models.FilterSpec) {
				assert.True(t, spec.IsUnconstrained())
			},
		},
		{
			name:  "multi word value",
			input: "agency=Ministry of Health reason=Promotion",
			check: func(t *testing.T, spec models.FilterSpec) {
				v, ok := spec.Agency.Value()
				assert.True(t, ok)
				assert.Equal(t, "Ministry of Health", v)
				v, _ = spec.Reason.Value()
				assert.Equal(t, "Promotion", v)
			},
		},
		{
			name:  "all is unconstrained",
			input: "gender=All lane=all",
			check: func(t *testing.T, spec models.FilterSpec) {
				assert.True(t, spec.Gender.IsAny())
				assert.Equal(t, models.LaneAny, spec.Bank.Lane)
			},
		},
		{
			name:  "star is unconstrained",
			input: "agency=* lane=*",
			check: func(t *testing.T, spec models.FilterSpec) {
				assert.True(t, spec.Agency.IsAny())
				assert.Equal(t, models.LaneAny, spec.Bank.Lane)
			},
		},
		{
			name:  "quoted value is literal",
			input: `agency="All" analyst="Ann All"`,
			check: func(t *testing.T, spec models.FilterSpec) {
				v, ok := spec.Agency.Value()
				require.True(t, ok)
				assert.Equal(t, "All", v)
				v, ok = spec.Analyst.Value()
				require.True(t, ok)
				assert.Equal(t, "Ann All", v)
			},
		},
		{
			name:  "bank lane",
			input: "lane=usd bank=Ecobank",
			check: func(t *testing.T, spec models.FilterSpec) {
				assert.Equal(t, models.LaneUSD, spec.Bank.Lane)
				v, _ := spec.Bank.Name.Value()
				assert.Equal(t, "Ecobank", v)
			},
		},
		{
			name:  "band hyphen becomes en dash",
			input: "band=1000-2000",
			check: func(t *testing.T, spec models.FilterSpec) {
				v, _ := spec.SalaryBand.Value()
				assert.Equal(t, "1000–2000", v)
			},
		},
		{
			name:  "date range and aliases",
			input: "from=2024-03-01 to=2024-03-31 uploaded-by=alice payroll_month=March",
			check: func(t *testing.T, spec models.FilterSpec) {
				start, end, ok := spec.Dates.Bounds()
				require.True(t, ok)
				assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), start)
				assert.Equal(t, time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC), end)
				v, _ := spec.UploadedBy.Value()
				assert.Equal(t, "alice", v)
				v, _ = spec.PayrollMonth.Value()
				assert.Equal(t, "March", v)
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec, err := parseFilterArgs(strings.Fields(tt.input))
			require.NoError(t, err)
			tt.check(t, spec)
		})
	}
}

func TestParseFilterArgsErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"leading bare word", "Health", "expected key=value"},
		{"unknown key", "colour=red", "unknown filter"},
		{"bank without lane", "bank=Ecobank", "needs a lane"},
		{"bad lane", "lane=EUR", "unknown bank lane"},
		{"half open range", "from=2024-03-01", "together"},
		{"bad date", "from=yesterday to=2024-03-01", "from"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseFilterArgs(strings.Fields(tt.input))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
