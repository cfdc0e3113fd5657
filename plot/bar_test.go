package plot

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/pivolan/payroll_analyzer/domain/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngMagic = []byte("\x89PNG")

func TestCalculateGridStep(t *testing.T) {
	tests := []struct {
		max  float64
		want float64
	}{
		{0, 0},
		{-5, 0},
		{1, 0.2},
		{7, 2},
		{45, 10},
		{150, 50},
		{3000, 1000},
		{12000, 5000},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, calculateGridStep(tt.max), 1e-9, "max=%v", tt.max)
	}
}

func TestValueRange(t *testing.T) {
	min, max := valueRange([]float64{300, -50, 120})
	assert.Equal(t, -50.0, min)
	assert.Equal(t, 300.0, max)

	min, max = valueRange([]float64{0, 0})
	assert.Equal(t, 0.0, min)
	assert.Equal(t, 1.0, max)

	ticks := gridTicks([]float64{-50, 300})
	require.NotEmpty(t, ticks)
	assert.LessOrEqual(t, ticks[0].Value, -50.0)
	assert.GreaterOrEqual(t, ticks[len(ticks)-1].Value, 300.0)
}

func TestDrawBreakdowns(t *testing.T) {
	snap := &models.MetricsSnapshot{
		DifferenceByAgency: []models.GroupTotal{
			{Label: "Education", Value: 500, Count: 2},
			{Label: "Health", Value: -30, Count: 1},
		},
		TransactionsByReason: []models.GroupTotal{
			{Label: "Promotion", Value: 2, Count: 2},
		},
	}

	png, err := DrawPlotBar(DifferenceByAgency(snap))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, pngMagic))

	png, err = DrawPlotBar(TransactionsByReason(snap))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, pngMagic))

	_, err = DrawPlotBar(DifferenceByAgency(&models.MetricsSnapshot{}))
	assert.True(t, errors.Is(err, ErrNoData))
}

func TestBandAndDayData(t *testing.T) {
	at := func(d int) models.Timestamp {
		return models.Timestamp{Time: time.Date(2024, 3, d, 9, 0, 0, 0, time.UTC), Valid: true}
	}
	view := &models.Table{
		BandWidth: 1000,
		Bands:     []string{"0–1000", "1000–2000", "2000–3000"},
		Records: []models.Record{
			{SalaryBand: "0–1000", UploadedAt: at(5)},
			{SalaryBand: "2000–3000", UploadedAt: at(2)},
			{SalaryBand: "0–1000", UploadedAt: at(5)},
			{SalaryBand: "", UploadedAt: models.Timestamp{}},
		},
	}

	bands := NewDataBandsForGraph(view)
	assert.Equal(t, []float64{2, 0, 1}, bands.getYValues())
	labels := []string{}
	for _, b := range bands.generateBarValues() {
		labels = append(labels, b.Label)
	}
	assert.Equal(t, view.Bands, labels)

	days := NewDataDaysForGraph(view)
	assert.Equal(t, []float64{1, 2}, days.getYValues())
	assert.Equal(t, "2024-03-02", days.generateBarValues()[0].Label)

	png, err := DrawPlotBar(days)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, pngMagic))

	assert.Empty(t, NewDataBandsForGraph(&models.Table{}).getYValues())

	sparse := &models.Table{
		BandWidth: 1000,
		Bands:     []string{"0–1000", "999999999000–1000000000000"},
		Records: []models.Record{
			{SalaryBand: "999999999000–1000000000000"},
			{SalaryBand: "0–1000"},
			{SalaryBand: ""},
		},
	}
	sparseBands := NewDataBandsForGraph(sparse)
	assert.Equal(t, []float64{1, 1}, sparseBands.getYValues())
	assert.Equal(t, "999999999000–1000000000000", sparseBands.generateBarValues()[1].Label)
}

func TestChartDimensions(t *testing.T) {
	w, h := chartDimensions(0, 100)
	assert.Zero(t, w)
	assert.Zero(t, h)

	w1, _ := chartDimensions(1, 100)
	w5, _ := chartDimensions(5, 100)
	w20, h20 := chartDimensions(20, 100)
	assert.Greater(t, w1, 0)
	assert.Greater(t, w20, w5)
	assert.Equal(t, int(float64(w20)*9.0/16.0), h20)
}
