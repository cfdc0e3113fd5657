package plot

import (
	"sort"
	"time"

	"github.com/pivolan/payroll_analyzer/domain/models"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// dataDaysForGraph counts uploads per calendar day.
type dataDaysForGraph struct {
	days      []time.Time
	yValues   []float64
	nameYAxis string
	nameGraph string
}

// NewDataDaysForGraph groups the view by the day of uploaded_at, skipping invalid timestamps.
func NewDataDaysForGraph(view *models.Table) dataDaysForGraph {
	d := dataDaysForGraph{nameYAxis: "Transactions", nameGraph: "Uploads per Day"}
	counts := map[int]float64{}
	first := map[int]time.Time{}
	for _, r := range view.Records {
		if !r.UploadedAt.Valid {
			continue
		}
		day := r.UploadedAt.Day()
		if _, ok := first[day]; !ok {
			y, m, dd := r.UploadedAt.Time.Date()
			first[day] = time.Date(y, m, dd, 0, 0, 0, 0, r.UploadedAt.Time.Location())
		}
		counts[day]++
	}
	keys := make([]int, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	for _, k := range keys {
		d.days = append(d.days, first[k])
		d.yValues = append(d.yValues, counts[k])
	}
	return d
}

func (d dataDaysForGraph) GetNameGraph() string {
	return d.nameGraph
}
func (d dataDaysForGraph) getNameYAxis() string {
	return d.nameYAxis
}
func (d dataDaysForGraph) getYValues() []float64 {
	return d.yValues
}

func (d dataDaysForGraph) calculateChartDimensions(minBarWidth float64) (width, height int) {
	return chartDimensions(len(d.days), minBarWidth)
}

func (d dataDaysForGraph) generateBarValues() []chart.Value {
	var bars []chart.Value
	for i, day := range d.days {
		bars = append(bars, chart.Value{
			Value: d.yValues[i],
			Style: chart.Style{FillColor: drawing.ColorLime.WithAlpha(40),
				TextVerticalAlign: 100},
			Label: day.Format("2006-01-02"),
		})
	}
	return bars
}

func (d dataDaysForGraph) generateGrid() []chart.Tick {
	return gridTicks(d.yValues)
}
