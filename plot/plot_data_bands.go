package plot

import (
	"github.com/pivolan/payroll_analyzer/domain/models"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// dataBandsForGraph is a histogram of transactions over the salary bands.
type dataBandsForGraph struct {
	labels    []string
	yValues   []float64
	nameYAxis string
	nameGraph string
}

// NewDataBandsForGraph counts the view's records per band listed in view.Bands.
func NewDataBandsForGraph(view *models.Table) dataBandsForGraph {
	d := dataBandsForGraph{nameYAxis: "Transactions", nameGraph: "Transactions by Salary Band"}
	if !view.HasBands() {
		return d
	}
	index := make(map[string]int, len(view.Bands))
	for i, b := range view.Bands {
		index[b] = i
	}
	d.labels = view.Bands
	d.yValues = make([]float64, len(view.Bands))
	for _, r := range view.Records {
		if i, ok := index[r.SalaryBand]; ok {
			d.yValues[i]++
		}
	}
	return d
}

func (d dataBandsForGraph) GetNameGraph() string {
	return d.nameGraph
}
func (d dataBandsForGraph) getNameYAxis() string {
	return d.nameYAxis
}
func (d dataBandsForGraph) getYValues() []float64 {
	return d.yValues
}

func (d dataBandsForGraph) calculateChartDimensions(minBarWidth float64) (width, height int) {
	return chartDimensions(len(d.labels), minBarWidth)
}

func (d dataBandsForGraph) generateBarValues() []chart.Value {
	var bars []chart.Value
	for i, label := range d.labels {
		bars = append(bars, chart.Value{
			Value: d.yValues[i],
			Label: label,
			Style: chart.Style{FillColor: drawing.ColorBlue.WithAlpha(100)},
		})
	}
	return bars
}

func (d dataBandsForGraph) generateGrid() []chart.Tick {
	return gridTicks(d.yValues)
}
