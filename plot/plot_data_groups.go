package plot

import (
	"github.com/pivolan/payroll_analyzer/domain/models"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// dataGroupsForGraph is one bar per breakdown group.
type dataGroupsForGraph struct {
	xValues   []string
	yValues   []float64
	nameYAxis string
	nameGraph string
}

func NewDataGroupsForGraph(groups []models.GroupTotal, nameYAxis, nameGraph string) dataGroupsForGraph {
	d := dataGroupsForGraph{nameYAxis: nameYAxis, nameGraph: nameGraph}
	for _, g := range groups {
		d.xValues = append(d.xValues, g.Label)
		d.yValues = append(d.yValues, g.Value)
	}
	return d
}

// DifferenceByAgency charts the summed salary difference per agency.
func DifferenceByAgency(snap *models.MetricsSnapshot) dataGroupsForGraph {
	return NewDataGroupsForGraph(snap.DifferenceByAgency, "Difference", "Difference by Agency")
}

// TransactionsByReason charts the transaction count per reason.
func TransactionsByReason(snap *models.MetricsSnapshot) dataGroupsForGraph {
	return NewDataGroupsForGraph(snap.TransactionsByReason, "Transactions", "Transactions by Reason")
}

func (d dataGroupsForGraph) GetNameGraph() string {
	return d.nameGraph
}
func (d dataGroupsForGraph) getNameYAxis() string {
	return d.nameYAxis
}
func (d dataGroupsForGraph) getYValues() []float64 {
	return d.yValues
}

func (d dataGroupsForGraph) calculateChartDimensions(minBarWidth float64) (width, height int) {
	return chartDimensions(len(d.xValues), minBarWidth)
}

func (d dataGroupsForGraph) generateBarValues() []chart.Value {
	var bars []chart.Value
	for i, label := range d.xValues {
		fill := drawing.ColorPurple.WithAlpha(100)
		if d.yValues[i] < 0 {
			fill = drawing.ColorRed.WithAlpha(100)
		}
		bars = append(bars, chart.Value{
			Value: d.yValues[i],
			Label: label,
			Style: chart.Style{FillColor: fill},
		})
	}
	return bars
}

func (d dataGroupsForGraph) generateGrid() []chart.Tick {
	return gridTicks(d.yValues)
}
