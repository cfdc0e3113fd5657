package plot

import (
	"bytes"
	"errors"
	"fmt"
	"math"

	"github.com/wcharczuk/go-chart/v2"
)

var ErrNoData = errors.New("nothing to plot")

func calculateGridStep(maxValue float64) float64 {
	if maxValue <= 0 {
		return 0
	}
	if maxValue < 1e-10 {
		return 1e-10
	}

	// normalize to [1, 10)
	magnitude := math.Pow(10, math.Floor(math.Log10(maxValue)))
	normalized := maxValue / magnitude

	var step float64
	switch {
	case normalized <= 1:
		step = 0.2
	case normalized <= 2:
		step = 0.5
	case normalized <= 5:
		step = 1.0
	default:
		step = 2.0
	}

	finalStep := step * magnitude
	if finalStep >= 1000 {
		return math.Round(finalStep/100) * 100
	}
	if finalStep >= 100 {
		return math.Round(finalStep/10) * 10
	}
	return finalStep
}

// valueRange always includes zero and never collapses to a point.
func valueRange(y []float64) (min, max float64) {
	min = math.Min(0, findMinValue(y))
	max = math.Max(0, findMaxValue(y))
	if max == min {
		max = min + 1
	}
	return min, max
}

func gridTicks(y []float64) []chart.Tick {
	min, max := valueRange(y)
	step := calculateGridStep(max - min)
	if step <= 0 {
		return nil
	}
	var ticks []chart.Tick
	for v := math.Floor(min/step) * step; v <= max+step/2; v += step {
		ticks = append(ticks, chart.Tick{
			Value: v,
			Label: fmt.Sprintf("%.1f", v),
		})
	}
	return ticks
}

func chartDimensions(bars int, minBarWidth float64) (width, height int) {
	if bars <= 0 || minBarWidth <= 0 {
		return 0, 0
	}
	x := 1.1
	if bars < 2 {
		x = 10.0
	} else if bars < 10 {
		x = 3.0
	}

	const (
		paddingY     = 100
		spacingRatio = 0.2
		aspectRatio  = 9.0 / 16.0
	)

	barSpacing := minBarWidth * spacingRatio
	totalWidth := (minBarWidth+barSpacing)*float64(bars) + paddingY
	width = int(totalWidth*x) + paddingY
	height = int(float64(width) * aspectRatio)
	return width, height
}

// DrawPlotBar renders the data as a PNG bar chart.
func DrawPlotBar(data dataForGraph) ([]byte, error) {
	barValues := data.generateBarValues()
	if len(barValues) == 0 {
		return nil, fmt.Errorf("%s: %w", data.GetNameGraph(), ErrNoData)
	}
	paddingX := customizePaddingXBottom(barValues)
	width, height := data.calculateChartDimensions(100)
	min, max := valueRange(data.getYValues())

	bar := chart.BarChart{}
	bar.Title = data.GetNameGraph()
	bar.Background = chart.Style{
		FontSize:    160,
		StrokeColor: chart.ColorBlack,
		Padding: chart.Box{
			Bottom: paddingX,
			Top:    50,
		},
	}
	bar.Height = height + 50
	bar.Width = width + paddingX + 50
	bar.BarWidth = 60
	bar.Bars = barValues
	bar.YAxis = chart.YAxis{
		Name: data.getNameYAxis(),
		Range: &chart.ContinuousRange{
			Min: min,
			Max: max,
		},
		Style: chart.Style{
			StrokeWidth: 2,
			StrokeColor: chart.ColorBlack,
			FontSize:    17,
		},
		Ticks: data.generateGrid(),
		GridMinorStyle: chart.Style{
			StrokeColor: chart.ColorBlack,
			StrokeWidth: 1,
			DotWidth:    1,
		},
		GridMajorStyle: chart.Style{
			StrokeColor:     chart.ColorBlack,
			StrokeWidth:     1,
			DotWidth:        1,
			StrokeDashArray: []float64{5.0, 5.0},
		},
	}
	bar.XAxis = chart.Style{
		StrokeWidth:         2,
		StrokeColor:         chart.ColorBlack,
		TextRotationDegrees: 88,
		FontSize:            17,
	}
	buffer := bytes.NewBuffer([]byte{})

	err := bar.Render(chart.PNG, buffer)
	if err != nil {
		return nil, fmt.Errorf("error rendering chart: %v", err)
	}

	return buffer.Bytes(), nil
}

func findMaxValue(y []float64) float64 {
	if len(y) == 0 {
		return 0
	}
	max := y[0]
	for _, v := range y {
		if v > max {
			max = v
		}
	}
	return max
}

func findMinValue(y []float64) float64 {
	if len(y) == 0 {
		return 0
	}
	min := y[0]
	for _, v := range y {
		if v < min {
			min = v
		}
	}
	return min
}

func customizePaddingXBottom(values []chart.Value) int {
	count := 0
	for _, v := range values {
		if len(v.Label) > count {
			count = len(v.Label)
		}
	}
	return int(count * 8)
}
