package plot

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/pivolan/payroll_analyzer/domain/models"
)

// groupMatrix lays the fallback groups out as reasons on the x axis and one series per agency.
func groupMatrix(groups []models.FlowGroup) (reasons, agencies []string, counts map[string][]int) {
	reasonIndex := map[string]int{}
	counts = map[string][]int{}
	for _, g := range groups {
		if _, ok := reasonIndex[g.Tier3]; !ok {
			reasonIndex[g.Tier3] = len(reasons)
			reasons = append(reasons, g.Tier3)
		}
		if _, ok := counts[g.Tier1]; !ok {
			agencies = append(agencies, g.Tier1)
			counts[g.Tier1] = nil
		}
	}
	for _, a := range agencies {
		counts[a] = make([]int, len(reasons))
	}
	for _, g := range groups {
		counts[g.Tier1][reasonIndex[g.Tier3]] += g.Count
	}
	return reasons, agencies, counts
}

// GroupedBarHTML writes the agency by reason counts as a grouped bar page.
func GroupedBarHTML(w io.Writer, title string, groups []models.FlowGroup) error {
	if len(groups) == 0 {
		return ErrNoData
	}
	reasons, agencies, counts := groupMatrix(groups)

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: title, Width: "1200px", Height: "700px"}),
		charts.WithTitleOpts(opts.Title{Title: title}),
	)
	bar.SetXAxis(reasons)
	for _, a := range agencies {
		data := make([]opts.BarData, len(reasons))
		for i, c := range counts[a] {
			data[i] = opts.BarData{Value: c}
		}
		bar.AddSeries(a, data)
	}
	if err := bar.Render(w); err != nil {
		return fmt.Errorf("render grouped bar: %w", err)
	}
	return nil
}
