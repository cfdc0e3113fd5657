// Package report renders analysis results as text tables.
package report

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/pivolan/payroll_analyzer/domain/models"
)

func newWriter(title string) table.Writer {
	t := table.NewWriter()
	t.SetTitle(title)
	t.SetStyle(table.StyleDefault)
	return t
}

// Metrics renders the totals of a snapshot.
func Metrics(snap *models.MetricsSnapshot) string {
	t := newWriter("Summary")
	t.AppendHeader(table.Row{"Metric", "Value"})
	t.AppendRows([]table.Row{
		{"Transactions", snap.Transactions},
		{"Total Adj. Salary", Money(snap.TotalAdjSalary)},
		{"Total Current Salary", Money(snap.TotalCurrentSalary)},
		{"Total Difference", Money(snap.TotalDifference)},
	})
	t.SetColumnConfigs([]table.ColumnConfig{{Number: 2, Align: text.AlignRight}})
	return t.Render()
}

// Top renders the largest adjustments.
func Top(snap *models.MetricsSnapshot) string {
	t := newWriter(fmt.Sprintf("Top %d adjustments by Difference", models.TopN))
	t.AppendHeader(table.Row{"#", "Employee ID", "Name", "Agency", "Reason", "Adj. Salary", "Current Salary", "Difference"})
	for i, r := range snap.Top {
		t.AppendRow(table.Row{
			i + 1, r.EmployeeID, fullName(r), r.Agency, r.Reason,
			Money(r.AdjSalary), Money(r.CurrentSalary), Money(r.Difference),
		})
	}
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 6, Align: text.AlignRight},
		{Number: 7, Align: text.AlignRight},
		{Number: 8, Align: text.AlignRight},
	})
	return t.Render()
}

// Breakdown renders grouped totals; count columns print as integers.
func Breakdown(title, labelHeader, valueHeader string, groups []models.GroupTotal, counts bool) string {
	t := newWriter(title)
	t.AppendHeader(table.Row{labelHeader, valueHeader, "Rows"})
	for _, g := range groups {
		value := Money(g.Value)
		if counts {
			value = strconv.Itoa(int(g.Value))
		}
		t.AppendRow(table.Row{g.Label, value, g.Count})
	}
	t.SetColumnConfigs([]table.ColumnConfig{{Number: 2, Align: text.AlignRight}})
	return t.Render()
}

// Catalog renders the selectable values per dimension.
func Catalog(c models.Catalog) string {
	t := newWriter("Filters")
	t.AppendHeader(table.Row{"Dimension", "Values"})
	for _, d := range models.Dimensions() {
		entry, ok := c[d]
		switch {
		case !ok || !entry.Available:
			t.AppendRow(table.Row{d, "(unavailable)"})
		case d == models.DimUploadedAt:
			t.AppendRow(table.Row{d, entry.Min.Format("2006-01-02") + " .. " + entry.Max.Format("2006-01-02")})
		case len(entry.Values) == 0:
			t.AppendRow(table.Row{d, "(none)"})
		default:
			t.AppendRow(table.Row{d, strings.Join(entry.Values, ", ")})
		}
	}
	t.SetColumnConfigs([]table.ColumnConfig{{Number: 2, WidthMax: 80}})
	return t.Render()
}

// Filters lists the constrained dimensions of spec.
func Filters(spec models.FilterSpec) string {
	if spec.IsUnconstrained() {
		return "Filters: none"
	}
	var parts []string
	add := func(name string, s models.Selection) {
		if !s.IsAny() {
			parts = append(parts, name+"="+s.String())
		}
	}
	add("agency", spec.Agency)
	add("gender", spec.Gender)
	add("reason", spec.Reason)
	add("analyst", spec.Analyst)
	add("month", spec.PayrollMonth)
	add("uploaded_by", spec.UploadedBy)
	add("band", spec.SalaryBand)
	if spec.Bank.Lane != models.LaneAny {
		add(strings.ToLower(string(spec.Bank.Lane))+"_bank", spec.Bank.Name)
	}
	if start, end, ok := spec.Dates.Bounds(); ok {
		parts = append(parts, fmt.Sprintf("uploaded_at=%s..%s", start.Format("2006-01-02"), end.Format("2006-01-02")))
	}
	return "Filters: " + strings.Join(parts, " ")
}

// Analysis renders the whole text report of one analysis.
func Analysis(a *models.Analysis) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Session %s\n%s\n", a.SessionID, Filters(a.Spec))
	if a.Metrics == nil {
		b.WriteString("Metrics unavailable: the Difference column is missing.\n")
		return b.String()
	}
	if a.Metrics.Transactions == 0 {
		b.WriteString("No transactions match the selected filters.\n")
		return b.String()
	}
	b.WriteString(Metrics(a.Metrics))
	b.WriteString("\n\n")
	b.WriteString(Top(a.Metrics))
	if len(a.Metrics.DifferenceByAgency) > 0 {
		b.WriteString("\n\n")
		b.WriteString(Breakdown("Difference by Agency", "Agency", "Difference", a.Metrics.DifferenceByAgency, false))
	}
	if len(a.Metrics.TransactionsByReason) > 0 {
		b.WriteString("\n\n")
		b.WriteString(Breakdown("Transactions by Reason", "Reason", "Transactions", a.Metrics.TransactionsByReason, true))
	}
	b.WriteString("\n")
	return b.String()
}

// Money formats an amount with two decimals and thousands separators.
func Money(v float64) string {
	s := strconv.FormatFloat(math.Abs(v), 'f', 2, 64)
	intPart, frac := s[:len(s)-3], s[len(s)-3:]
	var b strings.Builder
	if v < 0 && s != "0.00" {
		b.WriteByte('-')
	}
	for i, c := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(c)
	}
	b.WriteString(frac)
	return b.String()
}

func fullName(r models.Record) string {
	var parts []string
	for _, p := range []string{r.FirstName, r.MiddleName, r.LastName} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " ")
}
