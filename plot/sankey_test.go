package plot

import (
	"bytes"
	"errors"
	"testing"

	"github.com/pivolan/payroll_analyzer/domain/models"
	"github.com/pivolan/payroll_analyzer/payroll"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestSankeyHTML(t *testing.T) {
	g := &models.FlowGraph{
		Nodes: []string{"Health", "Unknown", "Promotion"},
		Edges: []models.FlowEdge{
			{Source: 0, Target: 1, Weight: 2, Stage: models.StageUnitToAnalyst},
			{Source: 1, Target: 2, Weight: 1, Stage: models.StageAnalystToReason},
			{Source: 1, Target: 1, Weight: 1, Stage: models.StageAnalystToReason},
		},
	}
	var buf bytes.Buffer
	require.NoError(t, SankeyHTML(&buf, "Agency → Analyst → Reason", g, zap.NewExample()))

	html := buf.String()
	assert.Contains(t, html, "sankey")
	assert.Contains(t, html, "Health")
	assert.Contains(t, html, "Promotion")

	assert.True(t, errors.Is(SankeyHTML(&buf, "empty", &models.FlowGraph{}, nil), ErrNoData))
	assert.True(t, errors.Is(SankeyHTML(&buf, "nil", nil, nil), ErrNoData))
}

// analystOnlyFlow has one row whose agency and reason are both missing, so "Unknown"
// sits in the first and last tier around the same analyst.
func analystOnlyFlow(identity payroll.NodeIdentity) *models.FlowGraph {
	table := &models.Table{
		Schema: models.Schema{Columns: map[models.Field]string{
			models.FieldAgency:  "Agency",
			models.FieldAnalyst: "Analyst",
			models.FieldReason:  "Reason",
		}},
		Records: []models.Record{
			{Row: 0, Analyst: "Bob"},
			{Row: 1, Agency: "Health", Analyst: "Bob", Reason: "Promotion"},
		},
	}
	return payroll.BuildFlow(table, payroll.Capabilities{Graph: true}, payroll.WithNodeIdentity(identity)).Graph
}

func TestSankeyLinksFormDAG(t *testing.T) {
	g := analystOnlyFlow(payroll.NodesByTier)
	names := uniqueNames(g.Nodes)
	links, err := sankeyLinks(g, names, zap.NewNop())
	require.NoError(t, err)
	assert.False(t, hasCycle(len(g.Nodes), g.Edges))

	pairs := map[[2]string]bool{}
	for _, l := range links {
		pairs[[2]string{l.Source.(string), l.Target.(string)}] = true
	}
	assert.True(t, pairs[[2]string{"Unknown", "Bob"}])
	assert.True(t, pairs[[2]string{"Bob", "Unknown (2)"}])
	assert.False(t, pairs[[2]string{"Bob", "Unknown"}], "reason node must not be the agency node")

	var buf bytes.Buffer
	require.NoError(t, SankeyHTML(&buf, "flow", g, zap.NewNop()))
	assert.Contains(t, buf.String(), "Unknown (2)")
}

func TestSankeyHTMLRejectsSharedLabelCycle(t *testing.T) {
	g := analystOnlyFlow(payroll.NodesByLabel)
	var buf bytes.Buffer
	err := SankeyHTML(&buf, "flow", g, zap.NewNop())
	assert.True(t, errors.Is(err, ErrCyclicFlow))
	assert.Zero(t, buf.Len())
}

func TestHasCycle(t *testing.T) {
	tests := []struct {
		name  string
		nodes int
		edges []models.FlowEdge
		want  bool
	}{
		{name: "no edges", nodes: 3},
		{name: "chain", nodes: 3, edges: []models.FlowEdge{{Source: 0, Target: 1}, {Source: 1, Target: 2}}},
		{name: "diamond", nodes: 4, edges: []models.FlowEdge{
			{Source: 0, Target: 1}, {Source: 0, Target: 2}, {Source: 1, Target: 3}, {Source: 2, Target: 3},
		}},
		{name: "two node loop", nodes: 2, edges: []models.FlowEdge{{Source: 0, Target: 1}, {Source: 1, Target: 0}}, want: true},
		{name: "loop behind a chain", nodes: 4, edges: []models.FlowEdge{
			{Source: 0, Target: 1}, {Source: 1, Target: 2}, {Source: 2, Target: 3}, {Source: 3, Target: 1},
		}, want: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, hasCycle(tt.nodes, tt.edges))
		})
	}
}

func TestUniqueNames(t *testing.T) {
	assert.Equal(t,
		[]string{"Health", "Unknown", "Ann", "Unknown (2)", "Unknown (3)"},
		uniqueNames([]string{"Health", "Unknown", "Ann", "Unknown", "Unknown"}))
}

func TestGroupedBarHTML(t *testing.T) {
	groups := []models.FlowGroup{
		{Tier1: "Health", Tier3: "Promotion", Count: 2},
		{Tier1: "Education", Tier3: "Correction", Count: 1},
		{Tier1: "Health", Tier3: "Correction", Count: 3},
	}
	reasons, agencies, counts := groupMatrix(groups)
	assert.Equal(t, []string{"Promotion", "Correction"}, reasons)
	assert.Equal(t, []string{"Health", "Education"}, agencies)
	assert.Equal(t, []int{2, 3}, counts["Health"])
	assert.Equal(t, []int{0, 1}, counts["Education"])

	var buf bytes.Buffer
	require.NoError(t, GroupedBarHTML(&buf, "Transactions by Agency and Reason", groups))
	assert.Contains(t, buf.String(), "Education")

	assert.True(t, errors.Is(GroupedBarHTML(&buf, "empty", nil), ErrNoData))
}
