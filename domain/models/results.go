package models

// TopN is the length of the top adjustments table.
const TopN = 15

type MetricsSnapshot struct {
	Transactions       int     `json:"transactions"`
	TotalAdjSalary     float64 `json:"totalAdjSalary"`
	TotalCurrentSalary float64 `json:"totalCurrentSalary"`
	TotalDifference    float64 `json:"totalDifference"`

	Top []Record `json:"top"`

	DifferenceByAgency   []GroupTotal `json:"differenceByAgency,omitempty"`
	TransactionsByReason []GroupTotal `json:"transactionsByReason,omitempty"`
}

type GroupTotal struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
	Count int     `json:"count"`
}

// FlowStage tells which pair of tiers an edge connects.
type FlowStage int

const (
	StageUnitToAnalyst FlowStage = iota
	StageAnalystToReason
)

type FlowEdge struct {
	Source int       `json:"source"`
	Target int       `json:"target"`
	Weight int       `json:"weight"`
	Stage  FlowStage `json:"stage"`
}

// FlowGraph is the agency -> analyst -> reason graph behind the Sankey diagram.
type FlowGraph struct {
	Nodes []string   `json:"nodes"`
	Edges []FlowEdge `json:"edges"`
}

// StageWeight sums edge weights of one stage.
func (g *FlowGraph) StageWeight(stage FlowStage) int {
	if g == nil {
		return 0
	}
	total := 0
	for _, e := range g.Edges {
		if e.Stage == stage {
			total += e.Weight
		}
	}
	return total
}

// FlowGroup is one bar of the grouped-bar fallback: rows per (agency, reason).
type FlowGroup struct {
	Tier1 string `json:"tier1"`
	Tier3 string `json:"tier3"`
	Count int    `json:"count"`
}

// FlowResult carries exactly one of Graph or Groups, depending on the renderer capability.
type FlowResult struct {
	Graph  *FlowGraph  `json:"graph,omitempty"`
	Groups []FlowGroup `json:"groups,omitempty"`
}

func (r FlowResult) Empty() bool {
	if r.Graph != nil {
		return len(r.Graph.Nodes) == 0
	}
	return len(r.Groups) == 0
}

// Analysis is the outcome of one filter selection.
type Analysis struct {
	SessionID string           `json:"sessionId"`
	Spec      FilterSpec       `json:"-"`
	View      *Table           `json:"-"`
	Metrics   *MetricsSnapshot `json:"metrics,omitempty"`
	Flow      FlowResult       `json:"flow"`
}
