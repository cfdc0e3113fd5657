package payroll

import "github.com/pivolan/payroll_analyzer/domain/models"

// UnknownTier replaces a missing agency, analyst or reason in the flow.
const UnknownTier = "Unknown"

// Capabilities describes what the presentation layer can draw.
type Capabilities struct {
	Graph bool
}

// NodeIdentity decides whether equal labels on different tiers share a node.
type NodeIdentity int

const (
	// NodesByLabel keeps one node per distinct label across tiers.
	NodesByLabel NodeIdentity = iota
	// NodesByTier gives every tier its own nodes, so no edge loops back onto its source.
	NodesByTier
)

type flowRow struct {
	unit, analyst, reason string
}

// BuildFlow aggregates the view into the agency -> analyst -> reason graph,
// or into (agency, reason) counts when the renderer cannot draw a graph.
func BuildFlow(view *models.Table, caps Capabilities, opts ...Option) models.FlowResult {
	o := newOptions(opts)
	rows := flowRows(view)
	if !caps.Graph {
		return models.FlowResult{Groups: groupFlow(rows)}
	}
	return models.FlowResult{Graph: buildGraph(rows, o.identity)}
}

func flowRows(view *models.Table) []flowRow {
	if view == nil {
		return nil
	}
	rows := make([]flowRow, len(view.Records))
	for i := range view.Records {
		r := &view.Records[i]
		rows[i] = flowRow{
			unit:    tierValue(view, r, models.FieldAgency),
			analyst: tierValue(view, r, models.FieldAnalyst),
			reason:  tierValue(view, r, models.FieldReason),
		}
	}
	return rows
}

func tierValue(t *models.Table, r *models.Record, f models.Field) string {
	if !t.Schema.Has(f) {
		return UnknownTier
	}
	if v := r.Text(f); v != "" {
		return v
	}
	return UnknownTier
}

type nodeKey struct {
	tier  int
	label string
}

func buildGraph(rows []flowRow, identity NodeIdentity) *models.FlowGraph {
	g := &models.FlowGraph{Nodes: []string{}, Edges: []models.FlowEdge{}}
	index := map[nodeKey]int{}
	node := func(tier int, label string) int {
		key := nodeKey{label: label}
		if identity == NodesByTier {
			key.tier = tier
		}
		if id, ok := index[key]; ok {
			return id
		}
		id := len(g.Nodes)
		index[key] = id
		g.Nodes = append(g.Nodes, label)
		return id
	}
	for _, r := range rows {
		node(0, r.unit)
	}
	for _, r := range rows {
		node(1, r.analyst)
	}
	for _, r := range rows {
		node(2, r.reason)
	}

	stage := func(s models.FlowStage, pair func(flowRow) (int, int)) {
		pos := map[[2]int]int{}
		for _, r := range rows {
			src, dst := pair(r)
			k := [2]int{src, dst}
			if i, ok := pos[k]; ok {
				g.Edges[i].Weight++
				continue
			}
			pos[k] = len(g.Edges)
			g.Edges = append(g.Edges, models.FlowEdge{Source: src, Target: dst, Weight: 1, Stage: s})
		}
	}
	stage(models.StageUnitToAnalyst, func(r flowRow) (int, int) { return node(0, r.unit), node(1, r.analyst) })
	stage(models.StageAnalystToReason, func(r flowRow) (int, int) { return node(1, r.analyst), node(2, r.reason) })
	return g
}

func groupFlow(rows []flowRow) []models.FlowGroup {
	groups := []models.FlowGroup{}
	pos := map[[2]string]int{}
	for _, r := range rows {
		k := [2]string{r.unit, r.reason}
		if i, ok := pos[k]; ok {
			groups[i].Count++
			continue
		}
		pos[k] = len(groups)
		groups = append(groups, models.FlowGroup{Tier1: r.unit, Tier3: r.reason, Count: 1})
	}
	return groups
}
