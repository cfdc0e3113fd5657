package plot

import (
	"errors"
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/pivolan/payroll_analyzer/domain/models"
	"go.uber.org/zap"
)

// ErrCyclicFlow is returned for graphs whose links loop back, which a Sankey cannot draw.
var ErrCyclicFlow = errors.New("flow graph has a cycle")

// SankeyHTML writes the flow graph as a standalone Sankey page.
// Self edges are left out. Graphs built with payroll.NodesByTier never loop,
// other graphs with a cycle return ErrCyclicFlow.
func SankeyHTML(w io.Writer, title string, g *models.FlowGraph, logger *zap.Logger) error {
	if g == nil || len(g.Nodes) == 0 {
		return ErrNoData
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	names := uniqueNames(g.Nodes)

	nodes := make([]opts.SankeyNode, len(names))
	for i, name := range names {
		nodes[i] = opts.SankeyNode{Name: name}
	}
	links, err := sankeyLinks(g, names, logger)
	if err != nil {
		return err
	}

	sankey := charts.NewSankey()
	sankey.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: title, Width: "1200px", Height: "700px"}),
		charts.WithTitleOpts(opts.Title{Title: title}),
	)
	sankey.AddSeries("flow", nodes, links)
	if err := sankey.Render(w); err != nil {
		return fmt.Errorf("render sankey: %w", err)
	}
	return nil
}

func sankeyLinks(g *models.FlowGraph, names []string, logger *zap.Logger) ([]opts.SankeyLink, error) {
	links := make([]opts.SankeyLink, 0, len(g.Edges))
	kept := make([]models.FlowEdge, 0, len(g.Edges))
	for _, e := range g.Edges {
		if e.Source == e.Target {
			logger.Warn("self edge not drawn", zap.String("node", names[e.Source]), zap.Int("weight", e.Weight))
			continue
		}
		kept = append(kept, e)
		links = append(links, opts.SankeyLink{
			Source: names[e.Source],
			Target: names[e.Target],
			Value:  float32(e.Weight),
		})
	}
	if hasCycle(len(g.Nodes), kept) {
		return nil, ErrCyclicFlow
	}
	return links, nil
}

// hasCycle runs Kahn's algorithm over the edges.
func hasCycle(nodes int, edges []models.FlowEdge) bool {
	indegree := make([]int, nodes)
	next := make([][]int, nodes)
	for _, e := range edges {
		indegree[e.Target]++
		next[e.Source] = append(next[e.Source], e.Target)
	}
	queue := []int{}
	for n, d := range indegree {
		if d == 0 {
			queue = append(queue, n)
		}
	}
	visited := 0
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		visited++
		for _, m := range next[n] {
			if indegree[m]--; indegree[m] == 0 {
				queue = append(queue, m)
			}
		}
	}
	return visited < nodes
}

// uniqueNames suffixes repeated labels, which appear when tiers keep separate nodes.
func uniqueNames(labels []string) []string {
	seen := map[string]int{}
	names := make([]string, len(labels))
	for i, l := range labels {
		seen[l]++
		if n := seen[l]; n > 1 {
			names[i] = fmt.Sprintf("%s (%d)", l, n)
			continue
		}
		names[i] = l
	}
	return names
}
