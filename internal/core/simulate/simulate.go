package simulate

import (
	"math"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/macrolens/causeway/internal/core/model"
	"github.com/macrolens/causeway/internal/core/scoring"
)

// noiseFloor prunes propagated deltas too small to matter, which also stops
// runaway amplification on dense graphs.
const noiseFloor = 1e-9

type hop struct {
	node  string
	delta float64
	depth int
}

// Run propagates a value shock from nodeID through the causal graph for at
// most horizonSteps hops and reports the accumulated impact per node.
//
// Propagation is breadth-first. Each traversed edge scales the delta by
// strength, granularity decay and effective polarity. A node only accepts
// contributions arriving at its shallowest depth, so cycles in a
// caller-supplied graph cannot loop forever.
func Run(nodeID string, valueDelta float64, graph []model.CausalLink, horizonSteps int) model.SimulationReport {
	report := model.SimulationReport{
		NodeID:       nodeID,
		ValueDelta:   valueDelta,
		HorizonSteps: horizonSteps,
		GeneratedAt:  time.Now().UTC(),
		Impacts:      []model.NodeImpact{},
	}
	if nodeID == "" {
		return report
	}

	adjacency := make(map[string][]model.CausalLink, len(graph))
	for _, link := range graph {
		adjacency[link.HeadNode] = append(adjacency[link.HeadNode], link)
	}

	impacts := make(map[string]float64)
	bestDepth := map[string]int{nodeID: 0}
	queue := []hop{{node: nodeID, delta: valueDelta}}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		impacts[current.node] += current.delta
		if current.depth >= horizonSteps {
			continue
		}

		for _, link := range adjacency[current.node] {
			propagated := current.delta * link.Strength *
				link.TimeGranularity.Decay() * scoring.EffectivePolarity(link)
			if math.Abs(propagated) < noiseFloor {
				continue
			}
			nextDepth := current.depth + 1
			if seen, ok := bestDepth[link.TailNode]; ok && nextDepth > seen {
				continue
			}
			bestDepth[link.TailNode] = nextDepth
			queue = append(queue, hop{node: link.TailNode, delta: propagated, depth: nextDepth})
		}
	}

	report.Impacts = make([]model.NodeImpact, 0, len(impacts))
	for node, delta := range impacts {
		report.Impacts = append(report.Impacts, model.NodeImpact{NodeID: node, Delta: delta})
	}
	sort.SliceStable(report.Impacts, func(i, j int) bool {
		left, right := math.Abs(report.Impacts[i].Delta), math.Abs(report.Impacts[j].Delta)
		if left != right {
			return left > right
		}
		return report.Impacts[i].NodeID < report.Impacts[j].NodeID
	})
	return report
}

// RunBatch evaluates independent scenarios over a shared graph, at most
// parallelism at a time. Results line up with the input order.
func RunBatch(scenarios []model.Scenario, graph []model.CausalLink, horizonSteps, parallelism int) []model.SimulationReport {
	reports := make([]model.SimulationReport, len(scenarios))

	var group errgroup.Group
	if parallelism > 0 {
		group.SetLimit(parallelism)
	}
	for i, scenario := range scenarios {
		i, scenario := i, scenario
		group.Go(func() error {
			reports[i] = Run(scenario.NodeID, scenario.ValueDelta, graph, horizonSteps)
			return nil
		})
	}
	_ = group.Wait()

	return reports
}
