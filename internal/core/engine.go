package core

import (
	"github.com/macrolens/causeway/internal/core/model"
	"github.com/macrolens/causeway/internal/core/rootcause"
	"github.com/macrolens/causeway/internal/core/simulate"
	"github.com/macrolens/causeway/internal/core/skeleton"
)

// Engine bundles the causal reasoning pipeline behind one entry point:
// skeleton construction, forward what-if simulation and backward root cause
// search. It holds no I/O and no mutable state, so a single Engine is safe
// for concurrent use.
type Engine struct {
	// DefaultHorizonSteps bounds simulations when the caller does not
	// supply a horizon.
	DefaultHorizonSteps int
	// DefaultMaxDepth bounds root cause searches when the caller does not
	// supply a depth.
	DefaultMaxDepth int
	// BulkParallelism caps concurrent scenario evaluation in SimulateBatch.
	BulkParallelism int
}

func NewEngine() *Engine {
	return &Engine{
		DefaultHorizonSteps: 3,
		DefaultMaxDepth:     6,
		BulkParallelism:     4,
	}
}

// BuildSkeleton scores, merges and cycle-filters raw edges into a causal
// graph.
func (e *Engine) BuildSkeleton(rawEdges []model.RawEdge) []model.CausalLink {
	return skeleton.Build(rawEdges)
}

// Simulate propagates a value shock through an existing graph. A zero or
// negative horizon means the shock stays on the seed node.
func (e *Engine) Simulate(nodeID string, valueDelta float64, graph []model.CausalLink, horizonSteps int) model.SimulationReport {
	return simulate.Run(nodeID, valueDelta, graph, horizonSteps)
}

// SimulateBatch evaluates independent scenarios over a shared graph.
func (e *Engine) SimulateBatch(scenarios []model.Scenario, graph []model.CausalLink, horizonSteps int) []model.SimulationReport {
	return simulate.RunBatch(scenarios, graph, horizonSteps, e.BulkParallelism)
}

// RootCause finds the most influential upstream chain ending at targetNode.
func (e *Engine) RootCause(targetNode string, graph []model.CausalLink, maxDepth int) model.RootCauseReport {
	return rootcause.Search(targetNode, graph, maxDepth)
}

// Forecast builds a skeleton from raw edges and immediately simulates a
// shock over it. The built graph is returned so callers can reuse it.
func (e *Engine) Forecast(rawEdges []model.RawEdge, nodeID string, valueDelta float64, horizonSteps int) ([]model.CausalLink, model.SimulationReport) {
	graph := skeleton.Build(rawEdges)
	return graph, simulate.Run(nodeID, valueDelta, graph, horizonSteps)
}

// Explain builds a skeleton from raw edges and immediately searches for the
// root cause of targetNode over it.
func (e *Engine) Explain(rawEdges []model.RawEdge, targetNode string, maxDepth int) ([]model.CausalLink, model.RootCauseReport) {
	graph := skeleton.Build(rawEdges)
	return graph, rootcause.Search(targetNode, graph, maxDepth)
}
