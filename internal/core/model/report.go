package model

import "time"

// NodeImpact is one accumulated downstream effect in a what-if simulation.
type NodeImpact struct {
	NodeID string  `json:"node_id"`
	Delta  float64 `json:"delta"`
}

type SimulationReport struct {
	NodeID       string       `json:"node_id"`
	ValueDelta   float64      `json:"value_delta"`
	HorizonSteps int          `json:"horizon_steps"`
	GeneratedAt  time.Time    `json:"generated_at"`
	Impacts      []NodeImpact `json:"impacts"` // sorted by |delta| descending
}

// CausalPath is one backward chain from a candidate root cause to the
// target, listed root first.
type CausalPath struct {
	Path        []string     `json:"path"`
	Edges       []CausalLink `json:"edges"`
	AbsScore    float64      `json:"abs_score"`
	SignedScore float64      `json:"signed_score"`
}

type RootCauseReport struct {
	TargetNode        string       `json:"target_node"`
	RootCause         string       `json:"root_cause"`
	Path              []string     `json:"path"`
	EdgePath          []CausalLink `json:"edge_path"`
	InfluenceScore    float64      `json:"influence_score"`
	DirectionalEffect float64      `json:"directional_effect"`
	TopPaths          []CausalPath `json:"top_paths"`
	GeneratedAt       time.Time    `json:"generated_at"`
}
