package model

// CausalLink is a scored, directed edge in the causal skeleton. Raw edges
// sharing the same (head, relation, tail) triple merge into one link.
type CausalLink struct {
	HeadNode        string          `json:"head_node"`
	Relation        string          `json:"relation"`
	TailNode        string          `json:"tail_node"`
	Strength        float64         `json:"strength"` // [0.05, 0.98]
	Polarity        float64         `json:"polarity"` // [-1, 1], 0 means unset
	SupportCount    int             `json:"support_count"`
	TimeGranularity TimeGranularity `json:"time_granularity"`
	ReasoningTags   []string        `json:"reasoning_tags"`
	MatrixBoost     float64         `json:"matrix_boost"`
}

// Scenario is one (node, delta) injection for batch what-if simulation.
type Scenario struct {
	NodeID     string  `json:"node_id"`
	ValueDelta float64 `json:"value_delta"`
}
