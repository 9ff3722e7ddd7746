package model

type Confidence string

const (
	ConfidenceLow    Confidence = "low"
	ConfidenceMedium Confidence = "medium"
	ConfidenceHigh   Confidence = "high"
)

// EdgeProperties carries optional evidence metadata attached to a raw edge.
// Quality scores outside [0, 1] are clamped during scoring; nil means absent.
type EdgeProperties struct {
	Confidence        Confidence `json:"confidence,omitempty"`
	ReflectionQuality *float64   `json:"reflection_quality,omitempty"`
	TemporalQuality   *float64   `json:"temporal_quality,omitempty"`
}

// RawEdge is a single weakly structured causal statement, typically produced
// by LLM extraction over a document.
type RawEdge struct {
	HeadNode        string          `json:"head_node"`
	Relation        string          `json:"relation"` // free-form verb phrase, e.g. "raises"
	TailNode        string          `json:"tail_node"`
	TimeGranularity TimeGranularity `json:"time_granularity,omitempty"`
	Properties      EdgeProperties  `json:"properties"`
}
