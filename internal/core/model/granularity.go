package model

type TimeGranularity string

const (
	GranularityDay     TimeGranularity = "day"
	GranularityMonth   TimeGranularity = "month"
	GranularityQuarter TimeGranularity = "quarter"
	GranularityYear    TimeGranularity = "year"
)

// Normalize maps unknown or empty granularities to the day default.
func (g TimeGranularity) Normalize() TimeGranularity {
	switch g {
	case GranularityMonth, GranularityQuarter, GranularityYear, GranularityDay:
		return g
	default:
		return GranularityDay
	}
}

// Decay is the per-hop attenuation applied when influence crosses an edge of
// this granularity. Slower-moving relationships retain more of their signal.
func (g TimeGranularity) Decay() float64 {
	switch g {
	case GranularityYear:
		return 0.9
	case GranularityQuarter:
		return 0.85
	case GranularityMonth:
		return 0.78
	default:
		return 0.7
	}
}
