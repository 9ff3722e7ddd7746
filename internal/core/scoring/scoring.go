package scoring

import (
	"strings"

	"github.com/macrolens/causeway/internal/core/common"
	"github.com/macrolens/causeway/internal/core/concepts"
	"github.com/macrolens/causeway/internal/core/model"
)

const (
	baseStrength = 0.35
	minStrength  = 0.05
	maxStrength  = 0.98

	causalBoost = 1.12
	weakPenalty = 0.9
)

var causalVerbs = []string{
	"drives", "causes", "raises", "tightens", "expands", "accelerates",
	"improves",
}

var weakVerbs = []string{
	"correlates", "relates", "tracks", "mentions",
}

var inverseVerbs = []string{
	"reduces", "suppresses", "compresses", "decreases", "inverse", "offsets",
	"hurts",
}

// EdgeScore is the scored form of a single raw edge, before merging.
type EdgeScore struct {
	Strength      float64
	Polarity      float64
	MatrixBoost   float64
	ReasoningTags []string
}

// ScoreEdge turns one raw causal statement into a bounded strength and a
// signed polarity. Evidence quality raises the base score, the relation verb
// and the concept matrix scale it, and the result stays inside
// [minStrength, maxStrength] no matter how the inputs misbehave.
func ScoreEdge(raw model.RawEdge) EdgeScore {
	base := baseStrength + confidenceBonus(raw.Properties.Confidence)
	base += 0.20 * quality(raw.Properties.ReflectionQuality)
	base += 0.20 * quality(raw.Properties.TemporalQuality)
	base = common.Clamp(base, minStrength, maxStrength)

	boost := relationBoost(raw.Relation)

	tags := []string{"base_signal"}
	if boost > 1.0 {
		tags = append(tags, "relation_weighted")
	}

	matrixBoost := 1.0
	matrixPolarity := 1.0
	headConcepts := concepts.MatchConcepts(raw.HeadNode)
	tailConcepts := concepts.MatchConcepts(raw.TailNode)
	if entry, ok := concepts.BestMatrixEntry(headConcepts, tailConcepts); ok {
		matrixBoost = entry.Multiplier
		matrixPolarity = entry.Polarity
		tags = append(tags, entry.PathLabel)
	}

	return EdgeScore{
		Strength:      common.Clamp(base*boost*matrixBoost, minStrength, maxStrength),
		Polarity:      common.Clamp(matrixPolarity*RelationPolarity(raw.Relation), -1, 1),
		MatrixBoost:   matrixBoost,
		ReasoningTags: tags,
	}
}

// RelationPolarity reads the direction of a relation verb phrase: -1 when it
// contains an inverse verb, +1 otherwise.
func RelationPolarity(relation string) float64 {
	if containsAny(strings.ToLower(relation), inverseVerbs) {
		return -1
	}
	return 1
}

// EffectivePolarity is the polarity used during propagation. A zero polarity
// means the link was built without direction information, so the relation
// verb decides.
func EffectivePolarity(link model.CausalLink) float64 {
	if link.Polarity != 0 {
		return link.Polarity
	}
	return RelationPolarity(link.Relation)
}

func confidenceBonus(c model.Confidence) float64 {
	switch c {
	case model.ConfidenceHigh:
		return 0.25
	case model.ConfidenceMedium:
		return 0.15
	case model.ConfidenceLow:
		return 0.05
	default:
		return 0
	}
}

func relationBoost(relation string) float64 {
	lowered := strings.ToLower(relation)
	if containsAny(lowered, causalVerbs) {
		return causalBoost
	}
	if containsAny(lowered, weakVerbs) {
		return weakPenalty
	}
	return 1.0
}

func quality(v *float64) float64 {
	if v == nil {
		return 0
	}
	return common.Clamp01(*v)
}

func containsAny(s string, verbs []string) bool {
	for _, verb := range verbs {
		if strings.Contains(s, verb) {
			return true
		}
	}
	return false
}
