package skeleton

import (
	"sort"

	"github.com/macrolens/causeway/internal/core/common"
	"github.com/macrolens/causeway/internal/core/model"
	"github.com/macrolens/causeway/internal/core/scoring"
)

type tripleKey struct {
	head     string
	relation string
	tail     string
}

// Build scores raw edges, merges duplicates of the same (head, relation,
// tail) triple and returns an acyclic set of causal links. Candidate links
// are admitted strongest first; a link whose tail already reaches its head
// over admitted links would close a cycle and is dropped.
func Build(rawEdges []model.RawEdge) []model.CausalLink {
	merged := make(map[tripleKey]*model.CausalLink)
	var order []tripleKey

	for _, raw := range rawEdges {
		key := tripleKey{raw.HeadNode, raw.Relation, raw.TailNode}
		score := scoring.ScoreEdge(raw)

		link, ok := merged[key]
		if !ok {
			merged[key] = &model.CausalLink{
				HeadNode:        raw.HeadNode,
				Relation:        raw.Relation,
				TailNode:        raw.TailNode,
				Strength:        score.Strength,
				Polarity:        score.Polarity,
				SupportCount:    1,
				TimeGranularity: raw.TimeGranularity.Normalize(),
				ReasoningTags:   mergeTags(nil, score.ReasoningTags),
				MatrixBoost:     score.MatrixBoost,
			}
			order = append(order, key)
			continue
		}

		if score.Strength > link.Strength {
			link.Strength = score.Strength
		}
		link.Polarity = meanPolarity(link.Polarity, link.SupportCount, score.Polarity)
		link.SupportCount++
		if score.MatrixBoost > link.MatrixBoost {
			link.MatrixBoost = score.MatrixBoost
		}
		link.ReasoningTags = mergeTags(link.ReasoningTags, score.ReasoningTags)
	}

	links := make([]model.CausalLink, 0, len(order))
	for _, key := range order {
		links = append(links, *merged[key])
	}

	// Stable keeps first-seen order among equal strengths, so rebuilding
	// from the same input always yields the same skeleton.
	sort.SliceStable(links, func(i, j int) bool {
		return links[i].Strength > links[j].Strength
	})

	adjacency := make(map[string][]string)
	kept := make([]model.CausalLink, 0, len(links))
	for _, link := range links {
		if link.HeadNode == link.TailNode {
			continue
		}
		if reaches(adjacency, link.TailNode, link.HeadNode) {
			continue
		}
		adjacency[link.HeadNode] = append(adjacency[link.HeadNode], link.TailNode)
		kept = append(kept, link)
	}
	return kept
}

// meanPolarity folds one more observation into the running mean over a
// link's support.
func meanPolarity(current float64, supportCount int, observed float64) float64 {
	mean := (current*float64(supportCount) + observed) / float64(supportCount+1)
	return common.Clamp(mean, -1, 1)
}

// reaches reports whether from can reach to over the admitted edges.
func reaches(adjacency map[string][]string, from, to string) bool {
	if from == to {
		return true
	}
	visited := map[string]bool{from: true}
	stack := []string{from}
	for len(stack) > 0 {
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, next := range adjacency[node] {
			if next == to {
				return true
			}
			if !visited[next] {
				visited[next] = true
				stack = append(stack, next)
			}
		}
	}
	return false
}

// mergeTags unions two tag sets into a sorted, duplicate-free slice.
func mergeTags(existing, incoming []string) []string {
	set := make(map[string]bool, len(existing)+len(incoming))
	for _, tag := range existing {
		set[tag] = true
	}
	for _, tag := range incoming {
		set[tag] = true
	}
	union := make([]string, 0, len(set))
	for tag := range set {
		union = append(union, tag)
	}
	sort.Strings(union)
	return union
}
