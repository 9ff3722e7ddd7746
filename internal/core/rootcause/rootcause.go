package rootcause

import (
	"math"
	"sort"
	"time"

	"github.com/macrolens/causeway/internal/core/model"
	"github.com/macrolens/causeway/internal/core/scoring"
)

// factorFloor drops edges whose multiplicative factor can no longer change
// the outcome.
const factorFloor = 1e-12

// topPathCount is how many alternative chains a report retains.
const topPathCount = 3

// frame is one node on the backward walk. path and edges grow target-first;
// abs and signed hold the multiplicative influence accumulated so far.
type frame struct {
	node   string
	depth  int
	path   []string
	edges  []model.CausalLink
	abs    float64
	signed float64
}

// Search walks the graph backwards from targetNode and returns the most
// influential upstream chain, plus the runner-up paths.
//
// The walk is depth-first over an explicit stack, so deep graphs cannot
// overflow the goroutine stack. From each node it follows incoming links in
// descending |strength| order, multiplying strength, decay and polarity
// along the way. A node already on the current path is never revisited,
// which keeps the walk finite even on cyclic input.
func Search(targetNode string, graph []model.CausalLink, maxDepth int) model.RootCauseReport {
	report := model.RootCauseReport{
		TargetNode:  targetNode,
		GeneratedAt: time.Now().UTC(),
		Path:        []string{},
		EdgePath:    []model.CausalLink{},
		TopPaths:    []model.CausalPath{},
	}
	if targetNode == "" {
		return report
	}

	incoming := make(map[string][]model.CausalLink, len(graph))
	for _, link := range graph {
		incoming[link.TailNode] = append(incoming[link.TailNode], link)
	}
	for node := range incoming {
		links := incoming[node]
		sort.SliceStable(links, func(i, j int) bool {
			return math.Abs(links[i].Strength) > math.Abs(links[j].Strength)
		})
	}

	var candidates []model.CausalPath

	stack := []frame{{
		node:   targetNode,
		path:   []string{targetNode},
		abs:    1,
		signed: 1,
	}}
	for len(stack) > 0 {
		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		var expansions []frame
		if current.depth < maxDepth {
			for _, link := range incoming[current.node] {
				if onPath(current.path, link.HeadNode) {
					continue
				}
				factor := link.Strength * link.TimeGranularity.Decay() *
					scoring.EffectivePolarity(link)
				if math.Abs(factor) < factorFloor {
					continue
				}
				expansions = append(expansions, frame{
					node:   link.HeadNode,
					depth:  current.depth + 1,
					path:   appendNode(current.path, link.HeadNode),
					edges:  appendLink(current.edges, link),
					abs:    current.abs * math.Abs(factor),
					signed: current.signed * factor,
				})
			}
		}

		if len(expansions) == 0 {
			candidates = append(candidates, finishPath(current))
			continue
		}
		// Push in reverse so the strongest incoming link is explored first.
		for i := len(expansions) - 1; i >= 0; i-- {
			stack = append(stack, expansions[i])
		}
	}

	best := 0
	for i := 1; i < len(candidates); i++ {
		if candidates[i].AbsScore > candidates[best].AbsScore {
			best = i
		}
	}
	primary := candidates[best]

	ranked := make([]model.CausalPath, len(candidates))
	copy(ranked, candidates)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].AbsScore > ranked[j].AbsScore
	})
	if len(ranked) > topPathCount {
		ranked = ranked[:topPathCount]
	}

	report.RootCause = primary.Path[0]
	report.Path = primary.Path
	report.EdgePath = primary.Edges
	report.InfluenceScore = primary.AbsScore
	report.DirectionalEffect = primary.SignedScore
	report.TopPaths = ranked
	return report
}

// finishPath reverses a target-first frame into a root-first causal path.
func finishPath(f frame) model.CausalPath {
	path := make([]string, len(f.path))
	for i, node := range f.path {
		path[len(f.path)-1-i] = node
	}
	edges := make([]model.CausalLink, len(f.edges))
	for i, edge := range f.edges {
		edges[len(f.edges)-1-i] = edge
	}
	return model.CausalPath{
		Path:        path,
		Edges:       edges,
		AbsScore:    f.abs,
		SignedScore: f.signed,
	}
}

func onPath(path []string, node string) bool {
	for _, seen := range path {
		if seen == node {
			return true
		}
	}
	return false
}

// appendNode copies before appending so sibling frames never share backing
// arrays.
func appendNode(path []string, node string) []string {
	next := make([]string, len(path), len(path)+1)
	copy(next, path)
	return append(next, node)
}

func appendLink(edges []model.CausalLink, link model.CausalLink) []model.CausalLink {
	next := make([]model.CausalLink, len(edges), len(edges)+1)
	copy(next, edges)
	return append(next, link)
}
