package extract

import (
	"context"
	"fmt"
	"strings"

	"github.com/macrolens/causeway/internal/core/common"
	"github.com/macrolens/causeway/internal/core/model"
	"github.com/macrolens/causeway/internal/llm"
)

// defaultPrompt asks for the raw edge schema directly, so the response can
// be parsed straight into model.RawEdge values. %s receives the document.
const defaultPrompt = `You are a macro-financial analyst. Read the document below and list every causal claim it makes.

Respond with a single JSON object of this exact shape:
{
  "causal_statements": [
    {
      "head_node": "Policy Rate",
      "relation": "raises",
      "tail_node": "Discount Rate",
      "time_granularity": "quarter",
      "confidence": "high",
      "reflection_quality": 0.8,
      "temporal_quality": 0.6
    }
  ]
}

Rules:
- head_node and tail_node are short noun phrases naming the cause and the effect.
- relation is the verb phrase linking them, kept close to the document's wording.
- time_granularity is one of: day, month, quarter, year.
- confidence is one of: low, medium, high.
- reflection_quality and temporal_quality are in [0, 1]; omit them when unsure.
- Only report claims the document actually makes.

Document:
%s`

type extractedStatement struct {
	HeadNode          string   `json:"head_node"`
	Relation          string   `json:"relation"`
	TailNode          string   `json:"tail_node"`
	TimeGranularity   string   `json:"time_granularity"`
	Confidence        string   `json:"confidence"`
	ReflectionQuality *float64 `json:"reflection_quality"`
	TemporalQuality   *float64 `json:"temporal_quality"`
}

type extractionResult struct {
	CausalStatements []extractedStatement `json:"causal_statements"`
}

type Extractor struct {
	LLM    llm.Client
	Prompt string
}

// NewExtractor uses the built-in prompt when prompt is empty.
func NewExtractor(client llm.Client, prompt string) *Extractor {
	return &Extractor{
		LLM:    client,
		Prompt: prompt,
	}
}

// ExtractEdges turns a free-text document into raw causal edges. Statements
// missing a head or tail node are dropped; everything else is cleaned up and
// left for the scoring layer to judge.
func (e *Extractor) ExtractEdges(ctx context.Context, text string) ([]model.RawEdge, error) {
	prompt := e.Prompt
	if prompt == "" {
		prompt = defaultPrompt
	}

	response, err := e.LLM.Generate(ctx, fmt.Sprintf(prompt, text))
	if err != nil {
		return nil, fmt.Errorf("failed to generate causal statements: %w", err)
	}

	result, err := common.ParseJSON[extractionResult](response)
	if err != nil {
		return nil, fmt.Errorf("failed to parse causal statements: %w", err)
	}

	edges := make([]model.RawEdge, 0, len(result.CausalStatements))
	for _, statement := range result.CausalStatements {
		head := strings.TrimSpace(statement.HeadNode)
		tail := strings.TrimSpace(statement.TailNode)
		if head == "" || tail == "" {
			continue
		}
		granularity := model.TimeGranularity(strings.ToLower(strings.TrimSpace(statement.TimeGranularity)))
		edges = append(edges, model.RawEdge{
			HeadNode:        head,
			Relation:        strings.TrimSpace(statement.Relation),
			TailNode:        tail,
			TimeGranularity: granularity.Normalize(),
			Properties: model.EdgeProperties{
				Confidence:        model.Confidence(strings.ToLower(strings.TrimSpace(statement.Confidence))),
				ReflectionQuality: statement.ReflectionQuality,
				TemporalQuality:   statement.TemporalQuality,
			},
		})
	}
	return edges, nil
}
