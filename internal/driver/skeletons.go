package driver

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/macrolens/causeway/internal/core/model"
	"github.com/macrolens/causeway/internal/logger"
)

// SkeletonStore persists built causal skeletons per group so a graph can be
// reloaded and re-simulated without re-ingesting the source documents.
type SkeletonStore struct {
	Driver GraphDriver
	Log    *logger.Logger
}

func NewSkeletonStore(d GraphDriver, log *logger.Logger) *SkeletonStore {
	return &SkeletonStore{
		Driver: d,
		Log:    log,
	}
}

// SaveSkeleton upserts every concept node and causal link under the group.
// Re-saving a group overwrites link attributes in place.
func (s *SkeletonStore) SaveSkeleton(ctx context.Context, groupID string, links []model.CausalLink) error {
	now := time.Now().UTC().Format(time.RFC3339)

	for _, link := range links {
		for _, name := range []string{link.HeadNode, link.TailNode} {
			params := map[string]interface{}{
				"name":       name,
				"group_id":   groupID,
				"uuid":       uuid.New().String(),
				"created_at": now,
			}
			if _, err := s.Driver.ExecuteQuery(ctx, SaveConceptNodeQuery, params); err != nil {
				return fmt.Errorf("failed to save concept '%s': %w", name, err)
			}
		}

		params := map[string]interface{}{
			"head_node":        link.HeadNode,
			"relation":         link.Relation,
			"tail_node":        link.TailNode,
			"group_id":         groupID,
			"strength":         link.Strength,
			"polarity":         link.Polarity,
			"support_count":    link.SupportCount,
			"time_granularity": string(link.TimeGranularity),
			"reasoning_tags":   link.ReasoningTags,
			"matrix_boost":     link.MatrixBoost,
			"updated_at":       now,
		}
		if _, err := s.Driver.ExecuteQuery(ctx, SaveCausalLinkQuery, params); err != nil {
			return fmt.Errorf("failed to save link %s-[%s]->%s: %w",
				link.HeadNode, link.Relation, link.TailNode, err)
		}
	}

	s.Log.Info("skeleton saved", "group_id", groupID, "links", len(links))
	return nil
}

// LoadSkeleton reads a group's links back, strongest first.
func (s *SkeletonStore) LoadSkeleton(ctx context.Context, groupID string) ([]model.CausalLink, error) {
	result, err := s.Driver.ExecuteQuery(ctx, GetGroupLinksQuery, map[string]interface{}{
		"group_id": groupID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load skeleton for group '%s': %w", groupID, err)
	}

	links := make([]model.CausalLink, 0, len(result.Records))
	for _, record := range result.Records {
		links = append(links, recordToLink(record))
	}
	return links, nil
}

// DeleteGroup removes a group's concepts and links entirely.
func (s *SkeletonStore) DeleteGroup(ctx context.Context, groupID string) error {
	if _, err := s.Driver.ExecuteQuery(ctx, DeleteGroupQuery, map[string]interface{}{
		"group_id": groupID,
	}); err != nil {
		return fmt.Errorf("failed to delete group '%s': %w", groupID, err)
	}
	s.Log.Info("group deleted", "group_id", groupID)
	return nil
}

func recordToLink(record *neo4j.Record) model.CausalLink {
	link := model.CausalLink{}
	link.HeadNode = stringValue(record, "head_node")
	link.Relation = stringValue(record, "relation")
	link.TailNode = stringValue(record, "tail_node")
	link.Strength = floatValue(record, "strength")
	link.Polarity = floatValue(record, "polarity")
	link.SupportCount = intValue(record, "support_count")
	link.TimeGranularity = model.TimeGranularity(stringValue(record, "time_granularity")).Normalize()
	link.ReasoningTags = stringSliceValue(record, "reasoning_tags")
	link.MatrixBoost = floatValue(record, "matrix_boost")
	return link
}

func stringValue(record *neo4j.Record, key string) string {
	if v, ok := record.Get(key); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

func floatValue(record *neo4j.Record, key string) float64 {
	if v, ok := record.Get(key); ok {
		switch n := v.(type) {
		case float64:
			return n
		case int64:
			return float64(n)
		}
	}
	return 0
}

func intValue(record *neo4j.Record, key string) int {
	if v, ok := record.Get(key); ok {
		switch n := v.(type) {
		case int64:
			return int(n)
		case float64:
			return int(n)
		}
	}
	return 0
}

func stringSliceValue(record *neo4j.Record, key string) []string {
	v, ok := record.Get(key)
	if !ok {
		return nil
	}
	raw, ok := v.([]interface{})
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
