package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/macrolens/causeway/internal/core/model"
)

func (s *Server) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

type BuildSkeletonRequest struct {
	GroupID  string          `json:"group_id"`
	RawEdges []model.RawEdge `json:"raw_edges"`
	Persist  bool            `json:"persist"`
}

// BuildSkeleton scores and merges raw edges into an acyclic graph,
// optionally persisting it under a group id.
func (s *Server) BuildSkeleton(c *gin.Context) {
	var req BuildSkeletonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	links := s.Engine.BuildSkeleton(req.RawEdges)

	groupID := req.GroupID
	if groupID == "" {
		groupID = uuid.New().String()
	}

	if req.Persist {
		if s.Store == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "graph store not configured"})
			return
		}
		if err := s.Store.SaveSkeleton(c.Request.Context(), groupID, links); err != nil {
			s.Log.Error("failed to persist skeleton", "group_id", groupID, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to persist skeleton"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"group_id":   groupID,
		"link_count": len(links),
		"links":      links,
	})
}

func (s *Server) GetSkeleton(c *gin.Context) {
	if s.Store == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "graph store not configured"})
		return
	}

	groupID := c.Param("group_id")
	links, err := s.Store.LoadSkeleton(c.Request.Context(), groupID)
	if err != nil {
		s.Log.Error("failed to load skeleton", "group_id", groupID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load skeleton"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"group_id":   groupID,
		"link_count": len(links),
		"links":      links,
	})
}

func (s *Server) DeleteSkeleton(c *gin.Context) {
	if s.Store == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "graph store not configured"})
		return
	}

	groupID := c.Param("group_id")
	if err := s.Store.DeleteGroup(c.Request.Context(), groupID); err != nil {
		s.Log.Error("failed to delete group", "group_id", groupID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete group"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "deleted", "group_id": groupID})
}

type SimulateRequest struct {
	NodeID       string             `json:"node_id"`
	ValueDelta   float64            `json:"value_delta"`
	CausalGraph  []model.CausalLink `json:"causal_graph"`
	HorizonSteps *int               `json:"horizon_steps"`
}

// Simulate runs a what-if over a caller-supplied graph. An omitted horizon
// falls back to the engine default; an explicit zero keeps the shock on the
// seed node.
func (s *Server) Simulate(c *gin.Context) {
	var req SimulateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	if req.NodeID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "node_id is required"})
		return
	}

	horizon := s.Engine.DefaultHorizonSteps
	if req.HorizonSteps != nil {
		horizon = *req.HorizonSteps
	}

	report := s.Engine.Simulate(req.NodeID, req.ValueDelta, req.CausalGraph, horizon)
	c.JSON(http.StatusOK, report)
}

type SimulateBatchRequest struct {
	Scenarios    []model.Scenario   `json:"scenarios"`
	CausalGraph  []model.CausalLink `json:"causal_graph"`
	HorizonSteps *int               `json:"horizon_steps"`
}

func (s *Server) SimulateBatch(c *gin.Context) {
	var req SimulateBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	horizon := s.Engine.DefaultHorizonSteps
	if req.HorizonSteps != nil {
		horizon = *req.HorizonSteps
	}

	reports := s.Engine.SimulateBatch(req.Scenarios, req.CausalGraph, horizon)
	c.JSON(http.StatusOK, gin.H{"reports": reports})
}

type RootCauseRequest struct {
	TargetNode  string             `json:"target_node"`
	CausalGraph []model.CausalLink `json:"causal_graph"`
	MaxDepth    *int               `json:"max_depth"`
}

func (s *Server) RootCause(c *gin.Context) {
	var req RootCauseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	if req.TargetNode == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "target_node is required"})
		return
	}

	maxDepth := s.Engine.DefaultMaxDepth
	if req.MaxDepth != nil {
		maxDepth = *req.MaxDepth
	}

	report := s.Engine.RootCause(req.TargetNode, req.CausalGraph, maxDepth)
	c.JSON(http.StatusOK, report)
}

type ForecastRequest struct {
	NodeID       string          `json:"node_id"`
	ValueDelta   float64         `json:"value_delta"`
	RawEdges     []model.RawEdge `json:"raw_edges"`
	HorizonSteps *int            `json:"horizon_steps"`
}

// Forecast builds a skeleton from raw edges and simulates in one call.
func (s *Server) Forecast(c *gin.Context) {
	var req ForecastRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	if req.NodeID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "node_id is required"})
		return
	}

	horizon := s.Engine.DefaultHorizonSteps
	if req.HorizonSteps != nil {
		horizon = *req.HorizonSteps
	}

	links, report := s.Engine.Forecast(req.RawEdges, req.NodeID, req.ValueDelta, horizon)
	c.JSON(http.StatusOK, gin.H{
		"links":  links,
		"report": report,
	})
}

type ExplainRequest struct {
	TargetNode string          `json:"target_node"`
	RawEdges   []model.RawEdge `json:"raw_edges"`
	MaxDepth   *int            `json:"max_depth"`
}

// Explain builds a skeleton from raw edges and traces the target's root
// cause in one call.
func (s *Server) Explain(c *gin.Context) {
	var req ExplainRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	if req.TargetNode == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "target_node is required"})
		return
	}

	maxDepth := s.Engine.DefaultMaxDepth
	if req.MaxDepth != nil {
		maxDepth = *req.MaxDepth
	}

	links, report := s.Engine.Explain(req.RawEdges, req.TargetNode, maxDepth)
	c.JSON(http.StatusOK, gin.H{
		"links":  links,
		"report": report,
	})
}

type IngestDocumentRequest struct {
	GroupID string `json:"group_id"`
	Text    string `json:"text"`
	Persist bool   `json:"persist"`
}

// IngestDocument extracts causal statements from free text, builds the
// skeleton and optionally persists it.
func (s *Server) IngestDocument(c *gin.Context) {
	var req IngestDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	if req.Text == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "text is required"})
		return
	}
	if s.Extractor == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "llm extraction not configured"})
		return
	}

	rawEdges, err := s.Extractor.ExtractEdges(c.Request.Context(), req.Text)
	if err != nil {
		s.Log.Error("failed to extract causal statements", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to extract causal statements"})
		return
	}

	links := s.Engine.BuildSkeleton(rawEdges)

	groupID := req.GroupID
	if groupID == "" {
		groupID = uuid.New().String()
	}

	if req.Persist {
		if s.Store == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "graph store not configured"})
			return
		}
		if err := s.Store.SaveSkeleton(c.Request.Context(), groupID, links); err != nil {
			s.Log.Error("failed to persist skeleton", "group_id", groupID, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to persist skeleton"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"group_id":  groupID,
		"raw_edges": rawEdges,
		"links":     links,
	})
}
