package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macrolens/causeway/internal/config"
	"github.com/macrolens/causeway/internal/core"
	"github.com/macrolens/causeway/internal/core/model"
	"github.com/macrolens/causeway/internal/extract"
	"github.com/macrolens/causeway/internal/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestServer() *Server {
	return &Server{
		Engine: core.NewEngine(),
		Log:    logger.Nop(),
	}
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func chainGraph() []model.CausalLink {
	return []model.CausalLink{
		{HeadNode: "PolicyRate", Relation: "raises", TailNode: "BondYield",
			Strength: 0.5, Polarity: 1, TimeGranularity: model.GranularityYear},
	}
}

func TestHealth(t *testing.T) {
	router := newTestServer().SetupRouter()

	w := doJSON(t, router, http.MethodGet, "/healthz", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status": "ok"}`, w.Body.String())
}

func TestBuildSkeleton(t *testing.T) {
	router := newTestServer().SetupRouter()

	w := doJSON(t, router, http.MethodPost, "/v1/skeleton", BuildSkeletonRequest{
		RawEdges: []model.RawEdge{
			{HeadNode: "A", Relation: "causes", TailNode: "B",
				Properties: model.EdgeProperties{Confidence: model.ConfidenceHigh}},
			{HeadNode: "B", Relation: "causes", TailNode: "C",
				Properties: model.EdgeProperties{Confidence: model.ConfidenceHigh}},
			{HeadNode: "C", Relation: "causes", TailNode: "A",
				Properties: model.EdgeProperties{Confidence: model.ConfidenceLow}},
		},
	})

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		GroupID   string             `json:"group_id"`
		LinkCount int                `json:"link_count"`
		Links     []model.CausalLink `json:"links"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.GroupID)
	assert.Equal(t, 2, resp.LinkCount)
	require.Len(t, resp.Links, 2)
	assert.Equal(t, "A", resp.Links[0].HeadNode)
}

func TestBuildSkeleton_InvalidJSON(t *testing.T) {
	router := newTestServer().SetupRouter()

	req := httptest.NewRequest(http.MethodPost, "/v1/skeleton", bytes.NewReader([]byte("{not json")))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBuildSkeleton_PersistWithoutStore(t *testing.T) {
	router := newTestServer().SetupRouter()

	w := doJSON(t, router, http.MethodPost, "/v1/skeleton", BuildSkeletonRequest{
		RawEdges: []model.RawEdge{{HeadNode: "A", Relation: "causes", TailNode: "B"}},
		Persist:  true,
	})

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestSimulate(t *testing.T) {
	router := newTestServer().SetupRouter()
	horizon := 1

	w := doJSON(t, router, http.MethodPost, "/v1/simulate", SimulateRequest{
		NodeID:       "PolicyRate",
		ValueDelta:   1.0,
		CausalGraph:  chainGraph(),
		HorizonSteps: &horizon,
	})

	require.Equal(t, http.StatusOK, w.Code)

	var report model.SimulationReport
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &report))
	assert.Equal(t, "PolicyRate", report.NodeID)
	assert.Equal(t, 1, report.HorizonSteps)
	require.Len(t, report.Impacts, 2)
	assert.Equal(t, "BondYield", report.Impacts[1].NodeID)
	assert.InDelta(t, 0.45, report.Impacts[1].Delta, 1e-9)
}

func TestSimulate_OmittedHorizonUsesDefault(t *testing.T) {
	router := newTestServer().SetupRouter()

	// Chain deeper than the default horizon of 3.
	graph := []model.CausalLink{
		{HeadNode: "A", Relation: "raises", TailNode: "B", Strength: 0.5, Polarity: 1, TimeGranularity: model.GranularityYear},
		{HeadNode: "B", Relation: "raises", TailNode: "C", Strength: 0.5, Polarity: 1, TimeGranularity: model.GranularityYear},
		{HeadNode: "C", Relation: "raises", TailNode: "D", Strength: 0.5, Polarity: 1, TimeGranularity: model.GranularityYear},
		{HeadNode: "D", Relation: "raises", TailNode: "E", Strength: 0.5, Polarity: 1, TimeGranularity: model.GranularityYear},
	}

	w := doJSON(t, router, http.MethodPost, "/v1/simulate", SimulateRequest{
		NodeID:      "A",
		ValueDelta:  1.0,
		CausalGraph: graph,
	})

	require.Equal(t, http.StatusOK, w.Code)

	var report model.SimulationReport
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &report))
	assert.Equal(t, 3, report.HorizonSteps)
	assert.Len(t, report.Impacts, 4) // A, B, C, D but not E
}

func TestSimulate_ExplicitZeroHorizon(t *testing.T) {
	// horizon_steps: 0 is not the same as omitting it.
	router := newTestServer().SetupRouter()
	zero := 0

	w := doJSON(t, router, http.MethodPost, "/v1/simulate", SimulateRequest{
		NodeID:       "PolicyRate",
		ValueDelta:   1.0,
		CausalGraph:  chainGraph(),
		HorizonSteps: &zero,
	})

	require.Equal(t, http.StatusOK, w.Code)

	var report model.SimulationReport
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &report))
	assert.Len(t, report.Impacts, 1)
}

func TestSimulate_MissingNodeID(t *testing.T) {
	router := newTestServer().SetupRouter()

	w := doJSON(t, router, http.MethodPost, "/v1/simulate", SimulateRequest{
		ValueDelta:  1.0,
		CausalGraph: chainGraph(),
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSimulateBatch(t *testing.T) {
	router := newTestServer().SetupRouter()

	w := doJSON(t, router, http.MethodPost, "/v1/simulate/batch", SimulateBatchRequest{
		Scenarios: []model.Scenario{
			{NodeID: "PolicyRate", ValueDelta: 1.0},
			{NodeID: "PolicyRate", ValueDelta: -0.5},
		},
		CausalGraph: chainGraph(),
	})

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Reports []model.SimulationReport `json:"reports"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Reports, 2)
	assert.InDelta(t, 1.0, resp.Reports[0].ValueDelta, 1e-9)
	assert.InDelta(t, -0.5, resp.Reports[1].ValueDelta, 1e-9)
}

func TestRootCause(t *testing.T) {
	router := newTestServer().SetupRouter()

	graph := []model.CausalLink{
		{HeadNode: "PolicyRate", Relation: "raises", TailNode: "DiscountRate",
			Strength: 0.8, Polarity: 1, TimeGranularity: model.GranularityYear},
		{HeadNode: "DiscountRate", Relation: "reduces", TailNode: "TechValuation",
			Strength: 0.7, Polarity: -1, TimeGranularity: model.GranularityYear},
	}

	w := doJSON(t, router, http.MethodPost, "/v1/root-cause", RootCauseRequest{
		TargetNode:  "TechValuation",
		CausalGraph: graph,
	})

	require.Equal(t, http.StatusOK, w.Code)

	var report model.RootCauseReport
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &report))
	assert.Equal(t, "PolicyRate", report.RootCause)
	assert.Equal(t, []string{"PolicyRate", "DiscountRate", "TechValuation"}, report.Path)
	assert.InDelta(t, 0.4536, report.InfluenceScore, 1e-9)
	assert.InDelta(t, -0.4536, report.DirectionalEffect, 1e-9)
}

func TestRootCause_MissingTarget(t *testing.T) {
	router := newTestServer().SetupRouter()

	w := doJSON(t, router, http.MethodPost, "/v1/root-cause", RootCauseRequest{})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestForecast(t *testing.T) {
	router := newTestServer().SetupRouter()

	w := doJSON(t, router, http.MethodPost, "/v1/forecast", ForecastRequest{
		NodeID:     "Policy Rate",
		ValueDelta: 1.0,
		RawEdges: []model.RawEdge{
			{HeadNode: "Policy Rate", Relation: "raises", TailNode: "Discount Rate",
				Properties: model.EdgeProperties{Confidence: model.ConfidenceHigh}},
		},
	})

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Links  []model.CausalLink     `json:"links"`
		Report model.SimulationReport `json:"report"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Links, 1)
	assert.Len(t, resp.Report.Impacts, 2)
}

func TestExplain(t *testing.T) {
	router := newTestServer().SetupRouter()

	w := doJSON(t, router, http.MethodPost, "/v1/explain", ExplainRequest{
		TargetNode: "Inflation",
		RawEdges: []model.RawEdge{
			{HeadNode: "Oil Price", Relation: "drives", TailNode: "Inflation",
				Properties: model.EdgeProperties{Confidence: model.ConfidenceHigh}},
		},
	})

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Links  []model.CausalLink    `json:"links"`
		Report model.RootCauseReport `json:"report"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Links, 1)
	assert.Equal(t, "Oil Price", resp.Report.RootCause)
}

func TestIngestDocument(t *testing.T) {
	srv := newTestServer()
	srv.Extractor = extract.NewExtractor(&extract.MockLLMClient{Response: `{
		"causal_statements": [
			{"head_node": "Policy Rate", "relation": "raises", "tail_node": "Discount Rate", "confidence": "high"},
			{"head_node": "Discount Rate", "relation": "reduces", "tail_node": "Tech Valuation", "confidence": "medium"}
		]
	}`}, "")
	router := srv.SetupRouter()

	w := doJSON(t, router, http.MethodPost, "/v1/documents", IngestDocumentRequest{
		Text: "The Fed raised rates, pressuring tech valuations.",
	})

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		GroupID  string             `json:"group_id"`
		RawEdges []model.RawEdge    `json:"raw_edges"`
		Links    []model.CausalLink `json:"links"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.GroupID)
	assert.Len(t, resp.RawEdges, 2)
	assert.Len(t, resp.Links, 2)
}

func TestIngestDocument_NoExtractor(t *testing.T) {
	router := newTestServer().SetupRouter()

	w := doJSON(t, router, http.MethodPost, "/v1/documents", IngestDocumentRequest{Text: "doc"})

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestIngestDocument_MissingText(t *testing.T) {
	router := newTestServer().SetupRouter()

	w := doJSON(t, router, http.MethodPost, "/v1/documents", IngestDocumentRequest{})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetSkeleton_NoStore(t *testing.T) {
	router := newTestServer().SetupRouter()

	w := doJSON(t, router, http.MethodGet, "/v1/skeleton/group-1", nil)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv("MEMGRAPH_URI", "bolt://override:7687")
	t.Setenv("LLM_PROVIDER", "claude")
	t.Setenv("LLM_API_KEY", "env-key")

	cfg := &config.Config{}
	cfg.LLM.Provider = "openai"
	applyEnvOverrides(cfg)

	assert.Equal(t, "bolt://override:7687", cfg.Memgraph.URI)
	assert.Equal(t, "claude", cfg.LLM.Provider)
	assert.Equal(t, "env-key", cfg.LLM.APIKey)
}

func TestNewServer_ConfigOverridesEngineDefaults(t *testing.T) {
	t.Setenv("MEMGRAPH_URI", "")
	t.Setenv("LLM_PROVIDER", "")

	cfg := &config.Config{}
	cfg.Engine.DefaultHorizonSteps = 5
	cfg.Concurrency.BulkSimulate = 8

	srv, err := NewServer(cfg, logger.Nop())
	require.NoError(t, err)

	assert.Equal(t, 5, srv.Engine.DefaultHorizonSteps)
	assert.Equal(t, 6, srv.Engine.DefaultMaxDepth) // untouched default
	assert.Equal(t, 8, srv.Engine.BulkParallelism)
	assert.Nil(t, srv.Store)
	assert.Nil(t, srv.Extractor)
}
