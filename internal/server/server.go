package server

import (
	"context"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/macrolens/causeway/internal/config"
	"github.com/macrolens/causeway/internal/core"
	"github.com/macrolens/causeway/internal/driver"
	"github.com/macrolens/causeway/internal/extract"
	"github.com/macrolens/causeway/internal/llm"
	"github.com/macrolens/causeway/internal/logger"
)

type Server struct {
	Engine    *core.Engine
	Extractor *extract.Extractor
	Store     *driver.SkeletonStore
	Log       *logger.Logger

	mode string
}

// NewServer wires the engine and its optional collaborators. A missing
// Memgraph URI disables persistence and a missing LLM provider disables
// document ingestion; the deterministic endpoints work regardless.
func NewServer(cfg *config.Config, log *logger.Logger) (*Server, error) {
	applyEnvOverrides(cfg)

	engine := core.NewEngine()
	if cfg.Engine.DefaultHorizonSteps > 0 {
		engine.DefaultHorizonSteps = cfg.Engine.DefaultHorizonSteps
	}
	if cfg.Engine.DefaultMaxDepth > 0 {
		engine.DefaultMaxDepth = cfg.Engine.DefaultMaxDepth
	}
	if cfg.Concurrency.BulkSimulate > 0 {
		engine.BulkParallelism = cfg.Concurrency.BulkSimulate
	}

	s := &Server{
		Engine: engine,
		Log:    log,
		mode:   cfg.Server.Mode,
	}

	if cfg.Memgraph.URI != "" {
		d, err := driver.NewMemgraphDriver(cfg.Memgraph.URI, cfg.Memgraph.User, cfg.Memgraph.Password, log)
		if err != nil {
			return nil, err
		}
		if err := d.BuildIndices(context.Background()); err != nil {
			log.Warn("failed to build indices", "error", err)
		}
		s.Store = driver.NewSkeletonStore(d, log)
	} else {
		log.Info("memgraph not configured, persistence disabled")
	}

	if cfg.LLM.Provider != "" {
		client, err := llm.NewClient(context.Background(), cfg.LLM)
		if err != nil {
			return nil, err
		}
		s.Extractor = extract.NewExtractor(client, cfg.Extraction.Prompt)
		log.Info("llm extraction enabled", "provider", cfg.LLM.Provider, "model", cfg.LLM.Model)
	} else {
		log.Info("llm not configured, document ingestion disabled")
	}

	return s, nil
}

func applyEnvOverrides(cfg *config.Config) {
	if v := os.Getenv("MEMGRAPH_URI"); v != "" {
		cfg.Memgraph.URI = v
	}
	if v := os.Getenv("MEMGRAPH_USER"); v != "" {
		cfg.Memgraph.User = v
	}
	if v := os.Getenv("MEMGRAPH_PASSWORD"); v != "" {
		cfg.Memgraph.Password = v
	}
	if v := os.Getenv("LLM_PROVIDER"); v != "" {
		cfg.LLM.Provider = v
	}
	if v := os.Getenv("LLM_MODEL"); v != "" {
		cfg.LLM.Model = v
	}
	if v := os.Getenv("LLM_API_KEY"); v != "" {
		cfg.LLM.APIKey = v
	}
	if v := os.Getenv("LLM_BASE_URL"); v != "" {
		cfg.LLM.BaseURL = v
	}
}

func (s *Server) SetupRouter() *gin.Engine {
	if s.mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()

	r.GET("/healthz", s.Health)

	v1 := r.Group("/v1")
	v1.POST("/skeleton", s.BuildSkeleton)
	v1.GET("/skeleton/:group_id", s.GetSkeleton)
	v1.DELETE("/skeleton/:group_id", s.DeleteSkeleton)
	v1.POST("/simulate", s.Simulate)
	v1.POST("/simulate/batch", s.SimulateBatch)
	v1.POST("/root-cause", s.RootCause)
	v1.POST("/forecast", s.Forecast)
	v1.POST("/explain", s.Explain)
	v1.POST("/documents", s.IngestDocument)

	return r
}
