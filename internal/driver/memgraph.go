package driver

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/macrolens/causeway/internal/logger"
)

type MemgraphDriver struct {
	Driver neo4j.DriverWithContext
	log    *logger.Logger
}

func NewMemgraphDriver(uri, username, password string, log *logger.Logger) (*MemgraphDriver, error) {
	driver, err := neo4j.NewDriverWithContext(uri, neo4j.BasicAuth(username, password, ""))
	if err != nil {
		return nil, err
	}

	if err := driver.VerifyConnectivity(context.Background()); err != nil {
		return nil, err
	}

	log.Info("connected to memgraph", "uri", uri)
	return &MemgraphDriver{Driver: driver, log: log}, nil
}

func (d *MemgraphDriver) Close(ctx context.Context) error {
	return d.Driver.Close(ctx)
}

func (d *MemgraphDriver) ExecuteQuery(ctx context.Context, query string, params map[string]interface{}) (neo4j.EagerResult, error) {
	result, err := neo4j.ExecuteQuery(ctx, d.Driver, query, params, neo4j.EagerResultTransformer)
	if err != nil {
		return neo4j.EagerResult{}, fmt.Errorf("failed to execute query: %w", err)
	}
	return *result, nil
}

func (d *MemgraphDriver) BuildIndices(ctx context.Context) error {
	queries := []string{
		"CREATE INDEX ON :Concept(name);",
		"CREATE INDEX ON :Concept(group_id);",
	}

	for _, q := range queries {
		// Index may already exist; log and keep going.
		if _, err := d.ExecuteQuery(ctx, q, nil); err != nil {
			d.log.Warn("failed to create index", "query", q, "error", err)
		}
	}

	return nil
}
