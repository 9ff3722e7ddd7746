//go:build integration

package integration

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macrolens/causeway/internal/core"
	"github.com/macrolens/causeway/internal/core/model"
	"github.com/macrolens/causeway/internal/driver"
	"github.com/macrolens/causeway/internal/logger"
)

// TestSkeletonRoundTrip builds a skeleton, persists it to Memgraph, loads
// it back and checks nothing was lost on the way.
func TestSkeletonRoundTrip(t *testing.T) {
	_ = godotenv.Load("../../.env")

	uri := os.Getenv("MEMGRAPH_URI")
	if uri == "" {
		t.Skip("Skipping integration test: MEMGRAPH_URI not set")
	}

	log := logger.Nop()
	d, err := driver.NewMemgraphDriver(uri, os.Getenv("MEMGRAPH_USER"), os.Getenv("MEMGRAPH_PASSWORD"), log)
	require.NoError(t, err)
	ctx := context.Background()
	defer d.Close(ctx)

	require.NoError(t, d.BuildIndices(ctx))

	engine := core.NewEngine()
	built := engine.BuildSkeleton([]model.RawEdge{
		{HeadNode: "Policy Rate", Relation: "raises", TailNode: "Discount Rate",
			TimeGranularity: model.GranularityQuarter,
			Properties:      model.EdgeProperties{Confidence: model.ConfidenceHigh}},
		{HeadNode: "Policy Rate", Relation: "raises", TailNode: "Discount Rate",
			TimeGranularity: model.GranularityQuarter,
			Properties:      model.EdgeProperties{Confidence: model.ConfidenceMedium}},
		{HeadNode: "Discount Rate", Relation: "reduces", TailNode: "Tech Valuation",
			TimeGranularity: model.GranularityQuarter,
			Properties:      model.EdgeProperties{Confidence: model.ConfidenceMedium}},
		{HeadNode: "Tech Valuation", Relation: "drives", TailNode: "Policy Rate",
			Properties: model.EdgeProperties{Confidence: model.ConfidenceLow}},
	})
	require.Len(t, built, 2) // reverse edge rejected, duplicates merged

	store := driver.NewSkeletonStore(d, log)
	groupID := fmt.Sprintf("test-group-%s", uuid.New().String())
	defer func() { _ = store.DeleteGroup(ctx, groupID) }()

	require.NoError(t, store.SaveSkeleton(ctx, groupID, built))

	loaded, err := store.LoadSkeleton(ctx, groupID)
	require.NoError(t, err)
	assert.ElementsMatch(t, built, loaded)

	// Saving again must not duplicate anything.
	require.NoError(t, store.SaveSkeleton(ctx, groupID, built))
	reloaded, err := store.LoadSkeleton(ctx, groupID)
	require.NoError(t, err)
	assert.Len(t, reloaded, len(built))

	// A loaded skeleton must behave exactly like the built one.
	fromBuilt := engine.Simulate("Policy Rate", 1.0, built, 3)
	fromLoaded := engine.Simulate("Policy Rate", 1.0, loaded, 3)
	assert.Equal(t, fromBuilt.Impacts, fromLoaded.Impacts)

	require.NoError(t, store.DeleteGroup(ctx, groupID))
	empty, err := store.LoadSkeleton(ctx, groupID)
	require.NoError(t, err)
	assert.Empty(t, empty)
}
