package analytics_test

import (
	"context"
	"testing"

	"project-tracker/internal/analytics"
	"project-tracker/internal/models"
	"project-tracker/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmptyDataset(t *testing.T) {
	db := testutil.NewDB(t)
	agg := analytics.NewAggregator(db)
	ctx := context.Background()

	summary, err := agg.BudgetSummary(ctx)
	require.NoError(t, err)
	assert.Equal(t, analytics.BudgetSummary{}, summary)

	dist, err := agg.ProjectStatusDistribution(ctx)
	require.NoError(t, err)
	assert.Empty(t, dist)
	assert.NotNil(t, dist)
}

func TestBudgetSummary(t *testing.T) {
	db := testutil.NewDB(t)
	agg := analytics.NewAggregator(db)
	ctx := context.Background()

	owner := testutil.CreateUser(t, db, "owner", models.RoleManager)
	p1 := testutil.CreateProject(t, db, owner, models.StatusBudgeting)
	p2 := testutil.CreateProject(t, db, owner, models.StatusPlanning)
	testutil.CreateBudgetItem(t, db, p1, 1000, 400)  // variance -600, forecast 600
	testutil.CreateBudgetItem(t, db, p1, 500, 700)   // variance 200, forecast 0
	gone := testutil.CreateBudgetItem(t, db, p2, 50, 0)
	require.NoError(t, db.Delete(gone).Error)

	s, err := agg.BudgetSummary(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1500.0, s.TotalEstimated)
	assert.Equal(t, 1100.0, s.TotalActual)
	assert.Equal(t, -400.0, s.TotalVariance)
	assert.Equal(t, 600.0, s.TotalForecastRemaining)
	assert.Equal(t, int64(2), s.ItemCount)

	s2, err := agg.ProjectBudgetSummary(ctx, p2.ID)
	require.NoError(t, err)
	assert.Equal(t, analytics.BudgetSummary{}, s2)

	approvals, err := agg.ApprovalStatusDistribution(ctx)
	require.NoError(t, err)
	assert.Equal(t, []analytics.StatusCount{{Status: "pending", Count: 2}}, approvals)
}

func TestProjectStatusDistribution(t *testing.T) {
	db := testutil.NewDB(t)
	agg := analytics.NewAggregator(db)

	owner := testutil.CreateUser(t, db, "owner", models.RoleManager)
	testutil.CreateProject(t, db, owner, models.StatusDraft)
	testutil.CreateProject(t, db, owner, models.StatusPlanning)
	testutil.CreateProject(t, db, owner, models.StatusPlanning)
	testutil.CreateProject(t, db, owner, models.StatusCompleted)
	testutil.CreateProject(t, db, owner, models.StatusPlanning)
	testutil.CreateProject(t, db, owner, models.StatusCompleted)

	dist, err := agg.ProjectStatusDistribution(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []analytics.StatusCount{
		{Status: "planning", Count: 3},
		{Status: "completed", Count: 2},
		{Status: "draft", Count: 1},
	}, dist)
}
