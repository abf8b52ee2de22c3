package approval_test

import (
	"context"
	"testing"

	"project-tracker/internal/approval"
	"project-tracker/internal/apperr"
	"project-tracker/internal/auth"
	"project-tracker/internal/database"
	"project-tracker/internal/models"
	"project-tracker/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setup(t *testing.T) (*gorm.DB, *approval.Gate, *models.User, *models.BudgetItem) {
	db := testutil.NewDB(t)
	manager := testutil.CreateUser(t, db, "manager", models.RoleManager)
	project := testutil.CreateProject(t, db, manager, models.StatusBudgeting)
	item := testutil.CreateBudgetItem(t, db, project, 1000, 1200)
	return db, approval.NewGate(db, database.NewAuditRecorder(db)), manager, item
}

func reload(t *testing.T, db *gorm.DB, id uint) models.BudgetItem {
	var item models.BudgetItem
	require.NoError(t, db.First(&item, id).Error)
	return item
}

func TestDecide_ManagerApproves(t *testing.T) {
	db, gate, manager, item := setup(t)
	actor := &auth.Identity{UserID: manager.ID, Role: models.RoleManager}

	got, err := gate.Decide(context.Background(), item.ID, models.ApprovalApproved, actor)
	require.NoError(t, err)

	assert.Equal(t, models.ApprovalApproved, got.ApprovalStatus)
	require.NotNil(t, got.ApprovedBy)
	assert.Equal(t, manager.ID, *got.ApprovedBy)
	require.NotNil(t, got.ApprovalDate)
	require.NotNil(t, got.LastReviewDate)
	assert.True(t, got.ApprovalDate.Equal(*got.LastReviewDate))
	assert.Equal(t, 200.0, got.Variance)
	assert.Equal(t, 0.0, got.ForecastRemaining)

	assert.Equal(t, int64(1), testutil.AuditCount(t, db, models.EntityBudgetItem, item.ID, models.ActionApprove))
}

func TestDecide_AdminRejects(t *testing.T) {
	_, gate, manager, item := setup(t)

	got, err := gate.Decide(context.Background(), item.ID, models.ApprovalRejected, &auth.Identity{UserID: manager.ID, Role: models.RoleAdmin})
	require.NoError(t, err)
	assert.Equal(t, models.ApprovalRejected, got.ApprovalStatus)
}

func TestDecide_RejectedWithoutMutation(t *testing.T) {
	db, gate, manager, item := setup(t)
	ctx := context.Background()

	tests := []struct {
		name     string
		itemID   uint
		decision models.ApprovalStatus
		actor    *auth.Identity
		want     error
	}{
		{"no identity", item.ID, models.ApprovalApproved, nil, apperr.ErrUnauthenticated},
		{"viewer", item.ID, models.ApprovalApproved, &auth.Identity{UserID: manager.ID, Role: models.RoleViewer}, apperr.ErrForbidden},
		{"team member", item.ID, models.ApprovalApproved, &auth.Identity{UserID: manager.ID, Role: models.RoleTeamMember}, apperr.ErrForbidden},
		{"unknown role", item.ID, models.ApprovalApproved, &auth.Identity{UserID: manager.ID, Role: "owner"}, apperr.ErrForbidden},
		{"pending is not a decision", item.ID, models.ApprovalPending, &auth.Identity{UserID: manager.ID, Role: models.RoleManager}, apperr.ErrInvalidDecision},
		{"garbage decision", item.ID, "maybe", &auth.Identity{UserID: manager.ID, Role: models.RoleManager}, apperr.ErrInvalidDecision},
		{"missing item", item.ID + 50, models.ApprovalApproved, &auth.Identity{UserID: manager.ID, Role: models.RoleManager}, apperr.ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := gate.Decide(ctx, tt.itemID, tt.decision, tt.actor)
			assert.ErrorIs(t, err, tt.want)
			assert.Nil(t, got)
		})
	}

	after := reload(t, db, item.ID)
	assert.Equal(t, models.ApprovalPending, after.ApprovalStatus)
	assert.Nil(t, after.ApprovedBy)
	assert.Nil(t, after.ApprovalDate)

	var audits int64
	require.NoError(t, db.Model(&models.AuditLog{}).Count(&audits).Error)
	assert.Zero(t, audits)
}

func TestDecide_OnlyOnce(t *testing.T) {
	db, gate, manager, item := setup(t)
	actor := &auth.Identity{UserID: manager.ID, Role: models.RoleManager}

	_, err := gate.Decide(context.Background(), item.ID, models.ApprovalApproved, actor)
	require.NoError(t, err)

	_, err = gate.Decide(context.Background(), item.ID, models.ApprovalRejected, actor)
	assert.ErrorIs(t, err, apperr.ErrConflict)
	assert.Equal(t, models.ApprovalApproved, reload(t, db, item.ID).ApprovalStatus)
}

func TestDecide_AuditOutageDoesNotUndoApproval(t *testing.T) {
	db, gate, manager, item := setup(t)
	testutil.BreakAuditLog(t, db)

	got, err := gate.Decide(context.Background(), item.ID, models.ApprovalApproved, &auth.Identity{UserID: manager.ID, Role: models.RoleManager})
	require.NoError(t, err)
	assert.Equal(t, models.ApprovalApproved, got.ApprovalStatus)
	assert.Equal(t, models.ApprovalApproved, reload(t, db, item.ID).ApprovalStatus)
}
