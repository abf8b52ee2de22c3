// Package testutil provides a throwaway database and fixtures for tests.
package testutil

import (
	"path/filepath"
	"testing"

	"project-tracker/internal/database"
	"project-tracker/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDB opens a migrated SQLite database in a temporary directory. The pool
// holds a single connection so transactions run one after another.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "tracker.db") + "?_pragma=busy_timeout(5000)"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, database.Migrate(db))
	return db
}

func CreateUser(t *testing.T, db *gorm.DB, name string, role models.Role) *models.User {
	t.Helper()
	user := &models.User{
		Name:         name,
		Email:        name + "@example.com",
		PasswordHash: "x",
		Role:         role,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func CreateProject(t *testing.T, db *gorm.DB, owner *models.User, status models.ProjectStatus) *models.Project {
	t.Helper()
	project := &models.Project{
		Name:    "Project " + string(status),
		Status:  status,
		OwnerID: owner.ID,
	}
	require.NoError(t, db.Create(project).Error)
	return project
}

func CreateBudgetItem(t *testing.T, db *gorm.DB, project *models.Project, estimated, actual float64) *models.BudgetItem {
	t.Helper()
	item := &models.BudgetItem{
		ProjectID:      project.ID,
		Category:       "labour",
		EstimatedCost:  estimated,
		ActualCost:     actual,
		ApprovalStatus: models.ApprovalPending,
	}
	require.NoError(t, db.Create(item).Error)
	return item
}

// BreakAuditLog drops the audit table so every later audit write fails.
func BreakAuditLog(t *testing.T, db *gorm.DB) {
	t.Helper()
	require.NoError(t, db.Migrator().DropTable(&models.AuditLog{}))
}

// AuditCount counts audit rows for one entity and action.
func AuditCount(t *testing.T, db *gorm.DB, entityType string, entityID uint, action string) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(&models.AuditLog{}).
		Where("entity_type = ? AND entity_id = ? AND action = ?", entityType, entityID, action).
		Count(&n).Error)
	return n
}
