package database

import (
	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"

	"project-tracker/internal/models"
)

const transitionIndex = "idx_transitions_project_created"

// Models lists every table the service owns.
func Models() []any {
	return []any{
		&models.User{},
		&models.Project{},
		&models.ProjectPlan{},
		&models.BudgetItem{},
		&models.WorkflowTransition{},
		&models.AuditLog{},
	}
}

// Migrate brings the schema up to date. A fresh database gets the whole
// schema at once and every migration below is marked as applied.
func Migrate(db *gorm.DB) error {
	m := gormigrate.New(db, gormigrate.DefaultOptions, []*gormigrate.Migration{
		{
			// history queries read transitions of one project in time order
			ID: "202603020900",
			Migrate: func(tx *gorm.DB) error {
				if tx.Migrator().HasIndex(&models.WorkflowTransition{}, transitionIndex) {
					return nil
				}
				return tx.Migrator().CreateIndex(&models.WorkflowTransition{}, transitionIndex)
			},
			Rollback: func(tx *gorm.DB) error {
				return tx.Migrator().DropIndex(&models.WorkflowTransition{}, transitionIndex)
			},
		},
	})

	m.InitSchema(func(tx *gorm.DB) error {
		return tx.AutoMigrate(Models()...)
	})

	return m.Migrate()
}
