// Package workflow moves projects through their lifecycle.
//
// A transition reads the current status, writes the new one and appends a
// WorkflowTransition row inside a single database transaction. The audit
// entry is written only after that transaction commits, so a failing audit
// store never undoes an accepted transition.
package workflow

import (
	"context"
	"errors"
	"fmt"
	"time"

	"project-tracker/internal/apperr"
	"project-tracker/internal/auth"
	"project-tracker/internal/models"
	"project-tracker/internal/permissions"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Auditor receives a record of every committed transition.
type Auditor interface {
	Record(ctx context.Context, entityType string, entityID, actorID uint, action string, changes map[string]any)
}

type Engine struct {
	db      *gorm.DB
	audit   Auditor
	strict  bool
	nowFunc func() time.Time
}

type Option func(*Engine)

// WithStrict makes the engine reject targets outside the canonical table.
func WithStrict(strict bool) Option {
	return func(e *Engine) { e.strict = strict }
}

func NewEngine(db *gorm.DB, audit Auditor, opts ...Option) *Engine {
	e := &Engine{
		db:      db,
		audit:   audit,
		nowFunc: time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Transition moves project projectID to target on behalf of actor.
func (e *Engine) Transition(ctx context.Context, projectID uint, target models.ProjectStatus, actor *auth.Identity) (*models.WorkflowTransition, error) {
	if actor == nil {
		return nil, apperr.ErrUnauthenticated
	}
	if !permissions.CanEdit(actor.Role) {
		return nil, fmt.Errorf("role %q cannot change project status: %w", actor.Role, apperr.ErrForbidden)
	}
	if target == "" {
		return nil, fmt.Errorf("target status is required: %w", apperr.ErrInvalidTarget)
	}
	if !target.Valid() {
		return nil, fmt.Errorf("unknown status %q: %w", target, apperr.ErrInvalidTarget)
	}

	var row models.WorkflowTransition
	err := e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var project models.Project
		q := tx.Select("id", "status")
		if tx.Dialector.Name() == "postgres" {
			q = q.Clauses(clause.Locking{Strength: "UPDATE"})
		}
		if err := q.First(&project, projectID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("project %d: %w", projectID, apperr.ErrNotFound)
			}
			return err
		}

		if e.strict {
			if err := e.checkAllowed(tx, project.ID, project.Status, target); err != nil {
				return err
			}
		}

		now := e.nowFunc()
		if err := tx.Model(&models.Project{}).
			Where("id = ?", project.ID).
			Updates(map[string]any{"status": target, "updated_at": now}).Error; err != nil {
			return fmt.Errorf("update project status: %w", err)
		}

		row = models.WorkflowTransition{
			CreatedAt:  now,
			ProjectID:  project.ID,
			FromStatus: project.Status,
			ToStatus:   target,
			UserID:     actor.UserID,
			Status:     models.TransitionCompleted,
		}
		if err := tx.Create(&row).Error; err != nil {
			return fmt.Errorf("record transition: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	e.audit.Record(ctx, models.EntityProject, projectID, actor.UserID, models.ActionWorkflowTransition, map[string]any{
		"from": string(row.FromStatus),
		"to":   string(row.ToStatus),
	})
	return &row, nil
}

// checkAllowed enforces the canonical table: one step forward, a pause to
// on_hold from any live status, and a resume to the status the hold began in.
func (e *Engine) checkAllowed(tx *gorm.DB, projectID uint, current, target models.ProjectStatus) error {
	if current.Terminal() {
		return fmt.Errorf("project is %s: %w", current, apperr.ErrIllegalTransition)
	}

	if current == models.StatusOnHold {
		resume, err := heldFrom(tx, projectID)
		if err != nil {
			return err
		}
		if resume != "" && target == resume {
			return nil
		}
		if resume == "" && target != models.StatusOnHold && target.Valid() && !target.Terminal() {
			return nil
		}
		return fmt.Errorf("%s -> %s: %w", current, target, apperr.ErrIllegalTransition)
	}

	if target == models.StatusOnHold {
		return nil
	}
	if next, ok := models.NextStatus(current); ok && next == target {
		return nil
	}
	return fmt.Errorf("%s -> %s: %w", current, target, apperr.ErrIllegalTransition)
}

// heldFrom returns the status the project had before its latest move to
// on_hold, or "" when there is no such record.
func heldFrom(tx *gorm.DB, projectID uint) (models.ProjectStatus, error) {
	var last models.WorkflowTransition
	err := tx.Where("project_id = ? AND to_status = ?", projectID, models.StatusOnHold).
		Order("created_at DESC, id DESC").
		Limit(1).
		Find(&last).Error
	if err != nil {
		return "", err
	}
	return last.FromStatus, nil
}

// History lists the transitions of one project, oldest first.
func (e *Engine) History(ctx context.Context, projectID uint) ([]models.WorkflowTransition, error) {
	var exists int64
	if err := e.db.WithContext(ctx).Model(&models.Project{}).Where("id = ?", projectID).Count(&exists).Error; err != nil {
		return nil, err
	}
	if exists == 0 {
		return nil, fmt.Errorf("project %d: %w", projectID, apperr.ErrNotFound)
	}

	rows := []models.WorkflowTransition{}
	err := e.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("created_at ASC, id ASC").
		Find(&rows).Error
	return rows, err
}
