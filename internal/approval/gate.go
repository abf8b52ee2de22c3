// Package approval records approve/reject decisions on budget items.
package approval

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
)

type Auditor interface {
	Record(ctx context.Context, entityType string, entityID, actorID uint, action string, changes map[string]any)
}

type Gate struct {
	db      *gorm.DB
	audit   Auditor
	nowFunc func() time.Time
}

func NewGate(db *gorm.DB, audit Auditor) *Gate {
	return &Gate{db: db, audit: audit, nowFunc: time.Now}
}

// Decide sets the approval status of a pending budget item. Only admins
// and managers may decide, and each item is decided once.
func (g *Gate) Decide(ctx context.Context, itemID uint, decision models.ApprovalStatus, actor *auth.Identity) (*models.BudgetItem, error) {
	if actor == nil {
		return nil, apperr.ErrUnauthenticated
	}
	if !permissions.CanApprove(actor.Role) {
		return nil, fmt.Errorf("role %q cannot approve budget items: %w", actor.Role, apperr.ErrForbidden)
	}
	if !decision.IsDecision() {
		return nil, fmt.Errorf("decision %q: %w", decision, apperr.ErrInvalidDecision)
	}

	db := g.db.WithContext(ctx)
	now := g.nowFunc()
	res := db.Session(&gorm.Session{SkipHooks: true}).
		Model(&models.BudgetItem{}).
		Where("id = ? AND approval_status = ?", itemID, models.ApprovalPending).
		Updates(map[string]any{
			"approval_status":  decision,
			"approved_by":      actor.UserID,
			"approval_date":    now,
			"last_review_date": now,
		})
	if res.Error != nil {
		return nil, fmt.Errorf("update budget item %d: %w", itemID, res.Error)
	}

	var item models.BudgetItem
	if err := db.First(&item, itemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("budget item %d: %w", itemID, apperr.ErrNotFound)
		}
		return nil, err
	}
	if res.RowsAffected == 0 {
		return nil, fmt.Errorf("budget item %d is already %s: %w", itemID, item.ApprovalStatus, apperr.ErrConflict)
	}

	g.audit.Record(ctx, models.EntityBudgetItem, item.ID, actor.UserID, models.ActionApprove, map[string]any{
		"approval_status": string(decision),
	})
	return &item, nil
}
