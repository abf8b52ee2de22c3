package models

import (
	"time"

	"gorm.io/datatypes"
)

const (
	EntityProject    = "project"
	EntityBudgetItem = "budget_item"
	EntityPlan       = "project_plan"
	EntityUser       = "user"

	ActionCreate             = "create"
	ActionUpdate             = "update"
	ActionDelete             = "delete"
	ActionApprove            = "approve"
	ActionWorkflowTransition = "workflow_transition"
)

type AuditLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`

	UserID *uint `gorm:"index" json:"user_id"`

	EntityType string            `gorm:"size:50;not null;index:idx_audit_entity" json:"entity_type"`
	EntityID   uint              `gorm:"index:idx_audit_entity" json:"entity_id"`
	Action     string            `gorm:"size:50;not null" json:"action"`
	Changes    datatypes.JSONMap `json:"changes"`
}
