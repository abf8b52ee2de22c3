package models

import "time"

const TransitionCompleted = "completed"

// WorkflowTransition is written once per committed status change and never
// updated afterwards.
type WorkflowTransition struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `gorm:"index:idx_transitions_project_created,priority:2" json:"created_at"`

	ProjectID  uint          `gorm:"not null;index:idx_transitions_project_created,priority:1" json:"project_id"`
	FromStatus ProjectStatus `gorm:"type:varchar(20);not null" json:"from_status"`
	ToStatus   ProjectStatus `gorm:"type:varchar(20);not null" json:"to_status"`
	UserID     uint          `gorm:"not null" json:"user_id"`
	Status     string        `gorm:"type:varchar(20);not null" json:"status"`
}
