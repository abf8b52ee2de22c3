package models

import (
	"time"

	"gorm.io/gorm"
)

// ProjectPlan holds the planning-phase details of a project. At most one
// plan exists per project.
type ProjectPlan struct {
	gorm.Model
	ProjectID uint `gorm:"uniqueIndex;not null" json:"project_id"`

	Objectives   string `gorm:"type:text" json:"objectives"`
	Scope        string `gorm:"type:text" json:"scope"`
	Deliverables string `gorm:"type:text" json:"deliverables"`
	Milestones   string `gorm:"type:text" json:"milestones"`
	Risks        string `gorm:"type:text" json:"risks"`

	StartDate *time.Time `json:"start_date,omitempty"`
	EndDate   *time.Time `json:"end_date,omitempty"`
}
