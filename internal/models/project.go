package models

import (
	"time"

	"gorm.io/gorm"
)

type ProjectStatus string

const (
	StatusDraft      ProjectStatus = "draft"
	StatusBudgeting  ProjectStatus = "budgeting"
	StatusPlanning   ProjectStatus = "planning"
	StatusInProgress ProjectStatus = "in_progress"
	StatusCompleted  ProjectStatus = "completed"
	StatusOnHold     ProjectStatus = "on_hold"
)

// Lifecycle is the canonical forward path. on_hold is reachable but has no
// place in it.
var Lifecycle = []ProjectStatus{
	StatusDraft,
	StatusBudgeting,
	StatusPlanning,
	StatusInProgress,
	StatusCompleted,
}

func (s ProjectStatus) Valid() bool {
	return s == StatusOnHold || s.canonical()
}

func (s ProjectStatus) canonical() bool {
	for _, st := range Lifecycle {
		if st == s {
			return true
		}
	}
	return false
}

// Terminal reports whether no transition may leave s.
func (s ProjectStatus) Terminal() bool {
	return s == StatusCompleted
}

// NextStatus returns the single forward step from s. ok is false for the
// terminal status, for on_hold and for unknown values.
func NextStatus(s ProjectStatus) (next ProjectStatus, ok bool) {
	for i, st := range Lifecycle {
		if st == s && i+1 < len(Lifecycle) {
			return Lifecycle[i+1], true
		}
	}
	return "", false
}

type Project struct {
	gorm.Model
	Name        string        `gorm:"size:255;not null" json:"name"`
	Description string        `gorm:"type:text" json:"description"`
	Status      ProjectStatus `gorm:"type:varchar(20);not null;default:draft;index" json:"status"`

	OwnerID uint `gorm:"not null;index" json:"owner_id"`
	Owner   User `json:"-"`

	StartDate *time.Time `json:"start_date,omitempty"`
	EndDate   *time.Time `json:"end_date,omitempty"`
}
