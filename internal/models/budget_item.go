package models

import (
	"time"

	"gorm.io/gorm"
)

type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "pending"
	ApprovalApproved ApprovalStatus = "approved"
	ApprovalRejected ApprovalStatus = "rejected"
)

// IsDecision reports whether s is a legal outcome of an approval decision.
func (s ApprovalStatus) IsDecision() bool {
	return s == ApprovalApproved || s == ApprovalRejected
}

type BudgetItem struct {
	gorm.Model
	ProjectID uint    `gorm:"not null;index" json:"project_id"`
	Project   Project `json:"-"`

	Category    string `gorm:"size:100" json:"category"`
	Description string `gorm:"type:text" json:"description"`

	EstimatedCost     float64 `gorm:"type:numeric(14,2);not null;default:0" json:"estimated_cost"`
	ActualCost        float64 `gorm:"type:numeric(14,2);not null;default:0" json:"actual_cost"`
	Variance          float64 `gorm:"type:numeric(14,2);not null;default:0" json:"variance"`
	ForecastRemaining float64 `gorm:"type:numeric(14,2);not null;default:0" json:"forecast_remaining"`

	ApprovalStatus ApprovalStatus `gorm:"type:varchar(20);not null;default:pending;index" json:"approval_status"`
	ApprovedBy     *uint          `json:"approved_by"`
	ApprovalDate   *time.Time     `json:"approval_date"`
	LastReviewDate *time.Time     `json:"last_review_date"`
}

// Recalculate refreshes the fields derived from the two cost columns.
func (b *BudgetItem) Recalculate() {
	b.Variance = b.ActualCost - b.EstimatedCost
	b.ForecastRemaining = b.EstimatedCost - b.ActualCost
	if b.ForecastRemaining < 0 {
		b.ForecastRemaining = 0
	}
}

func (b *BudgetItem) BeforeSave(*gorm.DB) error {
	b.Recalculate()
	return nil
}
