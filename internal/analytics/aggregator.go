// Package analytics computes read-only rollups over budget items and
// projects. Every query tolerates empty tables.
package analytics

import (
	"context"

	"gorm.io/gorm"
)

type BudgetSummary struct {
	TotalEstimated         float64 `json:"total_estimated"`
	TotalActual            float64 `json:"total_actual"`
	TotalVariance          float64 `json:"total_variance"`
	TotalForecastRemaining float64 `json:"total_forecast_remaining"`
	ItemCount              int64   `json:"item_count"`
}

type StatusCount struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

type Aggregator struct {
	db *gorm.DB
}

func NewAggregator(db *gorm.DB) *Aggregator {
	return &Aggregator{db: db}
}

const budgetSummarySQL = `
SELECT
	COALESCE(SUM(estimated_cost), 0)     AS total_estimated,
	COALESCE(SUM(actual_cost), 0)        AS total_actual,
	COALESCE(SUM(variance), 0)           AS total_variance,
	COALESCE(SUM(forecast_remaining), 0) AS total_forecast_remaining,
	COUNT(*)                             AS item_count
FROM budget_items
WHERE deleted_at IS NULL`

// BudgetSummary totals every live budget item.
func (a *Aggregator) BudgetSummary(ctx context.Context) (BudgetSummary, error) {
	var s BudgetSummary
	err := a.db.WithContext(ctx).Raw(budgetSummarySQL).Scan(&s).Error
	return s, err
}

// ProjectBudgetSummary totals the budget items of one project.
func (a *Aggregator) ProjectBudgetSummary(ctx context.Context, projectID uint) (BudgetSummary, error) {
	var s BudgetSummary
	err := a.db.WithContext(ctx).Raw(budgetSummarySQL+" AND project_id = ?", projectID).Scan(&s).Error
	return s, err
}

// ProjectStatusDistribution counts projects per status, largest first.
func (a *Aggregator) ProjectStatusDistribution(ctx context.Context) ([]StatusCount, error) {
	rows := []StatusCount{}
	err := a.db.WithContext(ctx).Raw(`
SELECT status, COUNT(*) AS count
FROM projects
WHERE deleted_at IS NULL
GROUP BY status
ORDER BY count DESC, status ASC`).Scan(&rows).Error
	return rows, err
}

// ApprovalStatusDistribution counts budget items per approval status.
func (a *Aggregator) ApprovalStatusDistribution(ctx context.Context) ([]StatusCount, error) {
	rows := []StatusCount{}
	err := a.db.WithContext(ctx).Raw(`
SELECT approval_status AS status, COUNT(*) AS count
FROM budget_items
WHERE deleted_at IS NULL
GROUP BY approval_status
ORDER BY count DESC, status ASC`).Scan(&rows).Error
	return rows, err
}
