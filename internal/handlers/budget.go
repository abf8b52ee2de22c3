package handlers

import (
	"errors"
	"fmt"
	"strings"

	"project-tracker/internal/apperr"
	"project-tracker/internal/middleware"
	"project-tracker/internal/models"
	"project-tracker/internal/response"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func (h *Handler) ListBudgetItems(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if !h.requireProject(c, id) {
		return
	}

	items := []models.BudgetItem{}
	if err := h.DB.WithContext(c).Where("project_id = ?", id).Order("id asc").Find(&items).Error; err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, items)
}

type createBudgetItemRequest struct {
	Category      string   `json:"category"`
	Description   string   `json:"description"`
	EstimatedCost *float64 `json:"estimated_cost" binding:"required,gte=0"`
	ActualCost    *float64 `json:"actual_cost" binding:"omitempty,gte=0"`
}

// CreateBudgetItem adds a pending budget item to a project.
func (h *Handler) CreateBudgetItem(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req createBudgetItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "estimated_cost is required and costs cannot be negative")
		return
	}
	if !h.requireProject(c, id) {
		return
	}

	item := models.BudgetItem{
		ProjectID:      id,
		Category:       strings.TrimSpace(req.Category),
		Description:    strings.TrimSpace(req.Description),
		EstimatedCost:  *req.EstimatedCost,
		ApprovalStatus: models.ApprovalPending,
	}
	if req.ActualCost != nil {
		item.ActualCost = *req.ActualCost
	}
	if err := h.DB.WithContext(c).Create(&item).Error; err != nil {
		response.Fail(c, err)
		return
	}

	h.Audit.Record(c, models.EntityBudgetItem, item.ID, actorID(c), models.ActionCreate, map[string]any{
		"project_id":     item.ProjectID,
		"estimated_cost": item.EstimatedCost,
		"actual_cost":    item.ActualCost,
	})
	response.Created(c, item)
}

type updateBudgetItemRequest struct {
	Category      *string  `json:"category"`
	Description   *string  `json:"description"`
	EstimatedCost *float64 `json:"estimated_cost" binding:"omitempty,gte=0"`
	ActualCost    *float64 `json:"actual_cost" binding:"omitempty,gte=0"`
}

func (h *Handler) loadBudgetItem(c *gin.Context, id uint) (*models.BudgetItem, bool) {
	var item models.BudgetItem
	if err := h.DB.WithContext(c).First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Fail(c, fmt.Errorf("budget item %d: %w", id, apperr.ErrNotFound))
			return nil, false
		}
		response.Fail(c, err)
		return nil, false
	}
	return &item, true
}

// UpdateBudgetItem edits descriptive fields and costs. Variance and
// forecast are recomputed on save; the approval fields are not touched.
func (h *Handler) UpdateBudgetItem(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req updateBudgetItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "costs cannot be negative")
		return
	}

	changes := map[string]any{}
	if req.Category != nil {
		changes["category"] = strings.TrimSpace(*req.Category)
	}
	if req.Description != nil {
		changes["description"] = strings.TrimSpace(*req.Description)
	}
	if req.EstimatedCost != nil {
		changes["estimated_cost"] = *req.EstimatedCost
	}
	if req.ActualCost != nil {
		changes["actual_cost"] = *req.ActualCost
	}
	if len(changes) == 0 {
		response.BadRequest(c, "no updatable fields supplied")
		return
	}

	item, ok := h.loadBudgetItem(c, id)
	if !ok {
		return
	}
	if v, ok := changes["category"]; ok {
		item.Category = v.(string)
	}
	if v, ok := changes["description"]; ok {
		item.Description = v.(string)
	}
	if req.EstimatedCost != nil {
		item.EstimatedCost = *req.EstimatedCost
	}
	if req.ActualCost != nil {
		item.ActualCost = *req.ActualCost
	}

	if err := h.DB.WithContext(c).
		Select("category", "description", "estimated_cost", "actual_cost", "variance", "forecast_remaining", "updated_at").
		Save(item).Error; err != nil {
		response.Fail(c, err)
		return
	}

	h.Audit.Record(c, models.EntityBudgetItem, item.ID, actorID(c), models.ActionUpdate, changes)
	response.Success(c, item)
}

// DeleteBudgetItem soft-deletes an item.
func (h *Handler) DeleteBudgetItem(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	item, ok := h.loadBudgetItem(c, id)
	if !ok {
		return
	}
	if err := h.DB.WithContext(c).Delete(item).Error; err != nil {
		response.Fail(c, err)
		return
	}

	h.Audit.Record(c, models.EntityBudgetItem, item.ID, actorID(c), models.ActionDelete, map[string]any{
		"project_id": item.ProjectID,
	})
	response.Success(c, gin.H{"message": "budget item deleted"})
}

type approvalRequest struct {
	ApprovalStatus string `json:"approval_status"`
}

// DecideBudgetItem approves or rejects a pending budget item.
func (h *Handler) DecideBudgetItem(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req approvalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	item, err := h.Approvals.Decide(c, id, models.ApprovalStatus(req.ApprovalStatus), middleware.CurrentIdentity(c))
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, item)
}
