package handlers

import (
	"errors"
	"fmt"
	"time"

	"project-tracker/internal/apperr"
	"project-tracker/internal/models"
	"project-tracker/internal/response"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func (h *Handler) GetPlan(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if !h.requireProject(c, id) {
		return
	}

	var plan models.ProjectPlan
	if err := h.DB.WithContext(c).Where("project_id = ?", id).First(&plan).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Fail(c, fmt.Errorf("plan for project %d: %w", id, apperr.ErrNotFound))
			return
		}
		response.Fail(c, err)
		return
	}
	response.Success(c, plan)
}

type planRequest struct {
	Objectives   *string `json:"objectives"`
	Scope        *string `json:"scope"`
	Deliverables *string `json:"deliverables"`
	Milestones   *string `json:"milestones"`
	Risks        *string `json:"risks"`
	StartDate    *string `json:"start_date"`
	EndDate      *string `json:"end_date"`
}

// changes returns the supplied fields keyed by column.
func (r planRequest) changes() (map[string]any, error) {
	out := map[string]any{}
	text := map[string]*string{
		"objectives":   r.Objectives,
		"scope":        r.Scope,
		"deliverables": r.Deliverables,
		"milestones":   r.Milestones,
		"risks":        r.Risks,
	}
	for col, v := range text {
		if v != nil {
			out[col] = *v
		}
	}

	dates := map[string]*string{"start_date": r.StartDate, "end_date": r.EndDate}
	for col, v := range dates {
		if v == nil {
			continue
		}
		t, err := parseDate(v)
		if err != nil {
			return nil, fmt.Errorf("invalid %s, expected YYYY-MM-DD: %w", col, apperr.ErrValidation)
		}
		out[col] = t
	}
	return out, nil
}

// UpdatePlan writes the supplied plan fields, creating the plan on first use.
func (h *Handler) UpdatePlan(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req planRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	changes, err := req.changes()
	if err != nil {
		response.Fail(c, err)
		return
	}
	if len(changes) == 0 {
		response.BadRequest(c, "no updatable fields supplied")
		return
	}
	if !h.requireProject(c, id) {
		return
	}

	var plan models.ProjectPlan
	err = h.DB.WithContext(c).Transaction(func(tx *gorm.DB) error {
		err := tx.Where("project_id = ?", id).First(&plan).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			plan = models.ProjectPlan{ProjectID: id}
			if err := tx.Create(&plan).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}
		if err := tx.Model(&plan).Updates(changes).Error; err != nil {
			return err
		}
		return tx.First(&plan, plan.ID).Error
	})
	if err != nil {
		response.Fail(c, err)
		return
	}

	h.Audit.Record(c, models.EntityPlan, plan.ID, actorID(c), models.ActionUpdate, auditable(changes))
	response.Success(c, plan)
}

// auditable renders time values as dates so the audit payload stays readable.
func auditable(changes map[string]any) map[string]any {
	out := make(map[string]any, len(changes))
	for k, v := range changes {
		switch t := v.(type) {
		case *time.Time:
			if t == nil {
				out[k] = nil
			} else {
				out[k] = t.Format(dateLayout)
			}
		default:
			out[k] = v
		}
	}
	return out
}
