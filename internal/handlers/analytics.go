package handlers

import (
	"project-tracker/internal/response"

	"github.com/gin-gonic/gin"
)

// BudgetSummary totals all budget items, or one project's with ?project_id=.
func (h *Handler) BudgetSummary(c *gin.Context) {
	projectID, ok := queryID(c, "project_id")
	if !ok {
		return
	}

	var err error
	var summary any
	if projectID != 0 {
		summary, err = h.Analytics.ProjectBudgetSummary(c, projectID)
	} else {
		summary, err = h.Analytics.BudgetSummary(c)
	}
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, summary)
}

func (h *Handler) ProjectStatusDistribution(c *gin.Context) {
	rows, err := h.Analytics.ProjectStatusDistribution(c)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, rows)
}

func (h *Handler) ApprovalStatusDistribution(c *gin.Context) {
	rows, err := h.Analytics.ApprovalStatusDistribution(c)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, rows)
}
