package handlers

import (
	"fmt"

	"project-tracker/internal/middleware"
	"project-tracker/internal/models"
	"project-tracker/internal/response"

	"github.com/gin-gonic/gin"
)

type transitionRequest struct {
	TargetStatus string `json:"target_status"`
}

// TransitionProject moves a project to the requested status.
func (h *Handler) TransitionProject(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req transitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	row, err := h.Workflow.Transition(c, id, models.ProjectStatus(req.TargetStatus), middleware.CurrentIdentity(c))
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, gin.H{
		"message":    fmt.Sprintf("project moved from %s to %s", row.FromStatus, row.ToStatus),
		"transition": row,
	})
}

func (h *Handler) ProjectHistory(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	rows, err := h.Workflow.History(c, id)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, rows)
}
