package handlers

import (
	"strconv"

	"project-tracker/internal/database"
	"project-tracker/internal/response"

	"github.com/gin-gonic/gin"
)

// ListAuditLogs returns the latest audit entries, at most 100.
func (h *Handler) ListAuditLogs(c *gin.Context) {
	entityID, ok := queryID(c, "entity_id")
	if !ok {
		return
	}
	userID, ok := queryID(c, "user_id")
	if !ok {
		return
	}

	limit := database.DefaultAuditLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			response.BadRequest(c, "invalid limit")
			return
		}
		limit = n
	}

	entries, err := h.Audit.List(c, database.AuditFilter{
		EntityType: c.Query("entity_type"),
		EntityID:   entityID,
		UserID:     userID,
	}, limit)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, entries)
}
