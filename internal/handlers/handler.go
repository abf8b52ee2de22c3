package handlers

import (
	"strconv"
	"time"

	"project-tracker/internal/analytics"
	"project-tracker/internal/approval"
	"project-tracker/internal/auth"
	"project-tracker/internal/database"
	"project-tracker/internal/middleware"
	"project-tracker/internal/response"
	"project-tracker/internal/workflow"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const dateLayout = "2006-01-02"

// Handler serves the JSON API. Each endpoint is a method so the
// dependencies are explicit and tests can build their own.
type Handler struct {
	DB        *gorm.DB
	Tokens    *auth.TokenManager
	Audit     *database.AuditRecorder
	Workflow  *workflow.Engine
	Approvals *approval.Gate
	Analytics *analytics.Aggregator
}

func New(db *gorm.DB, tokens *auth.TokenManager, strictWorkflow bool) *Handler {
	audit := database.NewAuditRecorder(db)
	return &Handler{
		DB:        db,
		Tokens:    tokens,
		Audit:     audit,
		Workflow:  workflow.NewEngine(db, audit, workflow.WithStrict(strictWorkflow)),
		Approvals: approval.NewGate(db, audit),
		Analytics: analytics.NewAggregator(db),
	}
}

// paramID reads a positive numeric path parameter, answering 400 itself
// when it is malformed.
func paramID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		response.BadRequest(c, "invalid "+name)
		return 0, false
	}
	return uint(id), true
}

// queryID reads an optional numeric query parameter. Absent means 0.
func queryID(c *gin.Context, name string) (uint, bool) {
	raw := c.Query(name)
	if raw == "" {
		return 0, true
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid "+name)
		return 0, false
	}
	return uint(id), true
}

func parseDate(raw *string) (*time.Time, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, *raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func actorID(c *gin.Context) uint {
	if id := middleware.CurrentIdentity(c); id != nil {
		return id.UserID
	}
	return 0
}
