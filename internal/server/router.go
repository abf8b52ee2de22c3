package server

import (
	"net/http"

	"project-tracker/internal/auth"
	"project-tracker/internal/handlers"
	"project-tracker/internal/middleware"
	"project-tracker/internal/permissions"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
)

const sessionName = "tracker_session"

func NewRouter(h *handlers.Handler, tokens *auth.TokenManager, sessionSecret string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger())

	store := cookie.NewStore([]byte(sessionSecret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	r.Use(sessions.Sessions(sessionName, store))

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	api := r.Group("/api")

	// AUTH
	api.POST("/auth/register", h.Register)
	api.POST("/auth/login", h.Login)
	api.POST("/auth/logout", h.Logout)

	authed := api.Group("/")
	authed.Use(middleware.RequireAuth(tokens), middleware.RequireCapability(permissions.CanView))

	edit := middleware.RequireCapability(permissions.CanEdit)

	authed.GET("/auth/me", h.Me)
	authed.GET("/users", middleware.RequireCapability(permissions.IsAdmin), h.ListUsers)

	// PROJECTS
	authed.GET("/projects", h.ListProjects)
	authed.POST("/projects", h.CreateProject)
	authed.GET("/projects/:id", h.GetProject)

	// workflow: the engine checks the caller's role itself
	authed.POST("/projects/:id/workflow", h.TransitionProject)
	authed.GET("/projects/:id/workflow", h.ProjectHistory)

	authed.GET("/projects/:id/plan", h.GetPlan)
	authed.PUT("/projects/:id/plan", edit, h.UpdatePlan)

	// BUDGET
	authed.GET("/projects/:id/budget-items", h.ListBudgetItems)
	authed.POST("/projects/:id/budget-items", edit, h.CreateBudgetItem)
	authed.PUT("/budget-items/:id", edit, h.UpdateBudgetItem)
	authed.DELETE("/budget-items/:id",
		middleware.RequireCapability(permissions.CanDelete),
		h.DeleteBudgetItem,
	)
	// approval: the gate checks the caller's role itself
	authed.PUT("/budget-items/:id/approval", h.DecideBudgetItem)

	// ANALYTICS
	authed.GET("/analytics/budget-summary", h.BudgetSummary)
	authed.GET("/analytics/project-status", h.ProjectStatusDistribution)
	authed.GET("/analytics/approval-status", h.ApprovalStatusDistribution)

	// AUDIT
	authed.GET("/audit-logs", h.ListAuditLogs)

	return r
}
