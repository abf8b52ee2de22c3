package handlers

import (
	"errors"
	"fmt"
	"strings"

	"project-tracker/internal/apperr"
	"project-tracker/internal/models"
	"project-tracker/internal/response"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ProjectView is a project with its owner's display name.
type ProjectView struct {
	models.Project
	OwnerName string `json:"owner_name"`
}

type ProjectDetail struct {
	ProjectView
	NextStatus *models.ProjectStatus `json:"next_status"`
}

func (h *Handler) projectsQuery(c *gin.Context) *gorm.DB {
	return h.DB.WithContext(c).
		Table("projects").
		Select("projects.*, COALESCE(users.name, '') AS owner_name").
		Joins("LEFT JOIN users ON users.id = projects.owner_id").
		Where("projects.deleted_at IS NULL")
}

// ListProjects returns all projects, newest first, optionally by status.
func (h *Handler) ListProjects(c *gin.Context) {
	q := h.projectsQuery(c).Order("projects.created_at DESC, projects.id DESC")

	if status := c.Query("status"); status != "" {
		if !models.ProjectStatus(status).Valid() {
			response.BadRequest(c, "invalid status filter")
			return
		}
		q = q.Where("projects.status = ?", status)
	}

	projects := []ProjectView{}
	if err := q.Scan(&projects).Error; err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, projects)
}

func (h *Handler) GetProject(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var views []ProjectView
	if err := h.projectsQuery(c).Where("projects.id = ?", id).Limit(1).Scan(&views).Error; err != nil {
		response.Fail(c, err)
		return
	}
	if len(views) == 0 {
		response.Fail(c, fmt.Errorf("project %d: %w", id, apperr.ErrNotFound))
		return
	}

	detail := ProjectDetail{ProjectView: views[0]}
	if next, ok := models.NextStatus(detail.Status); ok {
		detail.NextStatus = &next
	}
	response.Success(c, detail)
}

type createProjectRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	StartDate   *string `json:"start_date"`
	EndDate     *string `json:"end_date"`
}

// CreateProject opens a new project in draft owned by the caller.
func (h *Handler) CreateProject(c *gin.Context) {
	var req createProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		response.BadRequest(c, "project name is required")
		return
	}
	start, err := parseDate(req.StartDate)
	if err != nil {
		response.BadRequest(c, "invalid start_date, expected YYYY-MM-DD")
		return
	}
	end, err := parseDate(req.EndDate)
	if err != nil {
		response.BadRequest(c, "invalid end_date, expected YYYY-MM-DD")
		return
	}

	project := models.Project{
		Name:        name,
		Description: strings.TrimSpace(req.Description),
		Status:      models.StatusDraft,
		OwnerID:     actorID(c),
		StartDate:   start,
		EndDate:     end,
	}
	if err := h.DB.WithContext(c).Create(&project).Error; err != nil {
		response.Fail(c, err)
		return
	}

	h.Audit.Record(c, models.EntityProject, project.ID, project.OwnerID, models.ActionCreate, map[string]any{
		"name":   project.Name,
		"status": string(project.Status),
	})
	response.Created(c, project)
}

// requireProject answers 404 itself when the project does not exist.
func (h *Handler) requireProject(c *gin.Context, id uint) bool {
	var project models.Project
	err := h.DB.WithContext(c).Select("id").First(&project, id).Error
	switch {
	case err == nil:
		return true
	case errors.Is(err, gorm.ErrRecordNotFound):
		response.Fail(c, fmt.Errorf("project %d: %w", id, apperr.ErrNotFound))
	default:
		response.Fail(c, err)
	}
	return false
}
