package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/woffu/woffu/internal/database"
	"github.com/woffu/woffu/internal/middleware"
	"github.com/woffu/woffu/internal/models"
	"github.com/woffu/woffu/internal/services"
	"gorm.io/gorm"
)

type ProjectHandler struct {
	workflowService *services.WorkflowService
	reportService   *services.ReportService
}

func NewProjectHandler(workflowService *services.WorkflowService, reportService *services.ReportService) *ProjectHandler {
	return &ProjectHandler{
		workflowService: workflowService,
		reportService:   reportService,
	}
}

// ListProjects returns projects, optionally filtered by type, status or
// assignee.
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	db := database.GetDB()

	query := db.Preload("Assignee").Preload("Creator")

	if projectType := c.Query("type"); projectType != "" {
		query = query.Where("type = ?", projectType)
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if assignee := c.Query("assignee"); assignee != "" {
		query = query.Where("assignee_id = ?", assignee)
	}

	var projects []models.Project
	if err := query.Order("created_at DESC").Find(&projects).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch projects"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"projects": projects,
		"total":    len(projects),
	})
}

// GetProject returns one project with its relations
func (h *ProjectHandler) GetProject(c *gin.Context) {
	projectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid project ID"})
		return
	}

	db := database.GetDB()

	var project models.Project
	if err := db.Preload("Assignee").Preload("Creator").
		First(&project, "id = ?", projectID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"project": project})
}

// CreateProjectRequest represents project creation input
type CreateProjectRequest struct {
	Title          string             `json:"title" binding:"required"`
	Type           models.ProjectType `json:"type" binding:"required,oneof=VIDEO GRAPHIC"`
	Brand          string             `json:"brand"`
	Description    string             `json:"description"`
	StartDate      *time.Time         `json:"start_date"`
	DueDate        *time.Time         `json:"due_date"`
	AssigneeID     *uuid.UUID         `json:"assignee_id"`
	VideoPriority  string             `json:"video_priority"`
	VideoPurpose   string             `json:"video_purpose"`
	GraphicJobType string             `json:"graphic_job_type"`
}

// CreateProject creates a new project (leader only)
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	member, ok := middleware.GetMember(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	var req CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// The type-specific payload must match the project type.
	switch req.Type {
	case models.ProjectTypeVideo:
		if req.GraphicJobType != "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "graphic_job_type is not valid for VIDEO projects"})
			return
		}
	case models.ProjectTypeGraphic:
		if req.VideoPriority != "" || req.VideoPurpose != "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "video fields are not valid for GRAPHIC projects"})
			return
		}
	}

	// A nil or zero assignee means unassigned.
	assigneeID := req.AssigneeID
	if assigneeID != nil && *assigneeID == uuid.Nil {
		assigneeID = nil
	}

	project := &models.Project{
		Title:          req.Title,
		Type:           req.Type,
		Status:         models.ProjectStatusTodo,
		Brand:          req.Brand,
		Description:    req.Description,
		StartDate:      req.StartDate,
		DueDate:        req.DueDate,
		AssigneeID:     assigneeID,
		CreatedBy:      member.ID,
		VideoPriority:  req.VideoPriority,
		VideoPurpose:   req.VideoPurpose,
		GraphicJobType: req.GraphicJobType,
	}

	db := database.GetDB()
	if err := db.Create(project).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create project"})
		return
	}

	db.Create(&models.ProjectLog{
		ProjectID: project.ID,
		ActorID:   &member.ID,
		Action:    models.ActionProjectCreated,
		Message:   fmt.Sprintf("Project %q created", project.Title),
	})

	c.JSON(http.StatusCreated, gin.H{
		"message": "Project created successfully",
		"project": project,
	})
}

// UpdateProjectRequest is the allow-listed patch for project edits.
// Nil fields are left untouched; present fields overwrite.
type UpdateProjectRequest struct {
	Title          *string               `json:"title"`
	Brand          *string               `json:"brand"`
	Description    *string               `json:"description"`
	Status         *models.ProjectStatus `json:"status"`
	StartDate      *time.Time            `json:"start_date"`
	DueDate        *time.Time            `json:"due_date"`
	AssigneeID     *uuid.UUID            `json:"assignee_id"`
	VideoPriority  *string               `json:"video_priority"`
	VideoPurpose   *string               `json:"video_purpose"`
	GraphicJobType *string               `json:"graphic_job_type"`
}

// UpdateProject applies a field patch to a project (leader only). Field
// values overwrite; direct status edits here are the leader fast path.
func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	member, ok := middleware.GetMember(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	projectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid project ID"})
		return
	}

	db := database.GetDB()

	var project models.Project
	if err := db.First(&project, "id = ?", projectID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
		return
	}

	var req UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Status != nil && !models.IsValidStatus(*req.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid project status"})
		return
	}

	if req.Title != nil {
		project.Title = *req.Title
	}
	if req.Brand != nil {
		project.Brand = *req.Brand
	}
	if req.Description != nil {
		project.Description = *req.Description
	}
	if req.Status != nil {
		project.Status = *req.Status
	}
	if req.StartDate != nil {
		project.StartDate = req.StartDate
	}
	if req.DueDate != nil {
		project.DueDate = req.DueDate
	}
	if req.AssigneeID != nil {
		if *req.AssigneeID == uuid.Nil {
			project.AssigneeID = nil
		} else {
			project.AssigneeID = req.AssigneeID
		}
	}
	if req.VideoPriority != nil {
		project.VideoPriority = *req.VideoPriority
	}
	if req.VideoPurpose != nil {
		project.VideoPurpose = *req.VideoPurpose
	}
	if req.GraphicJobType != nil {
		project.GraphicJobType = *req.GraphicJobType
	}

	if err := db.Save(&project).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update project"})
		return
	}

	db.Create(&models.ProjectLog{
		ProjectID: project.ID,
		ActorID:   &member.ID,
		Action:    models.ActionProjectUpdated,
		Message:   fmt.Sprintf("Project %q updated", project.Title),
	})

	c.JSON(http.StatusOK, gin.H{
		"message": "Project updated successfully",
		"project": project,
	})
}

// DeleteProject hard-deletes a project and its dependent rows (leader
// only).
func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	projectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid project ID"})
		return
	}

	db := database.GetDB()

	var project models.Project
	if err := db.First(&project, "id = ?", projectID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
		return
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("project_id = ?", projectID).Delete(&models.StatusChangeRequest{}).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", projectID).Delete(&models.ProjectLog{}).Error; err != nil {
			return err
		}
		return tx.Delete(&project).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete project"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "message": "Project deleted"})
}

// RequestStatusBody is the transition request payload
type RequestStatusBody struct {
	FromStatus models.ProjectStatus `json:"from_status"`
	ToStatus   models.ProjectStatus `json:"to_status"`
}

// RequestStatus submits a desired status transition. Leaders apply it
// immediately; members get a pending approval request.
func (h *ProjectHandler) RequestStatus(c *gin.Context) {
	member, ok := middleware.GetMember(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	projectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid project ID"})
		return
	}

	var body RequestStatusBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.workflowService.RequestTransition(member, projectID, body.FromStatus, body.ToStatus)
	if err != nil {
		respondWorkflowError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":      true,
		"mode":    result.Mode,
		"message": result.Message,
	})
}

// GetProjectRequests returns the status-request history for one project
func (h *ProjectHandler) GetProjectRequests(c *gin.Context) {
	projectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid project ID"})
		return
	}

	requests, err := h.workflowService.ListForProject(projectID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch status requests"})
		return
	}

	responses := make([]models.StatusRequestResponse, 0, len(requests))
	for _, r := range requests {
		responses = append(responses, r.ToResponse())
	}

	c.JSON(http.StatusOK, gin.H{"requests": responses})
}

// GetProjectLogs returns the activity log for one project, newest first
func (h *ProjectHandler) GetProjectLogs(c *gin.Context) {
	projectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid project ID"})
		return
	}

	db := database.GetDB()

	var logs []models.ProjectLog
	if err := db.Where("project_id = ?", projectID).
		Preload("Actor").
		Order("created_at DESC").
		Find(&logs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch logs"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"logs": logs})
}

// GetProjectReport streams a PDF summary of the project and its
// activity log.
func (h *ProjectHandler) GetProjectReport(c *gin.Context) {
	projectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid project ID"})
		return
	}

	db := database.GetDB()

	var project models.Project
	if err := db.Preload("Assignee").First(&project, "id = ?", projectID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
		return
	}

	var logs []models.ProjectLog
	if err := db.Where("project_id = ?", projectID).
		Preload("Actor").
		Order("created_at ASC").
		Find(&logs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch logs"})
		return
	}

	pdfBytes, err := h.reportService.GenerateProjectReport(&project, logs)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate report"})
		return
	}

	filename := fmt.Sprintf("project_%s.pdf", project.ID.String()[:8])
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}
