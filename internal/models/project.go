package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProjectType string

const (
	ProjectTypeVideo   ProjectType = "VIDEO"
	ProjectTypeGraphic ProjectType = "GRAPHIC"
)

type ProjectStatus string

const (
	ProjectStatusTodo       ProjectStatus = "TODO"
	ProjectStatusInProgress ProjectStatus = "IN_PROGRESS"
	ProjectStatusBlocked    ProjectStatus = "BLOCKED"
	ProjectStatusCompleted  ProjectStatus = "COMPLETED"
)

// AllProjectStatuses lists the valid lifecycle states in display order.
var AllProjectStatuses = []ProjectStatus{
	ProjectStatusTodo,
	ProjectStatusInProgress,
	ProjectStatusBlocked,
	ProjectStatusCompleted,
}

// IsValidStatus reports whether s is one of the four lifecycle states.
func IsValidStatus(s ProjectStatus) bool {
	switch s {
	case ProjectStatusTodo, ProjectStatusInProgress, ProjectStatusBlocked, ProjectStatusCompleted:
		return true
	}
	return false
}

type Project struct {
	ID          uuid.UUID     `gorm:"type:uuid;primary_key" json:"id"`
	Title       string        `gorm:"not null" json:"title"`
	Type        ProjectType   `gorm:"type:varchar(20);not null;index" json:"type"`
	Status      ProjectStatus `gorm:"type:varchar(20);not null;default:'TODO';index" json:"status"`
	Brand       string        `json:"brand"`
	Description string        `gorm:"type:text" json:"description"`
	StartDate   *time.Time    `json:"start_date,omitempty"`
	DueDate     *time.Time    `json:"due_date,omitempty"`
	AssigneeID  *uuid.UUID    `gorm:"type:uuid;index" json:"assignee_id,omitempty"`
	CreatedBy   uuid.UUID     `gorm:"type:uuid;not null" json:"created_by"`

	// Type-specific fields: video_* populated for VIDEO projects,
	// graphic_job_type for GRAPHIC ones.
	VideoPriority  string `json:"video_priority,omitempty"`
	VideoPurpose   string `json:"video_purpose,omitempty"`
	GraphicJobType string `json:"graphic_job_type,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Assignee       *Member               `gorm:"foreignKey:AssigneeID" json:"assignee,omitempty"`
	Creator        *Member               `gorm:"foreignKey:CreatedBy" json:"creator,omitempty"`
	StatusRequests []StatusChangeRequest `gorm:"foreignKey:ProjectID" json:"status_requests,omitempty"`
	Logs           []ProjectLog          `gorm:"foreignKey:ProjectID" json:"logs,omitempty"`
}

func (p *Project) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.Status == "" {
		p.Status = ProjectStatusTodo
	}
	return nil
}

// DueSoon reports whether the project's due date falls within the next
// `days` days from now, inclusive. Date-only comparison; completed
// projects are never due soon.
func (p *Project) DueSoon(now time.Time, days int) bool {
	if p.DueDate == nil || p.Status == ProjectStatusCompleted {
		return false
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	due := time.Date(p.DueDate.Year(), p.DueDate.Month(), p.DueDate.Day(), 0, 0, 0, 0, now.Location())
	if due.Before(today) {
		return false
	}
	return !due.After(today.AddDate(0, 0, days))
}
