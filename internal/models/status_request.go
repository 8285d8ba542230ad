package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RequestStatus string

const (
	RequestStatusPending  RequestStatus = "PENDING"
	RequestStatusApproved RequestStatus = "APPROVED"
	RequestStatusRejected RequestStatus = "REJECTED"
)

// StatusChangeRequest records a member's ask for a project status
// transition. It is created PENDING and resolved exactly once to
// APPROVED or REJECTED by a leader.
type StatusChangeRequest struct {
	ID            uuid.UUID     `gorm:"type:uuid;primary_key" json:"id"`
	ProjectID     uuid.UUID     `gorm:"type:uuid;not null;index:idx_request_project" json:"project_id"`
	FromStatus    ProjectStatus `gorm:"type:varchar(20);not null" json:"from_status"`
	ToStatus      ProjectStatus `gorm:"type:varchar(20);not null" json:"to_status"`
	RequestStatus RequestStatus `gorm:"type:varchar(20);not null;default:'PENDING';index" json:"request_status"`
	RequestedBy   uuid.UUID     `gorm:"type:uuid;not null;index:idx_request_project" json:"requested_by"`
	ApprovedBy    *uuid.UUID    `gorm:"type:uuid" json:"approved_by,omitempty"`
	ApprovedAt    *time.Time    `json:"approved_at,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`

	// Relations
	Project   *Project `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	Requester *Member  `gorm:"foreignKey:RequestedBy" json:"requester,omitempty"`
	Approver  *Member  `gorm:"foreignKey:ApprovedBy" json:"approver,omitempty"`
}

func (r *StatusChangeRequest) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	if r.RequestStatus == "" {
		r.RequestStatus = RequestStatusPending
	}
	return nil
}

// IsPending matches the stored workflow state case-insensitively.
func (r *StatusChangeRequest) IsPending() bool {
	return strings.EqualFold(string(r.RequestStatus), string(RequestStatusPending))
}

// StatusRequestResponse enriches a request with the related project and
// the display names of the members involved.
type StatusRequestResponse struct {
	ID            uuid.UUID     `json:"id"`
	ProjectID     uuid.UUID     `json:"project_id"`
	ProjectTitle  string        `json:"project_title"`
	ProjectBrand  string        `json:"project_brand"`
	ProjectType   ProjectType   `json:"project_type"`
	FromStatus    ProjectStatus `json:"from_status"`
	ToStatus      ProjectStatus `json:"to_status"`
	RequestStatus RequestStatus `json:"request_status"`
	RequesterName string        `json:"requester_name"`
	ApproverName  string        `json:"approver_name,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
	ApprovedAt    *time.Time    `json:"approved_at,omitempty"`
}

func (r *StatusChangeRequest) ToResponse() StatusRequestResponse {
	resp := StatusRequestResponse{
		ID:            r.ID,
		ProjectID:     r.ProjectID,
		FromStatus:    r.FromStatus,
		ToStatus:      r.ToStatus,
		RequestStatus: r.RequestStatus,
		CreatedAt:     r.CreatedAt,
		ApprovedAt:    r.ApprovedAt,
	}
	if r.Project != nil {
		resp.ProjectTitle = r.Project.Title
		resp.ProjectBrand = r.Project.Brand
		resp.ProjectType = r.Project.Type
	}
	if r.Requester != nil {
		resp.RequesterName = r.Requester.DisplayName
	}
	if r.Approver != nil {
		resp.ApproverName = r.Approver.DisplayName
	}
	return resp
}
