package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/woffu/woffu/internal/models"
	"gorm.io/gorm"
)

var (
	ErrForbidden       = errors.New("leader role required")
	ErrProjectNotFound = errors.New("project not found")
	ErrRequestNotFound = errors.New("status change request not found")
	ErrMissingStatus   = errors.New("to_status is required")
	ErrInvalidStatus   = errors.New("invalid project status")
)

// NotPendingError reports an approval attempt on a request that has
// already been resolved. The current state is surfaced for diagnosis.
type NotPendingError struct {
	Current models.RequestStatus
}

func (e *NotPendingError) Error() string {
	return fmt.Sprintf("request is not pending. Current: %s", e.Current)
}

type TransitionMode string

const (
	ModeApplied   TransitionMode = "APPLIED"
	ModeRequested TransitionMode = "REQUESTED"
)

// TransitionResult describes the outcome of a transition request.
type TransitionResult struct {
	Mode    TransitionMode              `json:"mode"`
	Message string                      `json:"message,omitempty"`
	Request *models.StatusChangeRequest `json:"request,omitempty"`
}

// WorkflowService implements the status-change approval workflow.
// Leaders mutate project status directly; members file a pending
// request that a leader later approves or rejects. Every transition
// appends a ProjectLog entry.
type WorkflowService struct {
	db *gorm.DB
}

func NewWorkflowService(db *gorm.DB) *WorkflowService {
	return &WorkflowService{db: db}
}

// RequestTransition handles a desired status transition for a project.
// The supplied fromStatus is informational; the stored status is not
// required to match it.
func (s *WorkflowService) RequestTransition(caller *models.Member, projectID uuid.UUID, fromStatus, toStatus models.ProjectStatus) (*TransitionResult, error) {
	if toStatus == "" {
		return nil, ErrMissingStatus
	}
	if !models.IsValidStatus(toStatus) {
		return nil, ErrInvalidStatus
	}
	if fromStatus != "" && !models.IsValidStatus(fromStatus) {
		return nil, ErrInvalidStatus
	}

	var project models.Project
	if err := s.db.First(&project, "id = ?", projectID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, err
	}

	if caller.IsLeader() {
		err := s.db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Model(&project).Update("status", toStatus).Error; err != nil {
				return err
			}
			return tx.Create(&models.ProjectLog{
				ProjectID: project.ID,
				ActorID:   &caller.ID,
				Action:    models.ActionStatusApproved,
				Message:   fmt.Sprintf("Status changed from %s to %s", fromStatus, toStatus),
				Meta: models.JSONMap{
					"from_status": string(fromStatus),
					"to_status":   string(toStatus),
				},
			}).Error
		})
		if err != nil {
			return nil, err
		}
		return &TransitionResult{Mode: ModeApplied, Message: "Status updated"}, nil
	}

	var result TransitionResult
	err := s.db.Transaction(func(tx *gorm.DB) error {
		// Running the existence check and the insert inside one
		// transaction keeps the single-pending invariant intact under
		// concurrent requests from the same member.
		var existing models.StatusChangeRequest
		err := tx.Where("project_id = ? AND requested_by = ? AND request_status = ?",
			project.ID, caller.ID, models.RequestStatusPending).First(&existing).Error
		if err == nil {
			result = TransitionResult{Mode: ModeRequested, Message: "A status change request is already pending", Request: &existing}
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		request := &models.StatusChangeRequest{
			ProjectID:     project.ID,
			FromStatus:    fromStatus,
			ToStatus:      toStatus,
			RequestStatus: models.RequestStatusPending,
			RequestedBy:   caller.ID,
		}
		if err := tx.Create(request).Error; err != nil {
			return err
		}

		if err := tx.Create(&models.ProjectLog{
			ProjectID: project.ID,
			ActorID:   &caller.ID,
			Action:    models.ActionStatusRequested,
			Message:   fmt.Sprintf("Requested status change from %s to %s", fromStatus, toStatus),
			Meta: models.JSONMap{
				"request_id":  request.ID.String(),
				"from_status": string(fromStatus),
				"to_status":   string(toStatus),
			},
		}).Error; err != nil {
			return err
		}

		result = TransitionResult{Mode: ModeRequested, Message: "Status change requested", Request: request}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// Approve resolves a pending request, overwrites the project's status
// with the requested target, and appends an audit entry. The three
// writes run in a single transaction.
func (s *WorkflowService) Approve(caller *models.Member, requestID uuid.UUID) error {
	if !caller.IsLeader() {
		return ErrForbidden
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		var request models.StatusChangeRequest
		if err := tx.First(&request, "id = ?", requestID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRequestNotFound
			}
			return err
		}

		if !request.IsPending() {
			return &NotPendingError{Current: request.RequestStatus}
		}

		now := time.Now()
		request.RequestStatus = models.RequestStatusApproved
		request.ApprovedBy = &caller.ID
		request.ApprovedAt = &now
		if err := tx.Save(&request).Error; err != nil {
			return err
		}

		if err := tx.Model(&models.Project{}).Where("id = ?", request.ProjectID).
			Update("status", request.ToStatus).Error; err != nil {
			return err
		}

		return tx.Create(&models.ProjectLog{
			ProjectID: request.ProjectID,
			ActorID:   &caller.ID,
			Action:    models.ActionStatusApproved,
			Message:   fmt.Sprintf("Approved status change from %s to %s", request.FromStatus, request.ToStatus),
			Meta: models.JSONMap{
				"request_id":  request.ID.String(),
				"from_status": string(request.FromStatus),
				"to_status":   string(request.ToStatus),
			},
		}).Error
	})
}

// Reject resolves a pending request without touching the project.
// Rejecting an already-resolved request is a no-op success.
func (s *WorkflowService) Reject(caller *models.Member, requestID uuid.UUID) error {
	if !caller.IsLeader() {
		return ErrForbidden
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		var request models.StatusChangeRequest
		if err := tx.First(&request, "id = ?", requestID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRequestNotFound
			}
			return err
		}

		if !request.IsPending() {
			// Already processed; idempotent by design of the workflow.
			return nil
		}

		now := time.Now()
		request.RequestStatus = models.RequestStatusRejected
		request.ApprovedBy = &caller.ID
		request.ApprovedAt = &now
		if err := tx.Save(&request).Error; err != nil {
			return err
		}

		return tx.Create(&models.ProjectLog{
			ProjectID: request.ProjectID,
			ActorID:   &caller.ID,
			Action:    models.ActionStatusRejected,
			Message:   fmt.Sprintf("Rejected status change from %s to %s", request.FromStatus, request.ToStatus),
			Meta: models.JSONMap{
				"request_id": request.ID.String(),
			},
		}).Error
	})
}

// ListPending returns all unresolved requests, newest first, with the
// related project and member names preloaded.
func (s *WorkflowService) ListPending(caller *models.Member) ([]models.StatusChangeRequest, error) {
	if !caller.IsLeader() {
		return nil, ErrForbidden
	}

	var requests []models.StatusChangeRequest
	err := s.db.Where("request_status = ?", models.RequestStatusPending).
		Preload("Project").
		Preload("Requester").
		Order("created_at DESC").
		Find(&requests).Error
	return requests, err
}

// ListHistory returns all resolved requests, newest first.
func (s *WorkflowService) ListHistory(caller *models.Member) ([]models.StatusChangeRequest, error) {
	if !caller.IsLeader() {
		return nil, ErrForbidden
	}

	var requests []models.StatusChangeRequest
	err := s.db.Where("request_status <> ?", models.RequestStatusPending).
		Preload("Project").
		Preload("Requester").
		Preload("Approver").
		Order("created_at DESC").
		Find(&requests).Error
	return requests, err
}

// ListForProject returns every request filed against one project,
// newest first.
func (s *WorkflowService) ListForProject(projectID uuid.UUID) ([]models.StatusChangeRequest, error) {
	var requests []models.StatusChangeRequest
	err := s.db.Where("project_id = ?", projectID).
		Preload("Requester").
		Preload("Approver").
		Order("created_at DESC").
		Find(&requests).Error
	return requests, err
}

// ClearHistory deletes resolved requests. Pending rows are never
// touched.
func (s *WorkflowService) ClearHistory(caller *models.Member) error {
	if !caller.IsLeader() {
		return ErrForbidden
	}

	return s.db.Where("request_status <> ?", models.RequestStatusPending).
		Delete(&models.StatusChangeRequest{}).Error
}
