package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/woffu/woffu/internal/middleware"
	"github.com/woffu/woffu/internal/models"
	"github.com/woffu/woffu/internal/services"
)

type ApprovalHandler struct {
	workflowService *services.WorkflowService
}

func NewApprovalHandler(workflowService *services.WorkflowService) *ApprovalHandler {
	return &ApprovalHandler{workflowService: workflowService}
}

// ListApprovals returns pending requests and resolved history (leader
// only).
func (h *ApprovalHandler) ListApprovals(c *gin.Context) {
	member, ok := middleware.GetMember(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	pending, err := h.workflowService.ListPending(member)
	if err != nil {
		respondWorkflowError(c, err)
		return
	}

	history, err := h.workflowService.ListHistory(member)
	if err != nil {
		respondWorkflowError(c, err)
		return
	}

	pendingResp := make([]models.StatusRequestResponse, 0, len(pending))
	for _, r := range pending {
		pendingResp = append(pendingResp, r.ToResponse())
	}
	historyResp := make([]models.StatusRequestResponse, 0, len(history))
	for _, r := range history {
		historyResp = append(historyResp, r.ToResponse())
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"pending": pendingResp,
			"history": historyResp,
		},
	})
}

// Approve resolves a pending request and applies the status change
func (h *ApprovalHandler) Approve(c *gin.Context) {
	member, ok := middleware.GetMember(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	requestID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request ID"})
		return
	}

	if err := h.workflowService.Approve(member, requestID); err != nil {
		respondWorkflowError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// Reject resolves a pending request without touching the project
func (h *ApprovalHandler) Reject(c *gin.Context) {
	member, ok := middleware.GetMember(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	requestID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request ID"})
		return
	}

	if err := h.workflowService.Reject(member, requestID); err != nil {
		respondWorkflowError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// ClearHistory deletes resolved requests; pending rows survive
func (h *ApprovalHandler) ClearHistory(c *gin.Context) {
	member, ok := middleware.GetMember(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	if err := h.workflowService.ClearHistory(member); err != nil {
		respondWorkflowError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}
