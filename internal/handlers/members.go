package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/woffu/woffu/internal/database"
	"github.com/woffu/woffu/internal/middleware"
	"github.com/woffu/woffu/internal/models"
)

type MemberHandler struct{}

func NewMemberHandler() *MemberHandler {
	return &MemberHandler{}
}

// ListMembers returns all members; pass ?active=true to exclude
// deactivated accounts (assignment pickers do).
func (h *MemberHandler) ListMembers(c *gin.Context) {
	db := database.GetDB()

	query := db.Model(&models.Member{})
	if c.Query("active") == "true" {
		query = query.Where("is_active = ?", true)
	}
	if department := c.Query("department"); department != "" {
		query = query.Where("department = ?", department)
	}

	var members []models.Member
	if err := query.Order("display_name").Find(&members).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch members"})
		return
	}

	responses := make([]models.MemberResponse, 0, len(members))
	for _, m := range members {
		responses = append(responses, m.ToResponse())
	}

	c.JSON(http.StatusOK, gin.H{"members": responses})
}

// UpdateMemberRequest is the allow-listed patch for member edits
type UpdateMemberRequest struct {
	DisplayName *string            `json:"display_name"`
	Phone       *string            `json:"phone"`
	AvatarURL   *string            `json:"avatar_url"`
	BirthDate   *time.Time         `json:"birth_date"`
	Department  *models.Department `json:"department"`
	Role        *models.MemberRole `json:"role"`
	IsActive    *bool              `json:"is_active"`
}

// UpdateMember edits a member profile. Members may edit their own
// descriptive fields; role and activation changes require a leader.
func (h *MemberHandler) UpdateMember(c *gin.Context) {
	caller, ok := middleware.GetMember(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	memberID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid member ID"})
		return
	}

	if memberID != caller.ID && !caller.IsLeader() {
		c.JSON(http.StatusForbidden, gin.H{"error": "Cannot edit another member's profile"})
		return
	}

	var req UpdateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if (req.Role != nil || req.IsActive != nil) && !caller.IsLeader() {
		c.JSON(http.StatusForbidden, gin.H{"error": "Role and activation changes require a leader"})
		return
	}

	if req.Role != nil && *req.Role != models.RoleLeader && *req.Role != models.RoleMember {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid role"})
		return
	}
	if req.Department != nil {
		switch *req.Department {
		case models.DepartmentVideo, models.DepartmentGraphic, models.DepartmentAll:
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid department"})
			return
		}
	}

	db := database.GetDB()

	var member models.Member
	if err := db.First(&member, "id = ?", memberID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Member not found"})
		return
	}

	if req.DisplayName != nil {
		member.DisplayName = *req.DisplayName
	}
	if req.Phone != nil {
		member.Phone = *req.Phone
	}
	if req.AvatarURL != nil {
		member.AvatarURL = *req.AvatarURL
	}
	if req.BirthDate != nil {
		member.BirthDate = req.BirthDate
	}
	if req.Department != nil {
		member.Department = *req.Department
	}
	if req.Role != nil {
		member.Role = *req.Role
	}
	if req.IsActive != nil {
		member.IsActive = *req.IsActive
	}

	if err := db.Save(&member).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update member"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Member updated successfully",
		"member":  member.ToResponse(),
	})
}
