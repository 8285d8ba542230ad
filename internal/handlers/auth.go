package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/woffu/woffu/internal/middleware"
	"github.com/woffu/woffu/internal/models"
	"github.com/woffu/woffu/internal/services"
)

type AuthHandler struct {
	authService *services.AuthService
}

func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// RegisterRequest represents registration input
type RegisterRequest struct {
	Email       string            `json:"email" binding:"required,email"`
	Password    string            `json:"password" binding:"required,min=8"`
	DisplayName string            `json:"display_name" binding:"required"`
	Department  models.Department `json:"department" binding:"required,oneof=VIDEO GRAPHIC ALL"`
	Phone       string            `json:"phone"`
}

// Register provisions a member account. New accounts always start with
// the MEMBER role; only the seeded leader or a leader edit can elevate.
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	member, err := h.authService.Register(req.Email, req.Password, req.DisplayName, req.Department, models.RoleMember)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Phone != "" {
		member.Phone = req.Phone
		h.authService.UpdateMember(member)
	}

	token, err := h.authService.GenerateToken(member)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"member": member.ToResponse(),
		"token":  token,
	})
}

// LoginRequest represents login input
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login handles member authentication
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	member, token, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrMemberInactive) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Account is deactivated"})
			return
		}
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"member": member.ToResponse(),
		"token":  token,
	})
}

// GetCurrentMember returns the authenticated caller's profile
func (h *AuthHandler) GetCurrentMember(c *gin.Context) {
	member, ok := middleware.GetMember(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"member": member.ToResponse()})
}

// ChangePasswordRequest represents password change input
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=8"`
}

// ChangePassword updates the caller's password
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	member, ok := middleware.GetMember(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !h.authService.CheckPassword(req.CurrentPassword, member.PasswordHash) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Current password is incorrect"})
		return
	}

	hash, err := h.authService.HashPassword(req.NewPassword)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update password"})
		return
	}

	member.PasswordHash = hash
	if err := h.authService.UpdateMember(member); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update password"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password changed successfully"})
}
