package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/woffu/woffu/internal/models"
	"github.com/woffu/woffu/internal/services"
)

// AuthMiddleware validates JWT tokens and resolves the caller's member
// record. The record is loaded fresh on every request so role and
// activation changes take effect immediately.
func AuthMiddleware(authService *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			c.Abort()
			return
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization format"})
			c.Abort()
			return
		}

		claims, err := authService.ValidateToken(parts[1])
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			c.Abort()
			return
		}

		member, err := authService.GetMemberByID(claims.MemberID)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Member profile not found"})
			c.Abort()
			return
		}

		c.Set("member", member)
		c.Set("memberID", member.ID)

		c.Next()
	}
}

// RequireLeader ensures the caller is an active leader.
func RequireLeader() gin.HandlerFunc {
	return func(c *gin.Context) {
		member, ok := GetMember(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			c.Abort()
			return
		}

		if !member.IsLeader() {
			c.JSON(http.StatusForbidden, gin.H{"error": "Leader role required"})
			c.Abort()
			return
		}

		c.Next()
	}
}

// GetMember extracts the resolved member from context
func GetMember(c *gin.Context) (*models.Member, bool) {
	value, exists := c.Get("member")
	if !exists {
		return nil, false
	}
	member, ok := value.(*models.Member)
	return member, ok
}

// GetMemberID extracts the caller's ID from context
func GetMemberID(c *gin.Context) (uuid.UUID, bool) {
	value, exists := c.Get("memberID")
	if !exists {
		return uuid.Nil, false
	}
	return value.(uuid.UUID), true
}
