package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MemberRole string

const (
	RoleLeader MemberRole = "LEADER"
	RoleMember MemberRole = "MEMBER"
)

type Department string

const (
	DepartmentVideo   Department = "VIDEO"
	DepartmentGraphic Department = "GRAPHIC"
	DepartmentAll     Department = "ALL"
)

type Member struct {
	ID           uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	Email        string     `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string     `gorm:"not null" json:"-"`
	DisplayName  string     `gorm:"not null" json:"display_name"`
	Phone        string     `json:"phone"`
	AvatarURL    string     `json:"avatar_url"`
	BirthDate    *time.Time `json:"birth_date,omitempty"`
	Department   Department `gorm:"type:varchar(20);not null;default:'ALL'" json:"department"`
	Role         MemberRole `gorm:"type:varchar(20);not null;default:'MEMBER'" json:"role"`
	IsActive     bool       `gorm:"default:true" json:"is_active"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`

	// Relations
	Projects []Project `gorm:"foreignKey:AssigneeID" json:"projects,omitempty"`
}

func (m *Member) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// IsLeader reports whether the member holds approval authority.
// Deactivated leaders lose it.
func (m *Member) IsLeader() bool {
	return m.Role == RoleLeader && m.IsActive
}

// MemberResponse is a safe representation without sensitive fields
type MemberResponse struct {
	ID          uuid.UUID  `json:"id"`
	Email       string     `json:"email"`
	DisplayName string     `json:"display_name"`
	Phone       string     `json:"phone"`
	AvatarURL   string     `json:"avatar_url"`
	BirthDate   *time.Time `json:"birth_date,omitempty"`
	Department  Department `json:"department"`
	Role        MemberRole `json:"role"`
	IsActive    bool       `json:"is_active"`
	CreatedAt   time.Time  `json:"created_at"`
}

func (m *Member) ToResponse() MemberResponse {
	return MemberResponse{
		ID:          m.ID,
		Email:       m.Email,
		DisplayName: m.DisplayName,
		Phone:       m.Phone,
		AvatarURL:   m.AvatarURL,
		BirthDate:   m.BirthDate,
		Department:  m.Department,
		Role:        m.Role,
		IsActive:    m.IsActive,
		CreatedAt:   m.CreatedAt,
	}
}
