package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Log action tags.
const (
	ActionProjectCreated  = "PROJECT_CREATED"
	ActionProjectUpdated  = "PROJECT_UPDATED"
	ActionStatusRequested = "STATUS_REQUESTED"
	ActionStatusApproved  = "STATUS_APPROVED"
	ActionStatusRejected  = "STATUS_REJECTED"
)

// JSONMap stores a structured payload as a JSON text column.
type JSONMap map[string]interface{}

func (m JSONMap) Value() (driver.Value, error) {
	if m == nil {
		return nil, nil
	}
	b, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (m *JSONMap) Scan(value interface{}) error {
	if value == nil {
		*m = nil
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return errors.New("unsupported type for JSONMap")
	}
	return json.Unmarshal(data, m)
}

// ProjectLog is the append-only audit trail of actions taken against a
// project. Entries are never updated or deleted.
type ProjectLog struct {
	ID        uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	ProjectID uuid.UUID  `gorm:"type:uuid;not null;index" json:"project_id"`
	ActorID   *uuid.UUID `gorm:"type:uuid" json:"actor_id,omitempty"`
	Action    string     `gorm:"size:50;not null" json:"action"`
	Message   string     `gorm:"type:text" json:"message"`
	Meta      JSONMap    `gorm:"type:text" json:"meta,omitempty"`
	CreatedAt time.Time  `json:"created_at"`

	// Relations
	Actor *Member `gorm:"foreignKey:ActorID" json:"actor,omitempty"`
}

func (l *ProjectLog) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}
