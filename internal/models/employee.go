package models

import (
	"time"

	"github.com/google/uuid"
)

// Employee mirrors the employee directory. This service only reads it.
type Employee struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	DisplayName string    `gorm:"index" json:"display_name"`
	Email       string    `json:"email"`
	CreatedAt   time.Time `json:"created_at"`
}
