package models

import (
	"time"

	"github.com/google/uuid"
)

// Assignment modes, detected from the uploaded document.
const (
	ModeColdCalling = "cold_calling"
	ModeTargeted    = "targeted"
)

type Batch struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	SourceFileName string    `json:"source_file_name"`
	AssignmentMode string    `gorm:"index" json:"assignment_mode"`
	UploadedBy     uuid.UUID `gorm:"type:uuid;index" json:"uploaded_by"`
	// Declared count from the source document. Metadata only, not
	// reconciled against the actual number of child tasks.
	TotalNumbers int       `json:"total_numbers"`
	CreatedAt    time.Time `json:"created_at"`
}
