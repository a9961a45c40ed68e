package models

import (
	"time"

	"github.com/google/uuid"
)

// Canonical call statuses. Legacy lead-qualification values are mapped
// into this set on write, see services/tasks.NormalizeStatus.
const (
	StatusPending    = "pending"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
	StatusCancelled  = "cancelled"
)

const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
	PriorityUrgent = "urgent"
)

type PhoneTask struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	// Owner for the task's whole lifetime, never reassigned. Deleting
	// the batch deletes its tasks.
	BatchID uuid.UUID `gorm:"type:uuid;index" json:"batch_id"`

	// Ordinal within the batch, in document order. Distribution sorts
	// on this so repeated runs see the same sequence.
	Position int `gorm:"index" json:"position"`

	PhoneNumber string     `gorm:"index" json:"phone_number"`
	AssignedTo  *uuid.UUID `gorm:"type:uuid;index" json:"assigned_to"`
	// Free-text name from the source document. Advisory only, never a
	// foreign key; kept after resolution for audit.
	AssignedEmployeeNameHint string `json:"assigned_employee_name_hint"`

	CallStatus  string     `gorm:"index" json:"call_status"`
	Notes       *string    `json:"notes"`
	DueDate     *time.Time `gorm:"index" json:"due_date"`
	Priority    string     `json:"priority"`
	CalledAt    *time.Time `json:"called_at"`
	CompletedAt *time.Time `json:"completed_at"`
	CreatedAt   time.Time  `json:"created_at"`
}
