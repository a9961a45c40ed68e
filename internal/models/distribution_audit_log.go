package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Audit actions recorded per distribution call.
const (
	AuditRandomDistribute   = "random_distribute"
	AuditTargetedDistribute = "targeted_distribute"
	AuditAutoMatch          = "auto_match"
)

type DistributionAuditLog struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	BatchID     uuid.UUID      `gorm:"type:uuid;index" json:"batch_id"`
	Action      string         `json:"action"`
	PerformedBy uuid.UUID      `gorm:"type:uuid" json:"performed_by"`
	Details     datatypes.JSON `json:"details"`
	CreatedAt   time.Time      `json:"created_at"`
}
