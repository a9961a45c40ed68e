package tasks

import (
	"fmt"
	"time"

	"lead-distribution-backend/internal/models"
	"lead-distribution-backend/internal/repository"

	"github.com/google/uuid"
)

// legacyStatus maps the old lead-qualification vocabulary onto the
// canonical work-item statuses. Both sets were historically stored in
// the same column; only the canonical set is written now.
var legacyStatus = map[string]string{
	"called":         models.StatusInProgress,
	"callback":       models.StatusInProgress,
	"interested":     models.StatusInProgress,
	"not_interested": models.StatusCancelled,
	"converted":      models.StatusCompleted,
}

var canonicalStatus = map[string]bool{
	models.StatusPending:    true,
	models.StatusInProgress: true,
	models.StatusCompleted:  true,
	models.StatusCancelled:  true,
}

// NormalizeStatus maps any accepted status value, canonical or legacy,
// to its canonical form. Unknown values are rejected.
func NormalizeStatus(s string) (string, error) {
	if canonicalStatus[s] {
		return s, nil
	}
	if mapped, ok := legacyStatus[s]; ok {
		return mapped, nil
	}
	return "", fmt.Errorf("unknown call status %q", s)
}

// UpdateInput carries the fields a lifecycle update may change. Nil
// means leave untouched.
type UpdateInput struct {
	CallStatus  *string    `json:"call_status"`
	Notes       *string    `json:"notes"`
	CompletedAt *time.Time `json:"completed_at"`
}

// Service advances one task through its lifecycle. Any status is
// reachable from any status; only the timestamps are managed.
type Service struct {
	taskRepo *repository.PhoneTaskRepository
}

func NewService(taskRepo *repository.PhoneTaskRepository) *Service {
	return &Service{taskRepo: taskRepo}
}

// UpdateTask applies the input to the task. Moving to completed
// without an explicit CompletedAt stamps the current time; the first
// move out of pending stamps CalledAt.
func (s *Service) UpdateTask(id uuid.UUID, input UpdateInput) (*models.PhoneTask, error) {
	task, err := s.taskRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if input.CallStatus != nil {
		status, err := NormalizeStatus(*input.CallStatus)
		if err != nil {
			return nil, err
		}
		if task.CallStatus == models.StatusPending && status != models.StatusPending && task.CalledAt == nil {
			now := time.Now()
			task.CalledAt = &now
		}
		task.CallStatus = status
		if status == models.StatusCompleted && input.CompletedAt == nil && task.CompletedAt == nil {
			now := time.Now()
			task.CompletedAt = &now
		}
	}
	if input.CompletedAt != nil {
		task.CompletedAt = input.CompletedAt
	}
	if input.Notes != nil {
		task.Notes = input.Notes
	}

	if err := s.taskRepo.Save(task); err != nil {
		return nil, fmt.Errorf("save task %s: %w", id, err)
	}
	return task, nil
}

// GetTask fetches one task.
func (s *Service) GetTask(id uuid.UUID) (*models.PhoneTask, error) {
	return s.taskRepo.GetByID(id)
}
