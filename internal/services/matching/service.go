package matching

import (
	"fmt"

	"lead-distribution-backend/internal/repository"
	"lead-distribution-backend/internal/services/distribution"

	"github.com/google/uuid"
)

// AutoMatchResult reports one auto-match pass over a batch.
type AutoMatchResult struct {
	MatchedCount   int         `json:"matched_count"`
	UnmatchedCount int         `json:"unmatched_count"`
	UnmatchedTasks []uuid.UUID `json:"unmatched_tasks"`
}

// Service resolves a batch's name hints against the employee directory
// and persists the matches through the targeted distributor.
type Service struct {
	employeeRepo *repository.EmployeeRepository
	taskRepo     *repository.PhoneTaskRepository
	distributor  *distribution.Service
}

func NewService(employeeRepo *repository.EmployeeRepository, taskRepo *repository.PhoneTaskRepository, distributor *distribution.Service) *Service {
	return &Service{employeeRepo: employeeRepo, taskRepo: taskRepo, distributor: distributor}
}

// AutoMatchBatch resolves every hinted task in the batch and assigns
// the matched ones. Unmatched task ids come back for manual handling.
func (s *Service) AutoMatchBatch(batchID uuid.UUID, opts distribution.Options, performedBy uuid.UUID) (*AutoMatchResult, error) {
	employees, err := s.employeeRepo.GetAll()
	if err != nil {
		return nil, fmt.Errorf("load employee directory: %w", err)
	}

	tasks, err := s.taskRepo.FindByHint(batchID)
	if err != nil {
		return nil, fmt.Errorf("load hinted tasks: %w", err)
	}

	resolved := NewResolver(employees).Resolve(tasks)

	pairs := make([]distribution.Pair, 0, len(resolved.Proposals))
	for _, p := range resolved.Proposals {
		pairs = append(pairs, distribution.Pair{PhoneTaskID: p.TaskID, EmployeeID: p.EmployeeID})
	}

	if len(pairs) > 0 {
		if _, err := s.distributor.DistributeTargeted(batchID, pairs, opts, performedBy); err != nil {
			return nil, err
		}
	}

	return &AutoMatchResult{
		MatchedCount:   len(resolved.Proposals),
		UnmatchedCount: len(resolved.Unmatched),
		UnmatchedTasks: resolved.Unmatched,
	}, nil
}
