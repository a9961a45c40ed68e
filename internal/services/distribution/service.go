package distribution

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"lead-distribution-backend/internal/models"
	"lead-distribution-backend/internal/repository"

	"github.com/google/uuid"
)

const assignChunkSize = 100

// Options shape both distribution strategies.
type Options struct {
	DueInDays int
	Priority  string
}

func (o Options) withDefaults() Options {
	if o.DueInDays <= 0 {
		o.DueInDays = 7
	}
	if o.Priority == "" {
		o.Priority = models.PriorityMedium
	}
	return o
}

// RandomResult reports one random-distribution call.
type RandomResult struct {
	AssignedCount    int            `json:"assigned_count"`
	PerEmployeeCount map[string]int `json:"per_employee_count"`
}

// TargetedResult reports one targeted-distribution call. SkippedCount
// counts pairs whose task id did not belong to the batch.
type TargetedResult struct {
	AssignedCount int `json:"assigned_count"`
	SkippedCount  int `json:"skipped_count"`
}

// Pair is one explicit task-to-employee request.
type Pair struct {
	PhoneTaskID uuid.UUID `json:"phone_task_id"`
	EmployeeID  uuid.UUID `json:"employee_id"`
}

// Service assigns a batch's phone tasks to employees. Updates are
// issued in bounded chunks with no rollback: chunks written before a
// failure stay written. Re-running a call is safe, each pair's update
// is idempotent. This is deliberately weaker than ingestion, which
// does compensate.
type Service struct {
	taskRepo  *repository.PhoneTaskRepository
	batchRepo *repository.BatchRepository

	// one mutex per batch so concurrent distribution calls cannot
	// race on the same unassigned snapshot
	batchLocks sync.Map
}

func NewService(taskRepo *repository.PhoneTaskRepository, batchRepo *repository.BatchRepository) *Service {
	return &Service{taskRepo: taskRepo, batchRepo: batchRepo}
}

func (s *Service) lockBatch(batchID uuid.UUID) *sync.Mutex {
	val, _ := s.batchLocks.LoadOrStore(batchID, &sync.Mutex{})
	mu := val.(*sync.Mutex)
	mu.Lock()
	return mu
}

// DistributeRandom round-robins the batch's unassigned tasks over
// employeeIDs in their given order. Every task assigned by one call
// shares a single due date. An empty employee list is a no-op, not an
// error. Tasks grabbed by a concurrent caller are skipped by the
// assigned_to IS NULL guard and excluded from the counts.
func (s *Service) DistributeRandom(batchID uuid.UUID, employeeIDs []uuid.UUID, opts Options, performedBy uuid.UUID) (*RandomResult, error) {
	result := &RandomResult{PerEmployeeCount: map[string]int{}}
	if len(employeeIDs) == 0 {
		return result, nil
	}
	opts = opts.withDefaults()

	if _, err := s.batchRepo.GetByID(batchID); err != nil {
		return nil, err
	}

	mu := s.lockBatch(batchID)
	defer mu.Unlock()

	tasks, err := s.taskRepo.FindUnassigned(batchID)
	if err != nil {
		return nil, fmt.Errorf("load unassigned tasks: %w", err)
	}
	if len(tasks) == 0 {
		return result, nil
	}

	// one shared due date for the whole call
	dueDate := time.Now().AddDate(0, 0, opts.DueInDays)

	perEmployee := make(map[uuid.UUID][]uuid.UUID, len(employeeIDs))
	for i, task := range tasks {
		emp := employeeIDs[i%len(employeeIDs)]
		perEmployee[emp] = append(perEmployee[emp], task.ID)
	}

	// iterate in round-robin order, not map order
	for _, emp := range employeeIDs {
		ids := perEmployee[emp]
		if len(ids) == 0 {
			continue
		}
		assigned, err := s.assignChunked(ids, emp, dueDate, opts.Priority, true)
		if err != nil {
			return nil, fmt.Errorf("assign tasks to %s: %w", emp, err)
		}
		if assigned > 0 {
			result.PerEmployeeCount[emp.String()] = assigned
		}
		result.AssignedCount += assigned
	}

	s.writeAudit(batchID, models.AuditRandomDistribute, performedBy, map[string]interface{}{
		"assigned_count":     result.AssignedCount,
		"per_employee_count": result.PerEmployeeCount,
		"due_date":           dueDate,
		"priority":           opts.Priority,
	})
	return result, nil
}

// DistributeTargeted applies explicit task-to-employee pairs. Pairs
// whose task id is not in the batch are dropped and reported through
// SkippedCount and the audit trail. Unlike the random strategy this
// overwrites an existing assignee: an explicit pair is operator intent.
func (s *Service) DistributeTargeted(batchID uuid.UUID, pairs []Pair, opts Options, performedBy uuid.UUID) (*TargetedResult, error) {
	result := &TargetedResult{}
	if len(pairs) == 0 {
		return result, nil
	}
	opts = opts.withDefaults()

	if _, err := s.batchRepo.GetByID(batchID); err != nil {
		return nil, err
	}

	mu := s.lockBatch(batchID)
	defer mu.Unlock()

	ids, err := s.taskRepo.TaskIDsInBatch(batchID)
	if err != nil {
		return nil, fmt.Errorf("load batch task ids: %w", err)
	}
	owned := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		owned[id] = true
	}

	var skipped []uuid.UUID
	perEmployee := make(map[uuid.UUID][]uuid.UUID)
	var employeeOrder []uuid.UUID
	for _, p := range pairs {
		if !owned[p.PhoneTaskID] {
			skipped = append(skipped, p.PhoneTaskID)
			continue
		}
		if _, seen := perEmployee[p.EmployeeID]; !seen {
			employeeOrder = append(employeeOrder, p.EmployeeID)
		}
		perEmployee[p.EmployeeID] = append(perEmployee[p.EmployeeID], p.PhoneTaskID)
	}
	result.SkippedCount = len(skipped)

	dueDate := time.Now().AddDate(0, 0, opts.DueInDays)

	for _, emp := range employeeOrder {
		assigned, err := s.assignChunked(perEmployee[emp], emp, dueDate, opts.Priority, false)
		if err != nil {
			return nil, fmt.Errorf("assign tasks to %s: %w", emp, err)
		}
		result.AssignedCount += assigned
	}

	s.writeAudit(batchID, models.AuditTargetedDistribute, performedBy, map[string]interface{}{
		"assigned_count":   result.AssignedCount,
		"skipped_count":    result.SkippedCount,
		"skipped_task_ids": skipped,
		"due_date":         dueDate,
		"priority":         opts.Priority,
	})
	return result, nil
}

// assignChunked updates one employee's task ids in bounded chunks,
// stopping at the first failing chunk.
func (s *Service) assignChunked(ids []uuid.UUID, employeeID uuid.UUID, dueDate time.Time, priority string, guardUnassigned bool) (int, error) {
	total := 0
	for start := 0; start < len(ids); start += assignChunkSize {
		end := start + assignChunkSize
		if end > len(ids) {
			end = len(ids)
		}
		var (
			affected int64
			err      error
		)
		if guardUnassigned {
			affected, err = s.taskRepo.AssignIfUnassigned(ids[start:end], employeeID, dueDate, priority)
		} else {
			affected, err = s.taskRepo.Assign(ids[start:end], employeeID, dueDate, priority)
		}
		if err != nil {
			return total, err
		}
		total += int(affected)
	}
	return total, nil
}

func (s *Service) writeAudit(batchID uuid.UUID, action string, performedBy uuid.UUID, details map[string]interface{}) {
	blob, err := json.Marshal(details)
	if err != nil {
		log.Printf("marshal audit details for batch %s: %v", batchID, err)
		return
	}
	entry := &models.DistributionAuditLog{
		ID:          uuid.New(),
		BatchID:     batchID,
		Action:      action,
		PerformedBy: performedBy,
		Details:     blob,
		CreatedAt:   time.Now(),
	}
	// audit is best-effort; a failed write never fails the distribution
	if err := s.taskRepo.DB().Create(entry).Error; err != nil {
		log.Printf("write audit log for batch %s: %v", batchID, err)
	}
}
