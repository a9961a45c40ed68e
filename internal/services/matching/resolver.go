package matching

import (
	"strings"

	"lead-distribution-backend/internal/models"

	"github.com/google/uuid"
)

// Proposal links one task to the employee its name hint resolved to.
type Proposal struct {
	TaskID     uuid.UUID `json:"task_id"`
	EmployeeID uuid.UUID `json:"employee_id"`
}

// ResolveResult carries matched proposals plus the task ids whose hint
// matched nobody and needs manual resolution.
type ResolveResult struct {
	Proposals []Proposal  `json:"proposals"`
	Unmatched []uuid.UUID `json:"unmatched"`
}

// Resolver maps normalized employee names and contact addresses to
// employee ids. Matching is exact-string after normalization; no fuzzy
// or edit-distance matching.
type Resolver struct {
	byName map[string]uuid.UUID
}

func NewResolver(employees []models.Employee) *Resolver {
	byName := make(map[string]uuid.UUID, len(employees)*2)
	for _, emp := range employees {
		if key := normalizeName(emp.DisplayName); key != "" {
			byName[key] = emp.ID
		}
		if key := normalizeName(emp.Email); key != "" {
			byName[key] = emp.ID
		}
	}
	return &Resolver{byName: byName}
}

// Resolve proposes assignments for tasks whose hint matches a known
// employee. Pure and read-only; nothing is persisted here.
func (r *Resolver) Resolve(tasks []models.PhoneTask) ResolveResult {
	var result ResolveResult
	for _, task := range tasks {
		if id, ok := r.byName[normalizeName(task.AssignedEmployeeNameHint)]; ok {
			result.Proposals = append(result.Proposals, Proposal{TaskID: task.ID, EmployeeID: id})
		} else {
			result.Unmatched = append(result.Unmatched, task.ID)
		}
	}
	return result
}

// normalizeName lowercases, collapses whitespace runs and trims.
func normalizeName(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}
