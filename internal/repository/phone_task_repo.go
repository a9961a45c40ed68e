package repository

import (
	"time"

	"lead-distribution-backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PhoneTaskRepository struct {
	db *gorm.DB
}

func NewPhoneTaskRepository(db *gorm.DB) *PhoneTaskRepository {
	return &PhoneTaskRepository{db: db}
}

func (r *PhoneTaskRepository) DB() *gorm.DB {
	return r.db
}

// InsertChunk bulk-inserts one chunk of seed rows.
func (r *PhoneTaskRepository) InsertChunk(tasks []models.PhoneTask) error {
	return r.db.Create(&tasks).Error
}

// GetByID fetch a single task by ID
func (r *PhoneTaskRepository) GetByID(id uuid.UUID) (*models.PhoneTask, error) {
	var task models.PhoneTask
	err := r.db.First(&task, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *PhoneTaskRepository) Save(task *models.PhoneTask) error {
	return r.db.Save(task).Error
}

// FindUnassigned returns the batch's unassigned tasks in creation
// order. Distribution depends on this order being stable.
func (r *PhoneTaskRepository) FindUnassigned(batchID uuid.UUID) ([]models.PhoneTask, error) {
	var tasks []models.PhoneTask
	err := r.db.
		Where("batch_id = ? AND assigned_to IS NULL", batchID).
		Order("position ASC").
		Find(&tasks).Error
	return tasks, err
}

// TaskIDsInBatch returns the set of task ids owned by the batch.
func (r *PhoneTaskRepository) TaskIDsInBatch(batchID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.Model(&models.PhoneTask{}).
		Where("batch_id = ?", batchID).
		Pluck("id", &ids).Error
	return ids, err
}

// AssignIfUnassigned sets assignee, due date and priority on the given
// tasks, skipping any task that already has an assignee. Returns the
// number of rows actually updated.
func (r *PhoneTaskRepository) AssignIfUnassigned(ids []uuid.UUID, employeeID uuid.UUID, dueDate time.Time, priority string) (int64, error) {
	result := r.db.Model(&models.PhoneTask{}).
		Where("id IN ? AND assigned_to IS NULL", ids).
		Updates(map[string]interface{}{
			"assigned_to": employeeID,
			"due_date":    dueDate,
			"priority":    priority,
		})
	return result.RowsAffected, result.Error
}

// Assign sets assignee, due date and priority unconditionally,
// overwriting any existing assignee.
func (r *PhoneTaskRepository) Assign(ids []uuid.UUID, employeeID uuid.UUID, dueDate time.Time, priority string) (int64, error) {
	result := r.db.Model(&models.PhoneTask{}).
		Where("id IN ?", ids).
		Updates(map[string]interface{}{
			"assigned_to": employeeID,
			"due_date":    dueDate,
			"priority":    priority,
		})
	return result.RowsAffected, result.Error
}

// FindByHint returns the batch's tasks that carry a non-empty name hint.
func (r *PhoneTaskRepository) FindByHint(batchID uuid.UUID) ([]models.PhoneTask, error) {
	var tasks []models.PhoneTask
	err := r.db.
		Where("batch_id = ? AND assigned_employee_name_hint <> ''", batchID).
		Order("position ASC").
		Find(&tasks).Error
	return tasks, err
}

// FindDueInRange returns an employee's tasks whose due date falls in
// [start, end]. Tasks without a due date are excluded by the predicate.
func (r *PhoneTaskRepository) FindDueInRange(employeeID uuid.UUID, start, end time.Time) ([]models.PhoneTask, error) {
	var tasks []models.PhoneTask
	err := r.db.
		Where("assigned_to = ? AND due_date >= ? AND due_date <= ?", employeeID, start, end).
		Order("due_date ASC").
		Find(&tasks).Error
	return tasks, err
}

// FindForStats returns all tasks, or one employee's tasks when a
// filter is given.
func (r *PhoneTaskRepository) FindForStats(employeeID *uuid.UUID) ([]models.PhoneTask, error) {
	var tasks []models.PhoneTask
	query := r.db.Model(&models.PhoneTask{})
	if employeeID != nil {
		query = query.Where("assigned_to = ?", *employeeID)
	}
	err := query.Find(&tasks).Error
	return tasks, err
}

// ListByBatch pages through a batch's tasks by id cursor.
func (r *PhoneTaskRepository) ListByBatch(batchID uuid.UUID, status, cursor string, limit int) ([]models.PhoneTask, string, bool, error) {
	var tasks []models.PhoneTask
	query := r.db.
		Where("batch_id = ?", batchID).
		Order("id ASC").
		Limit(limit + 1)

	if status != "" && status != "all" {
		query = query.Where("call_status = ?", status)
	}
	if cursor != "" {
		query = query.Where("id > ?", cursor)
	}

	if err := query.Find(&tasks).Error; err != nil {
		return nil, "", false, err
	}

	hasMore := false
	nextCursor := ""
	if len(tasks) > limit {
		hasMore = true
		nextCursor = tasks[limit-1].ID.String()
		tasks = tasks[:limit]
	}
	return tasks, nextCursor, hasMore, nil
}
