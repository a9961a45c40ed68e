package reporting

import (
	"fmt"
	"sort"
	"time"

	"lead-distribution-backend/internal/models"
	"lead-distribution-backend/internal/repository"

	"github.com/google/uuid"
)

// CalendarDay buckets one due date's tasks with per-status counts.
type CalendarDay struct {
	Date       string             `json:"date"` // YYYY-MM-DD
	Pending    int                `json:"pending"`
	InProgress int                `json:"in_progress"`
	Completed  int                `json:"completed"`
	Tasks      []models.PhoneTask `json:"tasks"`
}

// Stats is a point-in-time aggregate over the (optionally filtered)
// task set. Computed on read, never stored.
type Stats struct {
	Total          int `json:"total"`
	Pending        int `json:"pending"`
	InProgress     int `json:"in_progress"`
	Completed      int `json:"completed"`
	Overdue        int `json:"overdue"`
	CompletedToday int `json:"completed_today"`
}

// Service derives calendar and stat views. One full scan per call;
// fine at moderate scale, nothing is maintained incrementally.
type Service struct {
	taskRepo *repository.PhoneTaskRepository
}

func NewService(taskRepo *repository.PhoneTaskRepository) *Service {
	return &Service{taskRepo: taskRepo}
}

// Calendar groups the employee's tasks due in [start, end] by the date
// portion of the due date; time of day is ignored. Tasks without a due
// date never appear. Buckets come back in ascending date order.
func (s *Service) Calendar(employeeID uuid.UUID, start, end time.Time) ([]CalendarDay, error) {
	tasksInRange, err := s.taskRepo.FindDueInRange(employeeID, start, end)
	if err != nil {
		return nil, fmt.Errorf("load tasks due in range: %w", err)
	}

	buckets := make(map[string]*CalendarDay)
	for _, task := range tasksInRange {
		if task.DueDate == nil {
			continue
		}
		key := task.DueDate.Local().Format("2006-01-02")
		day, ok := buckets[key]
		if !ok {
			day = &CalendarDay{Date: key}
			buckets[key] = day
		}
		switch task.CallStatus {
		case models.StatusPending:
			day.Pending++
		case models.StatusInProgress:
			day.InProgress++
		case models.StatusCompleted:
			day.Completed++
		}
		day.Tasks = append(day.Tasks, task)
	}

	days := make([]CalendarDay, 0, len(buckets))
	for _, day := range buckets {
		days = append(days, *day)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Date < days[j].Date })
	return days, nil
}

// ComputeStats aggregates the full task set, or one employee's slice
// of it when a filter is given.
func (s *Service) ComputeStats(employeeID *uuid.UUID) (*Stats, error) {
	tasksAll, err := s.taskRepo.FindForStats(employeeID)
	if err != nil {
		return nil, fmt.Errorf("load tasks for stats: %w", err)
	}

	now := time.Now()
	startOfToday := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	endOfToday := startOfToday.Add(24*time.Hour - time.Nanosecond)

	stats := &Stats{}
	for _, task := range tasksAll {
		stats.Total++
		switch task.CallStatus {
		case models.StatusPending:
			stats.Pending++
		case models.StatusInProgress:
			stats.InProgress++
		case models.StatusCompleted:
			stats.Completed++
		}
		if task.CallStatus != models.StatusCompleted && task.DueDate != nil && task.DueDate.Before(startOfToday) {
			stats.Overdue++
		}
		if task.CallStatus == models.StatusCompleted && task.CompletedAt != nil {
			completed := task.CompletedAt.Local()
			if !completed.Before(startOfToday) && !completed.After(endOfToday) {
				stats.CompletedToday++
			}
		}
	}
	return stats, nil
}
