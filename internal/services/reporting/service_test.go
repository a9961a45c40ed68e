package reporting

import (
	"fmt"
	"testing"
	"time"

	"lead-distribution-backend/internal/models"
	"lead-distribution-backend/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Batch{}, &models.PhoneTask{}))
	return db
}

func insertTask(t *testing.T, db *gorm.DB, employee *uuid.UUID, status string, dueDate, completedAt *time.Time) models.PhoneTask {
	t.Helper()
	task := models.PhoneTask{
		ID:          uuid.New(),
		BatchID:     uuid.New(),
		PhoneNumber: "01012345678",
		AssignedTo:  employee,
		CallStatus:  status,
		Priority:    models.PriorityMedium,
		DueDate:     dueDate,
		CompletedAt: completedAt,
		CreatedAt:   time.Now(),
	}
	require.NoError(t, db.Create(&task).Error)
	return task
}

func timePtr(ts time.Time) *time.Time { return &ts }

func TestCalendarBucketsByDatePortion(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(repository.NewPhoneTaskRepository(db))
	emp := uuid.New()

	morning := time.Date(2025, 3, 10, 9, 0, 0, 0, time.Local)
	evening := time.Date(2025, 3, 10, 22, 0, 0, 0, time.Local)
	nextDay := time.Date(2025, 3, 11, 8, 0, 0, 0, time.Local)

	insertTask(t, db, &emp, models.StatusPending, &morning, nil)
	insertTask(t, db, &emp, models.StatusInProgress, &evening, nil)
	insertTask(t, db, &emp, models.StatusCompleted, &nextDay, timePtr(nextDay))
	// no due date: never on the calendar
	insertTask(t, db, &emp, models.StatusPending, nil, nil)
	// other employee: not in this view
	other := uuid.New()
	insertTask(t, db, &other, models.StatusPending, &morning, nil)

	start := time.Date(2025, 3, 1, 0, 0, 0, 0, time.Local)
	end := time.Date(2025, 3, 31, 23, 59, 59, 0, time.Local)

	days, err := svc.Calendar(emp, start, end)
	require.NoError(t, err)
	require.Len(t, days, 2)

	assert.Equal(t, "2025-03-10", days[0].Date)
	assert.Equal(t, 1, days[0].Pending)
	assert.Equal(t, 1, days[0].InProgress)
	assert.Equal(t, 0, days[0].Completed)
	assert.Len(t, days[0].Tasks, 2)

	assert.Equal(t, "2025-03-11", days[1].Date)
	assert.Equal(t, 1, days[1].Completed)
}

func TestCalendarRangeExcludesOutsideDueDates(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(repository.NewPhoneTaskRepository(db))
	emp := uuid.New()

	inRange := time.Date(2025, 3, 10, 12, 0, 0, 0, time.Local)
	outOfRange := time.Date(2025, 4, 2, 12, 0, 0, 0, time.Local)
	insertTask(t, db, &emp, models.StatusPending, &inRange, nil)
	insertTask(t, db, &emp, models.StatusPending, &outOfRange, nil)

	start := time.Date(2025, 3, 1, 0, 0, 0, 0, time.Local)
	end := time.Date(2025, 3, 31, 23, 59, 59, 0, time.Local)

	days, err := svc.Calendar(emp, start, end)
	require.NoError(t, err)
	require.Len(t, days, 1)
	assert.Equal(t, "2025-03-10", days[0].Date)
}

func TestStatsCounts(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(repository.NewPhoneTaskRepository(db))
	emp := uuid.New()

	now := time.Now()
	yesterday := now.AddDate(0, 0, -1)
	tomorrow := now.AddDate(0, 0, 1)

	// overdue: not completed, due yesterday
	insertTask(t, db, &emp, models.StatusPending, &yesterday, nil)
	// not overdue: due tomorrow
	insertTask(t, db, &emp, models.StatusInProgress, &tomorrow, nil)
	// completed today
	insertTask(t, db, &emp, models.StatusCompleted, &yesterday, timePtr(now))
	// completed yesterday: excluded from completedToday
	insertTask(t, db, &emp, models.StatusCompleted, &yesterday, timePtr(yesterday))

	stats, err := svc.ComputeStats(nil)
	require.NoError(t, err)

	assert.Equal(t, 4, stats.Total)
	assert.Equal(t, 1, stats.Pending)
	assert.Equal(t, 1, stats.InProgress)
	assert.Equal(t, 2, stats.Completed)
	assert.Equal(t, 1, stats.Overdue, "a completed task past due is not overdue")
	assert.Equal(t, 1, stats.CompletedToday)
}

func TestStatsEmployeeFilter(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(repository.NewPhoneTaskRepository(db))

	emp, other := uuid.New(), uuid.New()
	insertTask(t, db, &emp, models.StatusPending, nil, nil)
	insertTask(t, db, &emp, models.StatusCompleted, nil, nil)
	insertTask(t, db, &other, models.StatusPending, nil, nil)
	insertTask(t, db, nil, models.StatusPending, nil, nil)

	stats, err := svc.ComputeStats(&emp)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Total)
	assert.Equal(t, 1, stats.Pending)
	assert.Equal(t, 1, stats.Completed)

	all, err := svc.ComputeStats(nil)
	require.NoError(t, err)
	assert.Equal(t, 4, all.Total)
}
