package matching

import (
	"fmt"
	"testing"
	"time"

	"lead-distribution-backend/internal/models"
	"lead-distribution-backend/internal/repository"
	"lead-distribution-backend/internal/services/distribution"

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
	require.NoError(t, db.AutoMigrate(
		&models.Batch{},
		&models.PhoneTask{},
		&models.Employee{},
		&models.DistributionAuditLog{},
	))
	return db
}

func TestAutoMatchBatchAssignsResolvedHints(t *testing.T) {
	db := newTestDB(t)

	batchRepo := repository.NewBatchRepository(db)
	taskRepo := repository.NewPhoneTaskRepository(db)
	employeeRepo := repository.NewEmployeeRepository(db)
	svc := NewService(employeeRepo, taskRepo, distribution.NewService(taskRepo, batchRepo))

	ahmed := models.Employee{ID: uuid.New(), DisplayName: "Ahmed Hassan", CreatedAt: time.Now()}
	require.NoError(t, db.Create(&ahmed).Error)

	batch := models.Batch{
		ID:             uuid.New(),
		AssignmentMode: models.ModeTargeted,
		UploadedBy:     uuid.New(),
		CreatedAt:      time.Now(),
	}
	require.NoError(t, db.Create(&batch).Error)

	seed := []models.PhoneTask{
		{ID: uuid.New(), BatchID: batch.ID, Position: 0, PhoneNumber: "01011111111",
			AssignedEmployeeNameHint: "ahmed  hassan", CallStatus: models.StatusPending,
			Priority: models.PriorityMedium, CreatedAt: time.Now()},
		{ID: uuid.New(), BatchID: batch.ID, Position: 1, PhoneNumber: "01022222222",
			AssignedEmployeeNameHint: "Nobody Known", CallStatus: models.StatusPending,
			Priority: models.PriorityMedium, CreatedAt: time.Now()},
	}
	require.NoError(t, db.Create(&seed).Error)

	result, err := svc.AutoMatchBatch(batch.ID, distribution.Options{}, uuid.New())
	require.NoError(t, err)
	assert.Equal(t, 1, result.MatchedCount)
	assert.Equal(t, 1, result.UnmatchedCount)
	require.Len(t, result.UnmatchedTasks, 1)
	assert.Equal(t, seed[1].ID, result.UnmatchedTasks[0])

	var matched models.PhoneTask
	require.NoError(t, db.First(&matched, "id = ?", seed[0].ID).Error)
	require.NotNil(t, matched.AssignedTo)
	assert.Equal(t, ahmed.ID, *matched.AssignedTo)
	// the hint survives resolution for audit
	assert.Equal(t, "ahmed  hassan", matched.AssignedEmployeeNameHint)

	var unmatched models.PhoneTask
	require.NoError(t, db.First(&unmatched, "id = ?", seed[1].ID).Error)
	assert.Nil(t, unmatched.AssignedTo)
}
