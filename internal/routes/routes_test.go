package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"lead-distribution-backend/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Batch{},
		&models.PhoneTask{},
		&models.Employee{},
		&models.DistributionAuditLog{},
	))

	r := gin.New()
	RegisterRoutes(r, db)
	return r, db
}

func uploadDocument(t *testing.T, r *gin.Engine, text string) *httptest.ResponseRecorder {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", "leads.txt")
	require.NoError(t, err)
	_, err = part.Write([]byte(text))
	require.NoError(t, err)
	require.NoError(t, writer.WriteField("uploaded_by", uuid.NewString()))
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/batches/upload", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestUploadDistributeAndStatsFlow(t *testing.T) {
	r, db := newTestRouter(t)

	w := uploadDocument(t, r, "Random Data(Ahmed)\n01012345678\n01098765432\nRandom Data(Sara)\n01055555555")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var uploadResp struct {
		Batch models.Batch `json:"batch"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &uploadResp))
	assert.Equal(t, 3, uploadResp.Batch.TotalNumbers)
	batchID := uploadResp.Batch.ID

	// distribute over two employees
	payload := map[string]interface{}{
		"employee_ids": []string{uuid.NewString(), uuid.NewString()},
		"performed_by": uuid.NewString(),
	}
	raw, _ := json.Marshal(payload)
	req := httptest.NewRequest(http.MethodPost, "/api/batches/"+batchID.String()+"/distribute", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var distResp struct {
		AssignedCount    int            `json:"assigned_count"`
		PerEmployeeCount map[string]int `json:"per_employee_count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &distResp))
	assert.Equal(t, 3, distResp.AssignedCount)
	assert.Len(t, distResp.PerEmployeeCount, 2)

	// stats see the batch
	req = httptest.NewRequest(http.MethodGet, "/api/stats", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var stats struct {
		Total   int `json:"total"`
		Pending int `json:"pending"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, 3, stats.Pending)

	// delete cascades
	req = httptest.NewRequest(http.MethodDelete, "/api/batches/"+batchID.String(), nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var taskCount int64
	db.Model(&models.PhoneTask{}).Count(&taskCount)
	assert.Zero(t, taskCount)
}

func TestUploadRejectsDocumentWithoutMarker(t *testing.T) {
	r, _ := newTestRouter(t)
	w := uploadDocument(t, r, "plain text\n01012345678")
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestUploadRejectsMarkerWithoutNumbers(t *testing.T) {
	r, _ := newTestRouter(t)
	w := uploadDocument(t, r, "Random Data(Ahmed)\nno numbers at all")
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestValidateNumberEndpoint(t *testing.T) {
	r, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/validate-number?number=01012345678", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Valid bool `json:"valid"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Valid)
}

func TestGetUnknownBatchReturns404(t *testing.T) {
	r, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/batches/"+uuid.NewString(), nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateTaskEndpoint(t *testing.T) {
	r, db := newTestRouter(t)

	w := uploadDocument(t, r, "Random Data(Ahmed)\n01012345678")
	require.Equal(t, http.StatusCreated, w.Code)

	var task models.PhoneTask
	require.NoError(t, db.First(&task).Error)

	raw, _ := json.Marshal(map[string]interface{}{"call_status": "completed"})
	req := httptest.NewRequest(http.MethodPut, "/api/tasks/"+task.ID.String(), bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	require.NoError(t, db.First(&task, "id = ?", task.ID).Error)
	assert.Equal(t, models.StatusCompleted, task.CallStatus)
	assert.NotNil(t, task.CompletedAt)
}
