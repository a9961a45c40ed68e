package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	handler "lead-distribution-backend/internal/handlers"
	"lead-distribution-backend/internal/repository"
	"lead-distribution-backend/internal/services/distribution"
	"lead-distribution-backend/internal/services/ingestion"
	"lead-distribution-backend/internal/services/matching"
	"lead-distribution-backend/internal/services/reporting"
	"lead-distribution-backend/internal/services/tasks"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB) {
	batchRepo := repository.NewBatchRepository(db)
	taskRepo := repository.NewPhoneTaskRepository(db)
	employeeRepo := repository.NewEmployeeRepository(db)

	ingestionSvc := ingestion.NewService(batchRepo, taskRepo)
	distributionSvc := distribution.NewService(taskRepo, batchRepo)
	matchingSvc := matching.NewService(employeeRepo, taskRepo, distributionSvc)
	tasksSvc := tasks.NewService(taskRepo)
	reportingSvc := reporting.NewService(taskRepo)

	leadHandler := handler.NewLeadHandler(
		ingestionSvc,
		distributionSvc,
		matchingSvc,
		tasksSvc,
		reportingSvc,
		handler.PlainTextExtractor{},
	)

	api := r.Group("/api")

	// Health check
	api.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Batch routes
	batches := api.Group("/batches")
	batches.POST("/upload", leadHandler.UploadDocument)
	batches.GET("/:batchId", leadHandler.GetBatch)
	batches.DELETE("/:batchId", leadHandler.DeleteBatch)
	batches.GET("/:batchId/tasks", leadHandler.ListTasks)
	batches.POST("/:batchId/distribute", leadHandler.DistributeRandom)
	batches.POST("/:batchId/distribute-targeted", leadHandler.DistributeTargeted)
	batches.POST("/:batchId/auto-match", leadHandler.AutoMatch)

	// Task-level routes
	tasksGroup := api.Group("/tasks")
	tasksGroup.PUT("/:id", leadHandler.UpdateTask)

	// Derived views
	api.GET("/employees/:id/calendar", leadHandler.Calendar)
	api.GET("/stats", leadHandler.Stats)
	api.GET("/validate-number", leadHandler.ValidatePhoneNumber)
}
