package ingestion

import (
	"fmt"
	"log"
	"time"

	"lead-distribution-backend/internal/models"
	"lead-distribution-backend/internal/parser"
	"lead-distribution-backend/internal/repository"

	"github.com/google/uuid"
)

const defaultChunkSize = 1000

// Service persists one parsed document as a batch plus its phone
// tasks. Chunk inserts are not transactional; on any chunk failure the
// batch is deleted (taking committed children with it) before the
// error is returned, so callers get all-or-nothing semantics. A short
// window where partial data is readable before the delete lands is
// accepted.
type Service struct {
	batchRepo *repository.BatchRepository
	taskRepo  *repository.PhoneTaskRepository

	// rows per insert call; tests lower this to force multi-chunk paths
	ChunkSize int
}

func NewService(batchRepo *repository.BatchRepository, taskRepo *repository.PhoneTaskRepository) *Service {
	return &Service{
		batchRepo: batchRepo,
		taskRepo:  taskRepo,
		ChunkSize: defaultChunkSize,
	}
}

// IngestDocument parses the extracted text and persists the result.
func (s *Service) IngestDocument(text, fileName string, uploadedBy uuid.UUID) (*models.Batch, error) {
	result, err := parser.ParseDocument(text)
	if err != nil {
		return nil, err
	}
	return s.PersistParsed(result, fileName, uploadedBy)
}

// PersistParsed creates the batch row, then inserts the seed tasks in
// chunks. The compensating delete is decided before the first insert:
// whatever chunk fails, the batch goes.
func (s *Service) PersistParsed(result *parser.ParseResult, fileName string, uploadedBy uuid.UUID) (*models.Batch, error) {
	batch := &models.Batch{
		ID:             uuid.New(),
		SourceFileName: fileName,
		AssignmentMode: result.AssignmentMode,
		UploadedBy:     uploadedBy,
		TotalNumbers:   parser.CountNumbers(result),
		CreatedAt:      time.Now(),
	}
	if err := s.batchRepo.Create(batch); err != nil {
		return nil, fmt.Errorf("create batch: %w", err)
	}

	seeds := buildSeeds(batch.ID, result)
	if err := s.insertChunked(seeds); err != nil {
		if delErr := s.batchRepo.DeleteWithTasks(batch.ID); delErr != nil {
			log.Printf("compensation failed for batch %s: %v", batch.ID, delErr)
		}
		return nil, fmt.Errorf("insert tasks for batch %s: %w", batch.ID, err)
	}

	return batch, nil
}

func (s *Service) insertChunked(seeds []models.PhoneTask) error {
	chunk := s.ChunkSize
	if chunk <= 0 {
		chunk = defaultChunkSize
	}
	for start := 0; start < len(seeds); start += chunk {
		end := start + chunk
		if end > len(seeds) {
			end = len(seeds)
		}
		if err := s.taskRepo.InsertChunk(seeds[start:end]); err != nil {
			return err
		}
	}
	return nil
}

func buildSeeds(batchID uuid.UUID, result *parser.ParseResult) []models.PhoneTask {
	now := time.Now()
	var seeds []models.PhoneTask
	position := 0
	for _, a := range result.Assignments {
		for _, number := range a.PhoneNumbers {
			seeds = append(seeds, models.PhoneTask{
				ID:                       uuid.New(),
				BatchID:                  batchID,
				Position:                 position,
				PhoneNumber:              number,
				AssignedEmployeeNameHint: a.EmployeeNameHint,
				CallStatus:               models.StatusPending,
				Priority:                 models.PriorityMedium,
				CreatedAt:                now,
			})
			position++
		}
	}
	return seeds
}

// GetBatch fetches one batch.
func (s *Service) GetBatch(id uuid.UUID) (*models.Batch, error) {
	return s.batchRepo.GetByID(id)
}

// ListTasks pages through a batch's tasks.
func (s *Service) ListTasks(batchID uuid.UUID, status, cursor string, limit int) ([]models.PhoneTask, string, bool, error) {
	return s.taskRepo.ListByBatch(batchID, status, cursor, limit)
}

// DeleteBatch removes a batch and all of its tasks.
func (s *Service) DeleteBatch(id uuid.UUID) error {
	if _, err := s.batchRepo.GetByID(id); err != nil {
		return err
	}
	return s.batchRepo.DeleteWithTasks(id)
}
