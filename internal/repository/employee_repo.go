package repository

import (
	"lead-distribution-backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// EmployeeRepository reads the employee directory. This service never
// writes to it.
type EmployeeRepository struct {
	db *gorm.DB
}

func NewEmployeeRepository(db *gorm.DB) *EmployeeRepository {
	return &EmployeeRepository{db: db}
}

func (r *EmployeeRepository) GetAll() ([]models.Employee, error) {
	var employees []models.Employee
	err := r.db.Find(&employees).Error
	return employees, err
}

func (r *EmployeeRepository) GetByID(id uuid.UUID) (*models.Employee, error) {
	var emp models.Employee
	err := r.db.First(&emp, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &emp, nil
}
