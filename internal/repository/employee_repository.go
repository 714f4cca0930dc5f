package repository

import (
	"github.com/yukikurage/etams/internal/database"
	"github.com/yukikurage/etams/internal/models"
	"github.com/yukikurage/etams/internal/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormEmployeeRepository is a GORM implementation of EmployeeRepository
type GormEmployeeRepository struct {
	db *gorm.DB
}

// NewEmployeeRepository creates a new EmployeeRepository
func NewEmployeeRepository(db *gorm.DB) EmployeeRepository {
	return &GormEmployeeRepository{db: db}
}

func (r *GormEmployeeRepository) Create(employee *models.Employee) error {
	return r.db.Omit(clause.Associations).Create(employee).Error
}

func (r *GormEmployeeRepository) FindByID(id uint64) (*models.Employee, error) {
	var employee models.Employee
	if err := r.db.First(&employee, id).Error; err != nil {
		return nil, err
	}
	return &employee, nil
}

func (r *GormEmployeeRepository) FindByUsername(username string) (*models.Employee, error) {
	var employee models.Employee
	if err := r.db.Where("username = ?", username).First(&employee).Error; err != nil {
		return nil, err
	}
	return &employee, nil
}

// FindByUsernameUnscoped also matches soft-deleted rows, which still hold
// their username in the unique index.
func (r *GormEmployeeRepository) FindByUsernameUnscoped(username string) (*models.Employee, error) {
	var employee models.Employee
	if err := r.db.Unscoped().Where("username = ?", username).First(&employee).Error; err != nil {
		return nil, err
	}
	return &employee, nil
}

// FindByEmailUnscoped also matches soft-deleted rows.
func (r *GormEmployeeRepository) FindByEmailUnscoped(email string) (*models.Employee, error) {
	var employee models.Employee
	if err := r.db.Unscoped().Where("email = ?", email).First(&employee).Error; err != nil {
		return nil, err
	}
	return &employee, nil
}

func (r *GormEmployeeRepository) List(pagination *utils.PaginationParams) ([]models.Employee, int64, error) {
	var employees []models.Employee

	query := r.db.Model(&models.Employee{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	listQuery := query.Order("last_name ASC").Order("first_name ASC").Order("id ASC")
	if pagination != nil {
		listQuery = listQuery.Scopes(database.Paginate(*pagination))
	}

	if err := listQuery.Find(&employees).Error; err != nil {
		return nil, 0, err
	}
	return employees, total, nil
}

func (r *GormEmployeeRepository) Update(employee *models.Employee) error {
	return r.db.Omit(clause.Associations).Save(employee).Error
}

// Delete soft deletes the employee. Their tasks lose the assignee and fall back
// to UNASSIGNED so no task is left with a status that needs an assignee.
func (r *GormEmployeeRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Task{}).
			Where("assigned_employee_id = ?", id).
			Updates(map[string]interface{}{
				"assigned_employee_id": nil,
				"status":               models.TaskStatusUnassigned,
			}).Error; err != nil {
			return err
		}

		result := tx.Delete(&models.Employee{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (r *GormEmployeeRepository) CountTasksByEmployee() (map[uint64]int, error) {
	var rows []struct {
		AssignedEmployeeID uint64
		Count              int
	}

	err := r.db.Model(&models.Task{}).
		Select("assigned_employee_id, COUNT(*) AS count").
		Where("assigned_employee_id IS NOT NULL").
		Group("assigned_employee_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[uint64]int, len(rows))
	for _, row := range rows {
		counts[row.AssignedEmployeeID] = row.Count
	}
	return counts, nil
}

func (r *GormEmployeeRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Employee{}).Count(&count).Error
	return count, err
}
