package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"hradmin/recruitment-api/internal/models"
)

// ErrAlreadyAssigned is returned when a candidate/task pair is assigned twice.
var ErrAlreadyAssigned = errors.New("task already assigned to candidate")

type TaskRepository interface {
	Create(ctx context.Context, task *models.Task) error
	FindAll(ctx context.Context) ([]models.Task, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Task, error)
	Update(ctx context.Context, task *models.Task) error
	Delete(ctx context.Context, id uuid.UUID) error

	AssignMany(ctx context.Context, assignments []models.TaskAssignment) error
	FindAssignedRows(ctx context.Context) ([]models.AssignedTaskRow, error)
	FindByCandidate(ctx context.Context, candidateID uuid.UUID) ([]models.TaskAssignment, error)
	UpdateAssignmentStatus(ctx context.Context, id uuid.UUID, status models.AssignmentStatus) error
}

type taskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &taskRepository{db: db}
}

func (r *taskRepository) Create(ctx context.Context, task *models.Task) error {
	if err := r.db.WithContext(ctx).Create(task).Error; err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}
	return nil
}

func (r *taskRepository) FindAll(ctx context.Context) ([]models.Task, error) {
	var tasks []models.Task
	if err := r.db.WithContext(ctx).Order("created_at ASC").Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

func (r *taskRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Task, error) {
	var task models.Task
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&task).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return &task, nil
}

func (r *taskRepository) Update(ctx context.Context, task *models.Task) error {
	result := r.db.WithContext(ctx).Model(&models.Task{}).
		Where("id = ?", task.ID).
		Updates(map[string]interface{}{
			"title":      task.Title,
			"deadline":   task.Deadline,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update task: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *taskRepository) Delete(ctx context.Context, id uuid.UUID) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("task_id = ?", id).Delete(&models.TaskAssignment{}).Error; err != nil {
			return err
		}
		result := tx.Where("id = ?", id).Delete(&models.Task{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return nil
}

// AssignMany inserts all assignments or none of them. A pair that is
// already assigned fails the whole batch with ErrAlreadyAssigned.
func (r *taskRepository) AssignMany(ctx context.Context, assignments []models.TaskAssignment) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range assignments {
			var count int64
			err := tx.Model(&models.TaskAssignment{}).
				Where("candidate_id = ? AND task_id = ?", assignments[i].CandidateID, assignments[i].TaskID).
				Count(&count).Error
			if err != nil {
				return err
			}
			if count > 0 {
				return ErrAlreadyAssigned
			}
			if err := tx.Create(&assignments[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrAlreadyAssigned) {
			return ErrAlreadyAssigned
		}
		return fmt.Errorf("failed to assign tasks: %w", err)
	}
	return nil
}

func (r *taskRepository) FindAssignedRows(ctx context.Context) ([]models.AssignedTaskRow, error) {
	var rows []models.AssignedTaskRow
	err := r.db.WithContext(ctx).
		Table("task_assignments").
		Select(`task_assignments.id, task_assignments.candidate_id, task_assignments.task_id,
			task_assignments.status, candidates.first_name, candidates.last_name, tasks.title AS task_title`).
		Joins("JOIN candidates ON candidates.id = task_assignments.candidate_id").
		Joins("JOIN tasks ON tasks.id = task_assignments.task_id").
		Order("task_assignments.created_at ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list assigned tasks: %w", err)
	}
	return rows, nil
}

func (r *taskRepository) FindByCandidate(ctx context.Context, candidateID uuid.UUID) ([]models.TaskAssignment, error) {
	var assignments []models.TaskAssignment
	err := r.db.WithContext(ctx).
		Preload("Task").
		Where("candidate_id = ?", candidateID).
		Order("created_at ASC").
		Find(&assignments).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list candidate tasks: %w", err)
	}
	return assignments, nil
}

func (r *taskRepository) UpdateAssignmentStatus(ctx context.Context, id uuid.UUID, status models.AssignmentStatus) error {
	result := r.db.WithContext(ctx).Model(&models.TaskAssignment{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update assignment status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
