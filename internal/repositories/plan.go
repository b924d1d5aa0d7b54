package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"hradmin/recruitment-api/internal/models"
)

type PlanRepository interface {
	Create(ctx context.Context, plan *models.AdaptationPlan) error
	FindByVariant(ctx context.Context, variant models.PlanVariant) ([]models.AdaptationPlan, error)
	FindByVariantAndMentor(ctx context.Context, variant models.PlanVariant, mentorID uuid.UUID) ([]models.AdaptationPlan, error)
	Update(ctx context.Context, plan *models.AdaptationPlan) error
	Delete(ctx context.Context, id uuid.UUID, variant models.PlanVariant) error
}

type planRepository struct {
	db *gorm.DB
}

func NewPlanRepository(db *gorm.DB) PlanRepository {
	return &planRepository{db: db}
}

func (r *planRepository) Create(ctx context.Context, plan *models.AdaptationPlan) error {
	if err := r.db.WithContext(ctx).Create(plan).Error; err != nil {
		return fmt.Errorf("failed to create adaptation plan: %w", err)
	}
	return nil
}

func (r *planRepository) FindByVariant(ctx context.Context, variant models.PlanVariant) ([]models.AdaptationPlan, error) {
	var plans []models.AdaptationPlan
	err := r.db.WithContext(ctx).
		Preload("Mentor").
		Where("variant = ?", variant).
		Order("created_at ASC").
		Find(&plans).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list adaptation plans: %w", err)
	}
	return plans, nil
}

func (r *planRepository) FindByVariantAndMentor(ctx context.Context, variant models.PlanVariant, mentorID uuid.UUID) ([]models.AdaptationPlan, error) {
	var plans []models.AdaptationPlan
	err := r.db.WithContext(ctx).
		Preload("Mentor").
		Where("variant = ? AND mentor_id = ?", variant, mentorID).
		Order("created_at ASC").
		Find(&plans).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list adaptation plans: %w", err)
	}
	return plans, nil
}

func (r *planRepository) Update(ctx context.Context, plan *models.AdaptationPlan) error {
	result := r.db.WithContext(ctx).Model(&models.AdaptationPlan{}).
		Where("id = ? AND variant = ?", plan.ID, plan.Variant).
		Updates(map[string]interface{}{
			"mentor_id":  plan.MentorID,
			"link":       plan.Link,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update adaptation plan: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *planRepository) Delete(ctx context.Context, id uuid.UUID, variant models.PlanVariant) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND variant = ?", id, variant).
		Delete(&models.AdaptationPlan{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete adaptation plan: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

type StaffPlanRepository interface {
	Create(ctx context.Context, plan *models.StaffAdaptationPlan) error
	FindAll(ctx context.Context) ([]models.StaffAdaptationPlan, error)
	FindByMentor(ctx context.Context, mentorID uuid.UUID) ([]models.StaffAdaptationPlan, error)
	Update(ctx context.Context, plan *models.StaffAdaptationPlan) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type staffPlanRepository struct {
	db *gorm.DB
}

func NewStaffPlanRepository(db *gorm.DB) StaffPlanRepository {
	return &staffPlanRepository{db: db}
}

func (r *staffPlanRepository) Create(ctx context.Context, plan *models.StaffAdaptationPlan) error {
	if err := r.db.WithContext(ctx).Create(plan).Error; err != nil {
		return fmt.Errorf("failed to create staff adaptation plan: %w", err)
	}
	return nil
}

func (r *staffPlanRepository) FindAll(ctx context.Context) ([]models.StaffAdaptationPlan, error) {
	var plans []models.StaffAdaptationPlan
	err := r.db.WithContext(ctx).
		Preload("Mentor").
		Preload("Trainee").
		Order("created_at ASC").
		Find(&plans).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list staff adaptation plans: %w", err)
	}
	return plans, nil
}

func (r *staffPlanRepository) FindByMentor(ctx context.Context, mentorID uuid.UUID) ([]models.StaffAdaptationPlan, error) {
	var plans []models.StaffAdaptationPlan
	err := r.db.WithContext(ctx).
		Preload("Mentor").
		Preload("Trainee").
		Where("mentor_id = ?", mentorID).
		Order("created_at ASC").
		Find(&plans).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list staff adaptation plans: %w", err)
	}
	return plans, nil
}

func (r *staffPlanRepository) Update(ctx context.Context, plan *models.StaffAdaptationPlan) error {
	result := r.db.WithContext(ctx).Model(&models.StaffAdaptationPlan{}).
		Where("id = ?", plan.ID).
		Updates(map[string]interface{}{
			"mentor_id":  plan.MentorID,
			"trainee_id": plan.TraineeID,
			"start_date": plan.StartDate,
			"end_date":   plan.EndDate,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update staff adaptation plan: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *staffPlanRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.StaffAdaptationPlan{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete staff adaptation plan: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
