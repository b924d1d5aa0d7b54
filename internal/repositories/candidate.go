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

type CandidateRepository interface {
	FindAll(ctx context.Context) ([]models.Candidate, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Candidate, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Candidate, error)
	FindAccepted(ctx context.Context) ([]models.Candidate, error)
	UpdateAdminStatus(ctx context.Context, id uuid.UUID, status models.AdminStatus, interviewDate *time.Time) error
	UpdateResume(ctx context.Context, id uuid.UUID, url, text string, pages int) error
}

type candidateRepository struct {
	db *gorm.DB
}

func NewCandidateRepository(db *gorm.DB) CandidateRepository {
	return &candidateRepository{db: db}
}

func (r *candidateRepository) FindAll(ctx context.Context) ([]models.Candidate, error) {
	var candidates []models.Candidate
	if err := r.db.WithContext(ctx).Order("created_at ASC").Find(&candidates).Error; err != nil {
		return nil, fmt.Errorf("failed to list candidates: %w", err)
	}
	return candidates, nil
}

func (r *candidateRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Candidate, error) {
	var candidate models.Candidate
	err := r.db.WithContext(ctx).
		Preload("TestAnswers").
		Where("id = ?", id).
		First(&candidate).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find candidate: %w", err)
	}
	return &candidate, nil
}

func (r *candidateRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Candidate, error) {
	var candidates []models.Candidate
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&candidates).Error; err != nil {
		return nil, fmt.Errorf("failed to find candidates: %w", err)
	}
	return candidates, nil
}

func (r *candidateRepository) FindAccepted(ctx context.Context) ([]models.Candidate, error) {
	var candidates []models.Candidate
	err := r.db.WithContext(ctx).
		Where("admin_status = ?", models.AdminAccepted).
		Order("created_at ASC").
		Find(&candidates).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list trainees: %w", err)
	}
	return candidates, nil
}

func (r *candidateRepository) UpdateAdminStatus(ctx context.Context, id uuid.UUID, status models.AdminStatus, interviewDate *time.Time) error {
	updates := map[string]interface{}{
		"admin_status": status,
		"updated_at":   time.Now(),
	}
	if interviewDate != nil {
		updates["interview_date"] = *interviewDate
	}

	result := r.db.WithContext(ctx).Model(&models.Candidate{}).
		Where("id = ?", id).
		Updates(updates)
	if result.Error != nil {
		return fmt.Errorf("failed to update admin status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *candidateRepository) UpdateResume(ctx context.Context, id uuid.UUID, url, text string, pages int) error {
	result := r.db.WithContext(ctx).Model(&models.Candidate{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"resume_url":   url,
			"resume_text":  text,
			"resume_pages": pages,
			"updated_at":   time.Now(),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update resume: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
