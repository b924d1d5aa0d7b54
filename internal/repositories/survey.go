package repositories

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"hradmin/recruitment-api/internal/models"
)

type SurveyResponseRepository interface {
	Create(ctx context.Context, response *models.SurveyResponse) error
	FindAll(ctx context.Context) ([]models.SurveyResponse, error)
}

type surveyResponseRepository struct {
	db *gorm.DB
}

func NewSurveyResponseRepository(db *gorm.DB) SurveyResponseRepository {
	return &surveyResponseRepository{db: db}
}

func (r *surveyResponseRepository) Create(ctx context.Context, response *models.SurveyResponse) error {
	if err := r.db.WithContext(ctx).Create(response).Error; err != nil {
		return fmt.Errorf("failed to create survey response: %w", err)
	}
	return nil
}

// FindAll returns responses in submission order so that grouping keys
// are discovered oldest-first.
func (r *surveyResponseRepository) FindAll(ctx context.Context) ([]models.SurveyResponse, error) {
	var responses []models.SurveyResponse
	if err := r.db.WithContext(ctx).Order("date ASC, created_at ASC").Find(&responses).Error; err != nil {
		return nil, fmt.Errorf("failed to list survey responses: %w", err)
	}
	return responses, nil
}
