package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"hradmin/recruitment-api/internal/models"
)

type FAQRepository interface {
	Create(ctx context.Context, faq *models.FAQ) error
	FindAll(ctx context.Context) ([]models.FAQ, error)
	Update(ctx context.Context, faq *models.FAQ) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type faqRepository struct {
	db *gorm.DB
}

func NewFAQRepository(db *gorm.DB) FAQRepository {
	return &faqRepository{db: db}
}

func (r *faqRepository) Create(ctx context.Context, faq *models.FAQ) error {
	if err := r.db.WithContext(ctx).Create(faq).Error; err != nil {
		return fmt.Errorf("failed to create faq: %w", err)
	}
	return nil
}

func (r *faqRepository) FindAll(ctx context.Context) ([]models.FAQ, error) {
	var faqs []models.FAQ
	if err := r.db.WithContext(ctx).Order("created_at ASC").Find(&faqs).Error; err != nil {
		return nil, fmt.Errorf("failed to list faqs: %w", err)
	}
	return faqs, nil
}

func (r *faqRepository) Update(ctx context.Context, faq *models.FAQ) error {
	result := r.db.WithContext(ctx).Model(&models.FAQ{}).
		Where("id = ?", faq.ID).
		Updates(map[string]interface{}{
			"question":   faq.Question,
			"answer":     faq.Answer,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update faq: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *faqRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.FAQ{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete faq: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

type QuestionRepository interface {
	Create(ctx context.Context, q *models.MiniTestQuestion) error
	FindAll(ctx context.Context) ([]models.MiniTestQuestion, error)
	Update(ctx context.Context, q *models.MiniTestQuestion) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type questionRepository struct {
	db *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) QuestionRepository {
	return &questionRepository{db: db}
}

func (r *questionRepository) Create(ctx context.Context, q *models.MiniTestQuestion) error {
	if err := r.db.WithContext(ctx).Create(q).Error; err != nil {
		return fmt.Errorf("failed to create question: %w", err)
	}
	return nil
}

func (r *questionRepository) FindAll(ctx context.Context) ([]models.MiniTestQuestion, error) {
	var questions []models.MiniTestQuestion
	if err := r.db.WithContext(ctx).Order("created_at ASC").Find(&questions).Error; err != nil {
		return nil, fmt.Errorf("failed to list questions: %w", err)
	}
	return questions, nil
}

func (r *questionRepository) Update(ctx context.Context, q *models.MiniTestQuestion) error {
	result := r.db.WithContext(ctx).Model(&models.MiniTestQuestion{}).
		Where("id = ?", q.ID).
		Updates(map[string]interface{}{
			"question_text": q.QuestionText,
			"updated_at":    time.Now(),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update question: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *questionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.MiniTestQuestion{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete question: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

type SurveyQuestionRepository interface {
	Create(ctx context.Context, q *models.SurveyQuestion) error
	FindAll(ctx context.Context) ([]models.SurveyQuestion, error)
	Update(ctx context.Context, q *models.SurveyQuestion) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type surveyQuestionRepository struct {
	db *gorm.DB
}

func NewSurveyQuestionRepository(db *gorm.DB) SurveyQuestionRepository {
	return &surveyQuestionRepository{db: db}
}

func (r *surveyQuestionRepository) Create(ctx context.Context, q *models.SurveyQuestion) error {
	if err := r.db.WithContext(ctx).Create(q).Error; err != nil {
		return fmt.Errorf("failed to create survey question: %w", err)
	}
	return nil
}

func (r *surveyQuestionRepository) FindAll(ctx context.Context) ([]models.SurveyQuestion, error) {
	var questions []models.SurveyQuestion
	if err := r.db.WithContext(ctx).Order("created_at ASC").Find(&questions).Error; err != nil {
		return nil, fmt.Errorf("failed to list survey questions: %w", err)
	}
	return questions, nil
}

func (r *surveyQuestionRepository) Update(ctx context.Context, q *models.SurveyQuestion) error {
	result := r.db.WithContext(ctx).Model(&models.SurveyQuestion{}).
		Where("id = ?", q.ID).
		Updates(map[string]interface{}{
			"question_text": q.QuestionText,
			"updated_at":    time.Now(),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update survey question: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *surveyQuestionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.SurveyQuestion{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete survey question: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
